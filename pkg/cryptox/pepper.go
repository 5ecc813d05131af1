package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const pepperLength = 32

// LoadOrGeneratePepper loads the pepper from file, generating and saving a
// new one when the file does not exist yet. An empty path disables the
// pepper and returns "".
//
// Losing the pepper file makes every Argon2id hash created with it
// unverifiable, so the file belongs next to the vault database in backups.
func LoadOrGeneratePepper(file string) (string, error) {
	if strings.TrimSpace(file) == "" {
		return "", nil
	}

	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return "", err
	}

	pepperBytes, err := os.ReadFile(file)
	if err == nil {
		return strings.TrimSpace(string(pepperBytes)), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	raw := make([]byte, pepperLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	pepper := base64.RawURLEncoding.EncodeToString(raw)

	if err := os.WriteFile(file, []byte(pepper), 0600); err != nil {
		return "", err
	}
	return pepper, nil
}

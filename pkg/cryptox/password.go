package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm names the password hashing scheme used for new hashes.
type Algorithm string

const (
	AlgorithmArgon2id Algorithm = "argon2id"
	AlgorithmBcrypt   Algorithm = "bcrypt"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt

	// maxMemory bounds the m= parameter accepted from a stored hash (1 GiB).
	maxMemory = 1024 * 1024
)

// DefaultBcryptCost matches the default work factor of bcrypt gensalt.
const DefaultBcryptCost = 12

var (
	ErrInvalidHash     = errors.New("invalid hash format")
	ErrPasswordInvalid = errors.New("password does not match")
)

// Hasher produces and verifies salted, slow password hashes. The salt and
// cost travel inside the encoded hash so verification needs nothing else.
//
// Verification accepts both PHC Argon2id strings and bcrypt ($2a$, $2b$,
// $2y$) hashes regardless of which Algorithm is configured for new hashes.
type Hasher struct {
	Algorithm  Algorithm
	BcryptCost int
	Pepper     string // Appended to the password for Argon2id only
}

// NewHasher returns a Hasher for the given algorithm. An empty algorithm
// selects Argon2id.
func NewHasher(algorithm Algorithm, pepper string) *Hasher {
	if algorithm == "" {
		algorithm = AlgorithmArgon2id
	}
	return &Hasher{
		Algorithm:  algorithm,
		BcryptCost: DefaultBcryptCost,
		Pepper:     pepper,
	}
}

// Hash generates a fresh salt and returns the encoded hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	switch h.Algorithm {
	case AlgorithmBcrypt:
		out, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.bcryptCost())
		if err != nil {
			return "", err
		}
		return string(out), nil
	case AlgorithmArgon2id, "":
		return HashPassword(password, h.Pepper)
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", h.Algorithm)
	}
}

// Verify reports whether password matches encodedHash. Malformed hashes
// never match.
func (h *Hasher) Verify(password, encodedHash string) bool {
	if isBcrypt(encodedHash) {
		return verifyBcrypt(password, encodedHash)
	}
	return VerifyPassword(password, encodedHash, h.Pepper) == nil
}

// NeedsRehash reports whether encodedHash was produced with a different
// algorithm or cost than the Hasher would use today.
func (h *Hasher) NeedsRehash(encodedHash string) bool {
	switch h.Algorithm {
	case AlgorithmBcrypt:
		if !isBcrypt(encodedHash) {
			return true
		}
		cost, err := bcrypt.Cost([]byte(encodedHash))
		return err != nil || cost != h.bcryptCost()
	default:
		p, err := parsePHC(encodedHash)
		if err != nil {
			return true
		}
		return p.memory != memory || p.iterations != iterations || p.parallelism != parallelism
	}
}

func (h *Hasher) bcryptCost() int {
	if h.BcryptCost < bcrypt.MinCost || h.BcryptCost > bcrypt.MaxCost {
		return DefaultBcryptCost
	}
	return h.BcryptCost
}

// bcryptMaxInput is the number of password bytes bcrypt reads.
const bcryptMaxInput = 72

// bcryptInput returns what is fed to bcrypt for password. Longer passwords
// are reduced to a base64 SHA-256 digest so every byte counts.
func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.RawStdEncoding.EncodeToString(sum[:]))
}

// verifyBcrypt checks password against a bcrypt hash made by Hash.
func verifyBcrypt(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), bcryptInput(password)) == nil
}

func isBcrypt(encodedHash string) bool {
	return strings.HasPrefix(encodedHash, "$2a$") ||
		strings.HasPrefix(encodedHash, "$2b$") ||
		strings.HasPrefix(encodedHash, "$2y$")
}

// HashPassword generates a PHC-format Argon2id hash string including salt and parameters.
func HashPassword(password, pepper string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey(
		[]byte(password+pepper),
		salt,
		iterations,
		memory,
		parallelism,
		keyLength,
	)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		b64Salt,
		b64Hash,
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-style Argon2id hash.
func VerifyPassword(password, encodedHash, pepper string) error {
	p, err := parsePHC(encodedHash)
	if err != nil {
		return err
	}

	computed := argon2.IDKey(
		[]byte(password+pepper),
		p.salt,
		p.iterations,
		p.memory,
		p.parallelism,
		uint32(len(p.hash)), // #nosec G115 - bounded by the encoded string length
	)

	if subtle.ConstantTimeCompare(computed, p.hash) == 1 {
		return nil
	}
	return ErrPasswordInvalid
}

type phcParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	hash        []byte
}

// parsePHC parses $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func parsePHC(encodedHash string) (phcParams, error) {
	var p phcParams

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return p, fmt.Errorf("%w: not argon2id", ErrInvalidHash)
	}
	if parts[2] != "v=19" {
		return p, fmt.Errorf("%w: wrong version", ErrInvalidHash)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, fmt.Errorf("%w: failed to parse parameters: %w", ErrInvalidHash, err)
	}
	// argon2 panics on zero rounds or threads
	if p.iterations < 1 || p.parallelism < 1 || p.memory < 1 || p.memory > maxMemory {
		return p, fmt.Errorf("%w: parameters out of range", ErrInvalidHash)
	}

	var err error
	p.salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, fmt.Errorf("%w: failed to decode salt: %w", ErrInvalidHash, err)
	}
	p.hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, fmt.Errorf("%w: failed to decode hash: %w", ErrInvalidHash, err)
	}
	if len(p.salt) == 0 || len(p.hash) == 0 {
		return p, fmt.Errorf("%w: empty salt or hash", ErrInvalidHash)
	}

	return p, nil
}

// GeneratePassword returns a random alphanumeric password of the given
// length. Lengths below 8 are raised to 8.
func GeneratePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	if length < 8 {
		length = 8
	}
	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random password: %w", err)
		}
		password[i] = charset[n.Int64()]
	}
	return string(password), nil
}

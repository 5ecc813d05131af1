package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	h := NewHasher(AlgorithmArgon2id, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")

			require.True(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h := NewHasher("", "")

	hash1, err := h.Hash("samepassword")
	require.NoError(t, err)
	hash2, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.True(t, h.Verify("samepassword", hash1))
	require.True(t, h.Verify("samepassword", hash2))
}

func TestVerify_WrongPassword(t *testing.T) {
	h := NewHasher(AlgorithmArgon2id, "")
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		"correct-passwor",
		strings.Repeat("x", 10000),
	} {
		require.False(t, h.Verify(wrong, hash), "%q should not verify", wrong)
		require.ErrorIs(t, VerifyPassword(wrong, hash, ""), ErrPasswordInvalid)
	}
}

func TestVerify_MalformedHashNeverMatches(t *testing.T) {
	h := NewHasher(AlgorithmArgon2id, "")

	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"garbage", "not-a-hash"},
		{"wrong algorithm", "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"zero rounds", "$argon2id$v=19$m=19456,t=0,p=1$c2FsdA$aGFzaA"},
		{"zero threads", "$argon2id$v=19$m=19456,t=2,p=0$c2FsdA$aGFzaA"},
		{"huge memory", "$argon2id$v=19$m=4294967295,t=2,p=1$c2FsdA$aGFzaA"},
		{"empty digest", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$"},
		{"truncated bcrypt", "$2b$12$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				require.False(t, h.Verify("test-password", tt.invalidHash))
				require.False(t, h.Verify("", tt.invalidHash))
			})
		})
	}
}

func TestPepper_ChangesDigest(t *testing.T) {
	peppered := NewHasher(AlgorithmArgon2id, "pepper-one")
	other := NewHasher(AlgorithmArgon2id, "pepper-two")

	hash, err := peppered.Hash("master")
	require.NoError(t, err)

	require.True(t, peppered.Verify("master", hash))
	require.False(t, other.Verify("master", hash), "a different pepper must not verify")
}

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := NewHasher(AlgorithmBcrypt, "")
	h.BcryptCost = bcrypt.MinCost

	hash, err := h.Hash("master")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2a$"))

	require.True(t, h.Verify("master", hash))
	require.False(t, h.Verify("Master", hash))
	require.False(t, h.NeedsRehash(hash))
}

func TestVerify_AcceptsLegacyBcryptFromArgonHasher(t *testing.T) {
	// Older vaults hold $2b$ hashes.
	raw, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	legacy := "$2b$" + strings.TrimPrefix(string(raw), "$2a$")

	h := NewHasher(AlgorithmArgon2id, "ignored-for-bcrypt")
	require.True(t, h.Verify("pw1", legacy))
	require.False(t, h.Verify("pw2", legacy))
	require.True(t, h.NeedsRehash(legacy))
}

func TestNeedsRehash_Argon2id(t *testing.T) {
	h := NewHasher(AlgorithmArgon2id, "")
	hash, err := h.Hash("pw")
	require.NoError(t, err)

	require.False(t, h.NeedsRehash(hash))
	require.True(t, h.NeedsRehash("$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"))
	require.True(t, h.NeedsRehash("garbage"))
}

func TestHash_UnsupportedAlgorithm(t *testing.T) {
	h := &Hasher{Algorithm: "md5"}
	_, err := h.Hash("pw")
	require.Error(t, err)
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool, 50)
	for range 50 {
		password, err := GeneratePassword(16)
		require.NoError(t, err)
		require.Len(t, password, 16)
		require.NotContains(t, seen, password, "duplicate password generated")
		seen[password] = true

		for _, char := range password {
			valid := (char >= 'a' && char <= 'z') ||
				(char >= 'A' && char <= 'Z') ||
				(char >= '0' && char <= '9')
			require.True(t, valid, "password should only contain alphanumeric characters")
		}
	}

	short, err := GeneratePassword(2)
	require.NoError(t, err)
	require.Len(t, short, 8)
}

func TestLoadOrGeneratePepper(t *testing.T) {
	t.Run("empty path disables pepper", func(t *testing.T) {
		pepper, err := LoadOrGeneratePepper("")
		require.NoError(t, err)
		require.Empty(t, pepper)
	})

	t.Run("generates once then reloads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "pepper")

		first, err := LoadOrGeneratePepper(path)
		require.NoError(t, err)
		require.NotEmpty(t, first)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0600), info.Mode().Perm())

		second, err := LoadOrGeneratePepper(path)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

func TestBcrypt_LongPasswords(t *testing.T) {
	h := NewHasher(AlgorithmBcrypt, "")
	h.BcryptCost = bcrypt.MinCost

	long := strings.Repeat("a", 72) + "tail"
	hash, err := h.Hash(long)
	require.NoError(t, err)

	require.True(t, h.Verify(long, hash))
	// Bytes past 72 still matter
	require.False(t, h.Verify(strings.Repeat("a", 72)+"tale", hash))
	require.False(t, h.Verify(strings.Repeat("a", 72), hash))

	exact := strings.Repeat("b", 72)
	hash, err = h.Hash(exact)
	require.NoError(t, err)
	require.True(t, h.Verify(exact, hash))
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(exact)))
}

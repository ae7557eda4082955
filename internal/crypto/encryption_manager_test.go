package crypto_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickward/twospace/internal/crypto"
)

func setupEncryptionManager(t *testing.T) *crypto.EncryptionManager {
	t.Helper()

	pair, err := crypto.GenerateNewEncryptionPair(filepath.Join(t.TempDir(), "keys"))
	require.NoError(t, err)

	em := crypto.NewEncryptionManager()
	require.NoError(t, em.LoadEncryptionKeys(pair.PrivatePath, pair.PublicPath))
	return em
}

func TestGenerateNewEncryptionPair(t *testing.T) {
	t.Parallel()
	keysDir := filepath.Join(t.TempDir(), "keys")

	pair, err := crypto.GenerateNewEncryptionPair(keysDir)
	require.NoError(t, err)
	assert.Contains(t, pair.PublicKey, "age1")
	assert.Contains(t, pair.PrivateKey, "AGE-SECRET-KEY-")

	info, err := os.Stat(pair.PrivatePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	_, err = crypto.GenerateNewEncryptionPair(" ")
	assert.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	t.Parallel()
	em := setupEncryptionManager(t)
	assert.True(t, em.HasIdentities())
	assert.True(t, em.HasRecipients())

	encrypted, err := em.Encrypt("secret  \nnote  \n")
	require.NoError(t, err)
	assert.True(t, crypto.IsAgeEncrypted(encrypted))

	decrypted, err := em.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "secret  \nnote  \n", decrypted)
}

func TestEncryptDecrypt_NoKeys(t *testing.T) {
	t.Parallel()
	em := crypto.NewEncryptionManager()

	_, err := em.Encrypt("x")
	assert.ErrorIs(t, err, crypto.ErrNoRecipients)

	_, err = em.Decrypt([]byte("age-encryption.org/v1\n"))
	assert.ErrorIs(t, err, crypto.ErrNoIdentities)
}

func TestAddRecipientsFromFile_SkipsComments(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	pair, err := crypto.GenerateNewEncryptionPair(tmp)
	require.NoError(t, err)

	path := filepath.Join(tmp, "recipients.txt")
	require.NoError(t, os.WriteFile(path, []byte("# team\n\n"+pair.PublicKey+"\n"), 0644))

	em := crypto.NewEncryptionManager()
	require.NoError(t, em.AddRecipientsFromFile(path))
	assert.True(t, em.HasRecipients())
	assert.False(t, em.HasIdentities())

	require.NoError(t, os.WriteFile(path, []byte("not-a-key\n"), 0644))
	assert.Error(t, crypto.NewEncryptionManager().AddRecipientsFromFile(path))
}

func TestIsAgeEncrypted(t *testing.T) {
	t.Parallel()

	assert.True(t, crypto.IsAgeEncrypted([]byte("age-encryption.org/v1\n-> X25519 abc")))
	assert.False(t, crypto.IsAgeEncrypted([]byte("# plain note")))
	assert.False(t, crypto.IsAgeEncrypted(nil))
}

func TestHasEncryptedFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"true", "---\nencrypted: true\n---\nbody", true},
		{"yes", "---\ntitle: x\nencrypted: Yes\n---\n", true},
		{"false", "---\nencrypted: false\n---\nbody", false},
		{"missing key", "---\ntitle: x\n---\nencrypted: true", false},
		{"no front matter", "encrypted: true", false},
		{"unterminated", "---\nencrypted: true\nbody", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crypto.HasEncryptedFrontmatter(tt.content))
		})
	}
}

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncryptor(t *testing.T) *Encryptor {
	t.Helper()
	enc, err := NewEncryptor("1234567890123456", "1234567890123456")
	require.NoError(t, err)
	return enc
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc := newTestEncryptor(t)

	for _, plain := range []string{"api-key", "a", "exactly-16-bytes", "a much longer credential string spanning several blocks"} {
		cipherText, err := enc.Encrypt(plain)
		require.NoError(t, err)
		require.NotEqual(t, plain, cipherText)

		got, err := enc.Decrypt(cipherText)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestEncryptEmptyPassesThrough(t *testing.T) {
	enc := newTestEncryptor(t)

	cipherText, err := enc.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, cipherText)

	plain, err := enc.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestDecryptGarbage(t *testing.T) {
	enc := newTestEncryptor(t)

	_, err := enc.Decrypt("not base64 at all!!!")
	assert.Error(t, err)

	_, err = enc.Decrypt("YWJj") // valid base64, wrong block size
	assert.Error(t, err)
}

func TestNewEncryptorValidation(t *testing.T) {
	_, err := NewEncryptor("short", "1234567890123456")
	assert.Error(t, err)

	_, err = NewEncryptor("1234567890123456", "too-short")
	assert.Error(t, err)
}

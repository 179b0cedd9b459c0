package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	secret := "1//0gRefreshTokenValue"

	encrypted, err := Encrypt(secret)
	require.NoError(t, err)
	assert.NotEqual(t, secret, encrypted)

	decrypted, err := Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, secret, decrypted)
}

func TestEncryptProducesFreshNonce(t *testing.T) {
	a, err := Encrypt("same input")
	require.NoError(t, err)
	b, err := Encrypt("same input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDecryptRejectsGarbage(t *testing.T) {
	_, err := Decrypt("not-base64!!!")
	assert.Error(t, err)

	_, err = Decrypt("YWJj")
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	// Valid base64, wrong ciphertext.
	_, err = Decrypt("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	assert.Error(t, err)
}

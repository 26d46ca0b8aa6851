package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
)

// Encryptor encrypts tenant marketplace credentials at rest using AES-CBC
// with a fixed key and IV supplied by configuration. Empty input passes
// through unchanged so optional credentials stay optional.
type Encryptor struct {
	key []byte
	iv  []byte
}

// NewEncryptor validates key material and returns an Encryptor.
// The key must be 16, 24 or 32 bytes; the IV must match the AES block size.
func NewEncryptor(secretKey, initVector string) (*Encryptor, error) {
	key := []byte(secretKey)
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("crypto: invalid key length %d", len(key))
	}
	iv := []byte(initVector)
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("crypto: invalid IV length %d, want %d", len(iv), aes.BlockSize)
	}
	return &Encryptor{key: key, iv: iv}, nil
}

// Encrypt returns the base64 encoded AES-CBC ciphertext of plainText.
func (e *Encryptor) Encrypt(plainText string) (string, error) {
	if plainText == "" {
		return "", nil
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", err
	}

	padded := pad([]byte(plainText), aes.BlockSize)
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, e.iv).CryptBlocks(encrypted, padded)

	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// Decrypt reverses Encrypt.
func (e *Encryptor) Decrypt(encryptedText string) (string, error) {
	if encryptedText == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(encryptedText)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", errors.New("crypto: ciphertext is not a multiple of the block size")
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", err
	}

	decrypted := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, e.iv).CryptBlocks(decrypted, raw)

	unpadded, err := unpad(decrypted, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("crypto: empty plaintext")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, errors.New("crypto: invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("crypto: invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}

package domain

import (
	"crypto/rand"
	"math/big"
)

const (
	ingestTokenPrefix = "vg_"
	ingestTokenLength = 32
	base62Chars       = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// GenerateIngestToken gera um token de ingestão para o header Authorization
// Formato: vg_<random32>
func GenerateIngestToken() (string, error) {
	randomPart, err := generateSecureRandomString(ingestTokenLength)
	if err != nil {
		return "", err
	}

	return ingestTokenPrefix + randomPart, nil
}

// generateSecureRandomString gera uma string aleatória segura usando crypto/rand
func generateSecureRandomString(length int) (string, error) {
	result := make([]byte, length)
	base62Len := big.NewInt(int64(len(base62Chars)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, base62Len)
		if err != nil {
			return "", err
		}
		result[i] = base62Chars[num.Int64()]
	}

	return string(result), nil
}

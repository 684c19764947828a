package testutil

import (
	"memo-go/internal/encryption"
	"memo-go/internal/memo"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() memo.Encryptor {
	return encryption.NewTestEncryptor()
}

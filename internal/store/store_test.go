package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordDeterministic(t *testing.T) {
	assert.Equal(t, HashPassword("secret"), HashPassword("secret"))
	assert.NotEqual(t, HashPassword("secret"), HashPassword("Secret"))
}

func TestHashPasswordKnownVector(t *testing.T) {
	// sha256("password"), hex encoded. The on-disk format rows written by
	// earlier versions of the app depend on.
	assert.Equal(t,
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		HashPassword("password"))
}

func TestHashPasswordNeverPlaintext(t *testing.T) {
	hash := HashPassword("hunter2")
	assert.NotContains(t, hash, "hunter2")
	assert.Len(t, hash, 64)
}

package password

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	hash, err := b.Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.NoError(t, b.Compare(hash, "s3cret"))
	require.ErrorIs(t, b.Compare(hash, "wrong"), ErrMismatch)
}

func TestBcrypt_CompareMalformedHash(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	err := b.Compare("not-a-hash", "s3cret")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMismatch)
}

func TestNewBcrypt_CostFallback(t *testing.T) {
	require.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	require.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).cost)
	require.Equal(t, 12, NewBcrypt(12).cost)
}

package idhash_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/northlight/website/pkg/idhash"
)

func TestHash(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, idhash.Hash("1.2.3.4", "s"), idhash.Hash("1.2.3.4", "s"))
	})

	t.Run("salt changes the digest", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, idhash.Hash("1.2.3.4", "a"), idhash.Hash("1.2.3.4", "b"))
	})

	t.Run("digest of salt colon value", func(t *testing.T) {
		t.Parallel()
		sum := sha256.Sum256([]byte("pepper:jane@example.com"))
		assert.Equal(t, hex.EncodeToString(sum[:]), idhash.Hash("jane@example.com", "pepper"))
	})

	t.Run("64 lowercase hex characters", func(t *testing.T) {
		t.Parallel()
		got := idhash.Hash("", "")
		assert.Len(t, got, 64)
		assert.Regexp(t, `^[0-9a-f]{64}$`, got)
	})
}

func TestHasher(t *testing.T) {
	t.Parallel()

	h := idhash.Hasher{IPSalt: "ip", EmailSalt: "mail"}
	assert.Equal(t, idhash.Hash("1.2.3.4", "ip"), h.IP("1.2.3.4"))
	assert.Equal(t, idhash.Hash("a@b.co", "mail"), h.Email("a@b.co"))
	assert.NotEqual(t, h.IP("x"), h.Email("x"))
}

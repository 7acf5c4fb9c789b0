// Package idhash derives stable, non-reversible identifiers from personal
// data such as IP addresses and e-mail addresses so they can be used as
// rate-limit keys and log fields without storing the raw value.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex SHA-256 digest of "salt:value".
// The result is always 64 characters long. An empty salt is allowed.
func Hash(value, salt string) string {
	sum := sha256.Sum256([]byte(salt + ":" + value))
	return hex.EncodeToString(sum[:])
}

// Hasher binds the salts used for IP and e-mail hashing.
type Hasher struct {
	IPSalt    string `env:"IP_HASH_SALT"`
	EmailSalt string `env:"EMAIL_HASH_SALT"`
}

// IP hashes a client IP address with the IP salt.
func (h Hasher) IP(ip string) string {
	return Hash(ip, h.IPSalt)
}

// Email hashes an e-mail address with the e-mail salt.
func (h Hasher) Email(email string) string {
	return Hash(email, h.EmailSalt)
}

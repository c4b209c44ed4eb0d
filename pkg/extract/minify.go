package extract

import (
	"crypto/sha256"
	"fmt"
	"math/big"
)

// MinifiedKey is one key together with its assigned short code.
type MinifiedKey struct {
	Key  string
	Code string
}

// Minifier assigns short, stable codes to translation keys. Codes are a
// configurable prefix plus a truncated base62 digest of the key, so a key's
// code never depends on which other keys exist. On collision the later key
// (in assignment order) widens its code by one digit at a time. Keys no
// longer than the threshold are kept verbatim.
type Minifier struct {
	prefix string
	length int
	thresh int
}

// maxProbeWidening bounds collision resolution before giving up.
const maxProbeWidening = 8

// base62DigestLen is the fixed width of a rendered digest: 128 bits fit
// into 22 base62 digits. Code lengths beyond it cannot be produced.
const base62DigestLen = 22

// NewMinifier creates a minifier producing codes of the given digest length.
func NewMinifier(length int, prefix string, thresh int) (*Minifier, error) {
	if length < 1 || length > base62DigestLen {
		return nil, fmt.Errorf("%w: length must be within [1, %d]", ErrInvalidMinify, base62DigestLen)
	}
	if thresh < 0 {
		return nil, fmt.Errorf("%w: threshold cannot be negative", ErrInvalidMinify)
	}
	return &Minifier{length: length, prefix: prefix, thresh: thresh}, nil
}

// Assign maps each distinct key to a code, processing keys in the order
// given. Callers must supply a deterministic order (first-seen over the
// file-then-offset sorted site list) so repeated runs over unchanged input
// produce identical codes. Duplicate keys are ignored after their first
// occurrence. Exhausting the collision widening budget fails with
// ErrMinifyCollision.
func (m *Minifier) Assign(keys []string) ([]MinifiedKey, error) {
	assigned := make([]MinifiedKey, 0, len(keys))
	byKey := make(map[string]struct{}, len(keys))
	byCode := make(map[string]string, len(keys))

	for _, key := range keys {
		if _, ok := byKey[key]; ok {
			continue
		}
		byKey[key] = struct{}{}

		code, err := m.assignOne(key, byCode)
		if err != nil {
			return nil, err
		}
		byCode[code] = key
		assigned = append(assigned, MinifiedKey{Key: key, Code: code})
	}

	return assigned, nil
}

func (m *Minifier) assignOne(key string, byCode map[string]string) (string, error) {
	if len(key) <= m.thresh {
		if owner, ok := byCode[key]; ok && owner != key {
			return "", fmt.Errorf("%w: %q vs %q", ErrMinifyCollision, key, owner)
		}
		return key, nil
	}

	digest := base62Digest(key)
	for width := m.length; width <= m.length+maxProbeWidening && width <= len(digest); width++ {
		code := m.prefix + digest[:width]
		if _, ok := byCode[code]; !ok {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrMinifyCollision, key)
}

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// base62Digest renders the first 128 bits of the key's SHA-256 as base62,
// zero-padded to a fixed width so truncation at any length is well defined.
func base62Digest(key string) string {
	sum := sha256.Sum256([]byte(key))
	n := new(big.Int).SetBytes(sum[:16])
	base := big.NewInt(int64(len(base62Alphabet)))
	mod := new(big.Int)

	buf := make([]byte, base62DigestLen)
	for i := len(buf) - 1; i >= 0; i-- {
		n.DivMod(n, base, mod)
		buf[i] = base62Alphabet[mod.Int64()]
	}
	return string(buf)
}

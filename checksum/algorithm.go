package checksum

import (
	"fmt"
	"strings"
)

// Algorithm names the scheme an alias was derived with.
type Algorithm string

const (
	MD5      Algorithm = "md5"
	SHA1     Algorithm = "sha1"
	Trunc512 Algorithm = "trunc512"
	SHA256   Algorithm = "sha256"
	SHA512   Algorithm = "sha512"
	// Label is any free-form name that is not a recognised digest.
	Label Algorithm = "label"
)

// Digests lists the digest algorithms in a stable order.
var Digests = []Algorithm{MD5, SHA1, Trunc512, SHA256, SHA512}

// HexLen returns the length of the hex encoding, or 0 for Label.
func (a Algorithm) HexLen() int {
	switch a {
	case MD5:
		return 32
	case SHA1:
		return 40
	case Trunc512:
		return 48
	case SHA256:
		return 64
	case SHA512:
		return 128
	default:
		return 0
	}
}

// IsDigest reports whether a is a hash algorithm.
func (a Algorithm) IsDigest() bool {
	return a.HexLen() > 0
}

// ParseAlgorithm parses an algorithm name as written in manifests and
// URLs. Names are case insensitive.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(s))
	if a.IsDigest() || a == Label {
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Infer classifies a token by length and charset. Anything that is not
// a hex string of a known digest length is a Label.
func Infer(value string) Algorithm {
	if !isHex(value) {
		return Label
	}
	for _, a := range Digests {
		if len(value) == a.HexLen() {
			return a
		}
	}
	return Label
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// normalize lowercases digests; labels are case sensitive.
func normalize(a Algorithm, value string) string {
	if a.IsDigest() {
		return strings.ToLower(value)
	}
	return value
}

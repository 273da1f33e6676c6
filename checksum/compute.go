package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
)

// trunc512Bytes is the number of leading sha512 bytes kept by trunc512.
const trunc512Bytes = 24

// Sums holds the hex digests of one sequence.
type Sums map[Algorithm]string

// Digester hashes a sequence with every digest algorithm. Input is
// normalized on the fly: line terminators are dropped and letters are
// uppercased.
type Digester struct {
	md5, sha1, sha256, sha512 hash.Hash
	w                         io.Writer
	buf                       []byte
	n                         int64
}

// NewDigester creates a Digester.
func NewDigester() *Digester {
	d := &Digester{
		md5:    md5.New(),
		sha1:   sha1.New(),
		sha256: sha256.New(),
		sha512: sha512.New(),
	}
	d.w = io.MultiWriter(d.md5, d.sha1, d.sha256, d.sha512)
	return d
}

// Write implements io.Writer.
func (d *Digester) Write(p []byte) (int, error) {
	buf := d.buf[:0]
	for _, c := range p {
		switch {
		case c == '\n' || c == '\r':
			continue
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		}
		buf = append(buf, c)
	}
	d.buf = buf
	d.n += int64(len(buf))

	if _, err := d.w.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Len returns the number of bases hashed.
func (d *Digester) Len() int64 {
	return d.n
}

// Sums returns the digests of everything written so far.
func (d *Digester) Sums() Sums {
	full := d.sha512.Sum(nil)
	return Sums{
		MD5:      hex.EncodeToString(d.md5.Sum(nil)),
		SHA1:     hex.EncodeToString(d.sha1.Sum(nil)),
		Trunc512: hex.EncodeToString(full[:trunc512Bytes]),
		SHA256:   hex.EncodeToString(d.sha256.Sum(nil)),
		SHA512:   hex.EncodeToString(full),
	}
}

// Compute hashes a sequence read from r.
func Compute(r io.Reader) (Sums, error) {
	d := NewDigester()
	if _, err := io.Copy(d, r); err != nil {
		return nil, err
	}
	return d.Sums(), nil
}

// Verify checks every digest alias of rec against sums. Labels are not
// checked.
func Verify(rec *Record, sums Sums) error {
	for _, a := range rec.Aliases {
		if !a.Algorithm.IsDigest() {
			continue
		}
		if got := sums[a.Algorithm]; got != normalize(a.Algorithm, a.Value) {
			return &MismatchError{ID: rec.ID, Algorithm: a.Algorithm, Want: a.Value, Got: got}
		}
	}
	return nil
}

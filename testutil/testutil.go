package testutil

import (
	"bytes"
	"fmt"
	"math/rand"
	"sync"
)

// DNA is the unambiguous nucleotide alphabet.
const DNA = "ACGT"

// RNG wraps a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bases returns n random bases drawn from DNA.
func (r *RNG) Bases(n int) []byte {
	return r.BasesFrom(n, DNA)
}

// BasesFrom returns n random bytes drawn from alphabet.
// Locks only once per call.
func (r *RNG) BasesFrom(n int, alphabet string) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[r.rand.Intn(len(alphabet))]
	}
	return out
}

// Sequence is one record of a FASTA fixture.
type Sequence struct {
	Name  string
	Bases []byte
}

// FASTA builds a FASTA file and its .fai index.
type FASTA struct {
	// Width is the number of bases per line. Zero writes each sequence
	// on a single line.
	Width int
	// CRLF terminates lines with "\r\n" instead of "\n".
	CRLF bool

	seqs []Sequence
}

// NewFASTA creates a builder wrapping lines at width bases.
func NewFASTA(width int) *FASTA {
	return &FASTA{Width: width}
}

// Add appends a sequence and returns the builder.
func (f *FASTA) Add(name string, bases []byte) *FASTA {
	f.seqs = append(f.seqs, Sequence{Name: name, Bases: bases})
	return f
}

// Build renders the FASTA file and the matching .fai index.
func (f *FASTA) Build() (fasta, fai []byte) {
	eol := "\n"
	if f.CRLF {
		eol = "\r\n"
	}

	var fa, ix bytes.Buffer
	for _, s := range f.seqs {
		fmt.Fprintf(&fa, ">%s%s", s.Name, eol)
		offset := fa.Len()

		width := f.Width
		if width <= 0 || width > len(s.Bases) {
			width = len(s.Bases)
		}

		for i := 0; i < len(s.Bases); i += width {
			end := min(i+width, len(s.Bases))
			fa.Write(s.Bases[i:end])
			fa.WriteString(eol)
		}

		fmt.Fprintf(&ix, "%s\t%d\t%d\t%d\t%d\n", s.Name, len(s.Bases), offset, width, width+len(eol))
	}
	return fa.Bytes(), ix.Bytes()
}

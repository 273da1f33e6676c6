package nucleotide

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/refget/testutil"
)

const iupac = "ACGTRYKMSWBDHVN-.acgtrykmswbdhvn"

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "NnTGCA", string(ReverseComplement(nil, []byte("TGCAnN"))))
	assert.Equal(t, "acgt", string(ReverseComplement(nil, []byte("acgt"))))
	assert.Equal(t, "BDHVKMRYSW", string(ReverseComplement(nil, []byte("WSRYKMBDHV"))))
	assert.Equal(t, "A", string(ReverseComplement(nil, []byte("U"))))
	assert.Equal(t, "x*-", string(ReverseComplement(nil, []byte("-*x"))))
	assert.Empty(t, ReverseComplement(nil, nil))

	b := []byte("AACGT")
	out := ReverseComplement(b, b)
	assert.Equal(t, "ACGTT", string(out))
	assert.Equal(t, "ACGTT", string(b))
}

func TestReverseComplement_Involution(t *testing.T) {
	rng := testutil.NewRNG(7)
	for n := range 20 {
		seq := rng.BasesFrom(n, iupac)
		twice := ReverseComplement(nil, ReverseComplement(nil, seq))
		assert.Equal(t, string(seq), string(twice))

		inPlace := append([]byte(nil), seq...)
		ReverseComplementInPlace(inPlace)
		assert.Equal(t, string(ReverseComplement(nil, seq)), string(inPlace))
	}
}

func TestComplement(t *testing.T) {
	b := []byte("ACGTacgtN")
	Complement(b)
	assert.Equal(t, "TGCAtgcaN", string(b))
	assert.Equal(t, byte('y'), ComplementBase('r'))
}

func TestCodon(t *testing.T) {
	assert.Equal(t, byte('M'), Codon('A', 'T', 'G'))
	assert.Equal(t, byte('M'), Codon('a', 'u', 'g'))
	assert.Equal(t, byte('W'), Codon('T', 'G', 'G'))
	assert.Equal(t, byte('*'), Codon('T', 'G', 'A'))
	assert.Equal(t, byte(Unknown), Codon('A', 'N', 'G'))
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"ATGAAA", "MK"},
		{"ATGAA", "MX"},
		{"ATGA", "MX"},
		{"ATGAAATAG", "MKX"},
		{"ATGTAAGGGCCC", "MX"},
		{"ATGNNNAAA", "MXK"},
		{"ATGRAAAAA", "MXK"},
		{"atgaaa", "MK"},
		{"AUGUUU", "MF"},
		{"GCTGGTACGG", "AGTX"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(Translate([]byte(tt.in))), tt.in)
	}
}

func TestTranslate_Length(t *testing.T) {
	rng := testutil.NewRNG(11)
	for n := 1; n < 60; n++ {
		// No T means no stop codon.
		seq := rng.BasesFrom(n, "ACG")
		out := Translate(seq)
		assert.Len(t, out, (n+2)/3)
		if n%3 != 0 {
			assert.Equal(t, byte(Unknown), out[len(out)-1])
		}
	}
}

func TestTranslator_ChunkBoundaries(t *testing.T) {
	rng := testutil.NewRNG(13)
	for round := range 50 {
		seq := rng.Bases(1 + rng.Intn(200))
		want := Translate(seq)

		var tr Translator
		var got []byte
		for rest := seq; len(rest) > 0; {
			n := min(len(rest), 1+rng.Intn(5))
			got = tr.Write(got, rest[:n])
			rest = rest[n:]
		}
		got = tr.Finish(got)

		assert.Equal(t, string(want), string(got), "round %d", round)
	}
}

func TestTranslator_StopsAfterStopCodon(t *testing.T) {
	var tr Translator
	out := tr.Write(nil, []byte("AT"))
	out = tr.Write(out, []byte("GT"))
	out = tr.Write(out, []byte("AAGG"))
	assert.True(t, tr.Done())
	out = tr.Write(out, []byte("ATGATG"))
	out = tr.Finish(out)

	assert.Equal(t, "MX", string(out))
	assert.False(t, tr.Done())
}

package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBases(t *testing.T) {
	rng := NewRNG(4711)

	b := rng.Bases(256)
	assert.Len(t, b, 256)
	for _, c := range b {
		assert.Contains(t, DNA, string(c))
	}

	assert.Equal(t, b, NewRNG(4711).Bases(256))
}

func TestFASTA_Build(t *testing.T) {
	fasta, fai := NewFASTA(4).
		Add("a", []byte("ACGTACGTAC")).
		Add("b", []byte("GG")).
		Build()

	assert.Equal(t, ">a\nACGT\nACGT\nAC\n>b\nGG\n", string(fasta))

	lines := strings.Split(strings.TrimSpace(string(fai)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a\t10\t3\t4\t5", lines[0])
	assert.Equal(t, "b\t2\t19\t2\t3", lines[1])
}

func TestFASTA_CRLF(t *testing.T) {
	f := NewFASTA(3)
	f.CRLF = true
	fasta, fai := f.Add("x", []byte("ACGTA")).Build()

	assert.Equal(t, ">x\r\nACG\r\nTA\r\n", string(fasta))
	assert.Equal(t, "x\t5\t4\t3\t5\n", string(fai))
}

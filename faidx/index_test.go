package faidx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	in := "chr1\t10\t6\t4\t5\nchr2\t3\t27\t3\t4\t99\n\n"

	ix, err := ParseIndex(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2, ix.Len())

	e, ok := ix.Lookup("chr1")
	require.True(t, ok)
	assert.Equal(t, Entry{Name: "chr1", Length: 10, Offset: 6, LineBases: 4, LineWidth: 5}, e)

	_, ok = ix.Lookup("chrM")
	assert.False(t, ok)

	assert.Equal(t, "chr2", ix.Entries()[1].Name)
}

func TestParseIndex_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"too few columns", "chr1\t10\t6\t4\n", 1},
		{"not a number", "chr1\t10\t6\t4\t5\nchr2\tten\t6\t4\t5\n", 2},
		{"negative", "chr1\t-1\t6\t4\t5\n", 1},
		{"width below bases", "chr1\t10\t6\t5\t4\n", 1},
		{"duplicate", "chr1\t10\t6\t4\t5\nchr1\t10\t6\t4\t5\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIndex(strings.NewReader(tt.in))
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestEntry_Pos(t *testing.T) {
	e := Entry{Offset: 6, LineBases: 4, LineWidth: 5}

	assert.Equal(t, int64(6), e.Pos(0))
	assert.Equal(t, int64(9), e.Pos(3))
	assert.Equal(t, int64(11), e.Pos(4))

	from, to := e.Span(2, 6)
	assert.Equal(t, int64(8), from)
	assert.Equal(t, int64(13), to)
}

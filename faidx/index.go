package faidx

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Entry is one row of a samtools .fai index.
type Entry struct {
	Name string
	// Length is the number of bases.
	Length int64
	// Offset is the byte offset of the first base.
	Offset int64
	// LineBases is the number of bases per full line.
	LineBases int64
	// LineWidth is the number of bytes per full line, terminator included.
	LineWidth int64
}

// Pos returns the byte position of base i.
func (e Entry) Pos(i int64) int64 {
	if e.LineBases == 0 {
		return e.Offset + i
	}
	return e.Offset + (i/e.LineBases)*e.LineWidth + i%e.LineBases
}

// Span returns the byte range [from, to) holding bases [start, end).
func (e Entry) Span(start, end int64) (from, to int64) {
	return e.Pos(start), e.Pos(end-1) + 1
}

// Index maps sequence names to their layout in one FASTA file.
// It is immutable once parsed.
type Index struct {
	entries []Entry
	byName  map[string]int
}

// ParseIndex reads a .fai index. Extra columns (FASTQ quality offsets)
// are ignored.
func ParseIndex(r io.Reader) (*Index, error) {
	ix := &Index{byName: make(map[string]int)}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < 5 {
			return nil, &ParseError{Line: line, Msg: "expected 5 tab-separated columns"}
		}

		var nums [4]int64
		for i := range nums {
			v, err := strconv.ParseInt(fields[i+1], 10, 64)
			if err != nil || v < 0 {
				return nil, &ParseError{Line: line, Msg: "invalid number " + strconv.Quote(fields[i+1])}
			}
			nums[i] = v
		}

		e := Entry{
			Name:      fields[0],
			Length:    nums[0],
			Offset:    nums[1],
			LineBases: nums[2],
			LineWidth: nums[3],
		}
		if e.LineWidth < e.LineBases || (e.LineBases == 0 && e.Length > 0) {
			return nil, &ParseError{Line: line, Msg: "line width smaller than line bases"}
		}
		if _, dup := ix.byName[e.Name]; dup {
			return nil, &ParseError{Line: line, Msg: "duplicate sequence " + strconv.Quote(e.Name)}
		}

		ix.byName[e.Name] = len(ix.entries)
		ix.entries = append(ix.entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ix, nil
}

// Lookup returns the entry for name.
func (ix *Index) Lookup(name string) (Entry, bool) {
	i, ok := ix.byName[name]
	if !ok {
		return Entry{}, false
	}
	return ix.entries[i], true
}

// Entries returns all entries in file order.
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// Len returns the number of sequences.
func (ix *Index) Len() int {
	return len(ix.entries)
}

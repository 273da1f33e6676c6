package nucleotide

// Unknown is emitted for ambiguous codons, for the stop codon that ends
// translation and for a trailing partial codon.
const Unknown = 'X'

// stop marks stop codons in codonTable.
const stop = '*'

// codonTable is the standard genetic code indexed by the 2-bit base
// codes of a codon, first base most significant. Bases are T, C, A, G.
const codonTable = "" +
	"FFLLSSSSYY**CC*W" +
	"LLLLPPPPHHQQRRRR" +
	"IIIMTTTTNNKKSSRR" +
	"VVVVAAAADDEEGGGG"

var baseCode [256]int8

func init() {
	for i := range baseCode {
		baseCode[i] = -1
	}
	for code, bases := range []string{"Tt", "Cc", "Aa", "Gg"} {
		for i := 0; i < len(bases); i++ {
			baseCode[bases[i]] = int8(code)
		}
	}
	baseCode['U'], baseCode['u'] = baseCode['T'], baseCode['T']
}

// Codon translates one codon. It returns Unknown for codons with
// ambiguous bases and '*' for stop codons.
func Codon(a, b, c byte) byte {
	x, y, z := baseCode[a], baseCode[b], baseCode[c]
	if x < 0 || y < 0 || z < 0 {
		return Unknown
	}
	return codonTable[int(x)<<4|int(y)<<2|int(z)]
}

// Translate translates bases from offset 0.
func Translate(bases []byte) []byte {
	var t Translator
	out := t.Write(make([]byte, 0, len(bases)/3+1), bases)
	return t.Finish(out)
}

// Translator translates a nucleotide stream delivered in chunks.
//
// Up to two bases are carried between calls so chunk boundaries never
// shift the reading frame. After a stop codon all further input is
// ignored.
type Translator struct {
	carry  [2]byte
	nCarry int
	done   bool
}

// Done reports whether translation has ended at a stop codon.
func (t *Translator) Done() bool {
	return t.done
}

// Write appends the residues of every codon completed by bases to dst.
func (t *Translator) Write(dst, bases []byte) []byte {
	if t.done {
		return dst
	}

	i := 0
	if t.nCarry > 0 {
		need := 3 - t.nCarry
		if len(bases) < need {
			t.nCarry += copy(t.carry[t.nCarry:], bases)
			return dst
		}

		var codon [3]byte
		copy(codon[:], t.carry[:t.nCarry])
		copy(codon[t.nCarry:], bases[:need])
		t.nCarry = 0
		i = need

		dst = t.emit(dst, Codon(codon[0], codon[1], codon[2]))
		if t.done {
			return dst
		}
	}

	for ; i+3 <= len(bases); i += 3 {
		dst = t.emit(dst, Codon(bases[i], bases[i+1], bases[i+2]))
		if t.done {
			return dst
		}
	}

	t.nCarry = copy(t.carry[:], bases[i:])
	return dst
}

// Finish appends the marker for a trailing partial codon, if any, and
// resets the translator.
func (t *Translator) Finish(dst []byte) []byte {
	if !t.done && t.nCarry > 0 {
		dst = append(dst, Unknown)
	}
	*t = Translator{}
	return dst
}

func (t *Translator) emit(dst []byte, aa byte) []byte {
	if aa == stop {
		t.done = true
		return append(dst, Unknown)
	}
	return append(dst, aa)
}

package nucleotide

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}

	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'},
		{'R', 'Y'}, {'K', 'M'},
		{'B', 'V'}, {'D', 'H'},
	}
	for _, p := range pairs {
		complement[p.a], complement[p.b] = p.b, p.a
		complement[p.a|0x20], complement[p.b|0x20] = p.b|0x20, p.a|0x20
	}
	// S, W, N, gaps and unknown bytes map to themselves.
	complement['U'], complement['u'] = 'A', 'a'
}

// ComplementBase returns the IUPAC complement of b, preserving case.
func ComplementBase(b byte) byte {
	return complement[b]
}

// Complement complements b in place.
func Complement(b []byte) {
	for i, c := range b {
		b[i] = complement[c]
	}
}

// ReverseComplement writes the reverse complement of src into dst and
// returns dst[:len(src)]. dst must not overlap src unless they are the
// same slice.
func ReverseComplement(dst, src []byte) []byte {
	if len(dst) < len(src) {
		dst = make([]byte, len(src))
	}
	dst = dst[:len(src)]
	if len(src) > 0 && &dst[0] == &src[0] {
		ReverseComplementInPlace(dst)
		return dst
	}

	n := len(src)
	for i, c := range src {
		dst[n-1-i] = complement[c]
	}
	return dst
}

// ReverseComplementInPlace reverse complements b in place.
func ReverseComplementInPlace(b []byte) {
	i, j := 0, len(b)-1
	for i < j {
		b[i], b[j] = complement[b[j]], complement[b[i]]
		i++
		j--
	}
	if i == j {
		b[i] = complement[b[i]]
	}
}

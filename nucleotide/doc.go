// Package nucleotide implements the strand and translation transforms
// applied to retrieved sequence.
//
// ReverseComplement follows the IUPAC ambiguity codes and preserves
// case. Translate and Translator use the standard genetic code.
package nucleotide

// Package negotiate selects the response representation of a request
// from its Accept header and renders sequence bodies in it.
//
// The set of representations is closed. Sequence endpoints produce
// plain text, FASTA or JSON; the metadata endpoint produces only the
// GA4GH metadata JSON document.
package negotiate

package negotiate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/munnerz/goautoneg"
)

// ErrUnsupported is returned when no acceptable representation exists.
var ErrUnsupported = errors.New("negotiate: unsupported representation")

// Media types emitted by the service.
const (
	ContentTypePlain    = "text/vnd.ga4gh.seq.v1.0.0+plain"
	ContentTypeFASTA    = "text/x-fasta"
	ContentTypeJSON     = "application/json"
	ContentTypeMetadata = "application/vnd.ga4gh.seq.v1.0.0+json"
)

// Kind is the endpoint a request targets.
type Kind int

const (
	KindSequence Kind = iota
	KindMetadata
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindMetadata:
		return "metadata"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Representation is a response body format.
type Representation int

const (
	Plain Representation = iota
	FASTA
	JSON
	Metadata
)

func (r Representation) String() string {
	switch r {
	case Plain:
		return "plain"
	case FASTA:
		return "fasta"
	case JSON:
		return "json"
	case Metadata:
		return "metadata"
	default:
		return fmt.Sprintf("Representation(%d)", int(r))
	}
}

// ContentType returns the media type emitted for r.
func (r Representation) ContentType() string {
	switch r {
	case FASTA:
		return ContentTypeFASTA
	case JSON:
		return ContentTypeJSON
	case Metadata:
		return ContentTypeMetadata
	default:
		return ContentTypePlain
	}
}

var mediaRanges = map[Kind]map[string]Representation{
	KindSequence: {
		"text/plain":                      Plain,
		"text/vnd.ga4gh.seq.v1.0.0+plain": Plain,
		"text/*":                          Plain,
		"*/*":                             Plain,
		"text/x-fasta":                    FASTA,
		"application/json":                JSON,
	},
	KindMetadata: {
		"application/json":                      Metadata,
		"application/vnd.ga4gh.seq.v1.0.0+json": Metadata,
		"application/*":                         Metadata,
	},
}

// Negotiate picks the representation for an endpoint kind from an
// Accept header. Media ranges are tried in quality order; q=0 excludes
// the representation it names.
//
// An empty header selects Plain for sequences. The metadata endpoint
// reads an empty header as text/plain and rejects it.
func Negotiate(kind Kind, accept string) (Representation, error) {
	table, ok := mediaRanges[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unknown endpoint %s", ErrUnsupported, kind)
	}

	if strings.TrimSpace(accept) == "" {
		if kind == KindSequence {
			return Plain, nil
		}
		accept = "text/plain"
	}

	clauses := goautoneg.ParseAccept(accept)

	excluded := make(map[Representation]bool)
	for _, c := range clauses {
		if c.Q > 0 {
			continue
		}
		if r, ok := table[mediaRange(c)]; ok && !strings.Contains(mediaRange(c), "*") {
			excluded[r] = true
		}
	}

	for _, c := range clauses {
		if c.Q <= 0 {
			continue
		}
		if r, ok := table[mediaRange(c)]; ok && !excluded[r] {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %s endpoint cannot produce %q", ErrUnsupported, kind, accept)
}

func mediaRange(a goautoneg.Accept) string {
	return strings.ToLower(a.Type + "/" + a.SubType)
}

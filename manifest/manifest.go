package manifest

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/refget/blobstore"
	"github.com/hupe1980/refget/codec"
)

// IndexSuffix is appended to a sequence file path when no index is named.
const IndexSuffix = ".fai"

var (
	// ErrInvalid is returned for manifests that fail validation.
	ErrInvalid = errors.New("manifest: invalid")
	// ErrMissingSequence is returned when a listed sequence is not in the
	// FASTA index of its file.
	ErrMissingSequence = errors.New("manifest: sequence not in index")
)

// Error records the manifest a failure belongs to.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return "manifest " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Manifest lists the sequence files served and the identifiers of every
// sequence in them.
type Manifest struct {
	Files []File `json:"files" yaml:"files"`
}

// File is one indexed FASTA file.
type File struct {
	// Path names the FASTA blob. Relative paths are resolved against the
	// directory of the manifest.
	Path string `json:"path" yaml:"path"`
	// Index names the .fai blob. Defaults to Path + ".fai".
	Index     string     `json:"index,omitempty" yaml:"index,omitempty"`
	Sequences []Sequence `json:"sequences" yaml:"sequences"`
}

// IndexPath returns the path of the FASTA index of f.
func (f File) IndexPath() string {
	if f.Index != "" {
		return f.Index
	}
	return f.Path + IndexSuffix
}

// Sequence lists the identifiers of one sequence.
type Sequence struct {
	// Name is the sequence name in the FASTA index.
	Name string `json:"name" yaml:"name"`
	// Checksums are registered in order. The first one is the canonical ID.
	Checksums []Checksum `json:"checksums" yaml:"checksums"`
	// Aliases are free-form labels registered after the checksums.
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Checksum is a typed digest of a sequence.
type Checksum struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Decode parses a manifest. The format follows the name: compressed
// blobs (".zst", ".lz4") are inflated first, ".yaml" and ".yml" are read
// as YAML and everything else is decoded with c.
func Decode(name string, data []byte, c codec.Codec) (*Manifest, error) {
	data, base, err := Decompress(name, data)
	if err != nil {
		return nil, &Error{Path: name, Err: err}
	}
	if c == nil {
		c = codec.Default
	}

	var m Manifest
	switch strings.ToLower(path.Ext(base)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = c.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, &Error{Path: name, Err: err}
	}

	if err := m.Validate(); err != nil {
		return nil, &Error{Path: name, Err: err}
	}
	m.resolve(path.Dir(name))
	return &m, nil
}

// Load reads and decodes the manifest blob name from store.
func Load(ctx context.Context, store blobstore.BlobStore, name string, c codec.Codec) (*Manifest, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, &Error{Path: name, Err: err}
	}
	return Decode(name, data, c)
}

// LoadAll loads every named manifest and merges them in order. Names
// ending in "/" are expanded with Discover.
func LoadAll(ctx context.Context, store blobstore.BlobStore, names []string, c codec.Codec) (*Manifest, error) {
	merged := &Manifest{}
	for _, name := range names {
		expanded := []string{name}
		if strings.HasSuffix(name, "/") {
			var err error
			if expanded, err = Discover(ctx, store, name); err != nil {
				return nil, &Error{Path: name, Err: err}
			}
		}

		for _, n := range expanded {
			m, err := Load(ctx, store, n, c)
			if err != nil {
				return nil, err
			}
			merged.Files = append(merged.Files, m.Files...)
		}
	}
	return merged, nil
}

// Discover lists the manifests stored under prefix.
func Discover(ctx context.Context, store blobstore.BlobStore, prefix string) ([]string, error) {
	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, n := range names {
		if IsManifest(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// IsManifest reports whether name looks like a manifest blob.
func IsManifest(name string) bool {
	base := strings.ToLower(stripCompression(path.Base(name)))
	for _, suffix := range []string{".json", ".yaml", ".yml"} {
		if strings.HasSuffix(base, "manifest"+suffix) {
			return true
		}
	}
	return false
}

// Validate checks the structural rules of a manifest.
func (m *Manifest) Validate() error {
	if len(m.Files) == 0 {
		return fmt.Errorf("%w: no files", ErrInvalid)
	}

	for i, f := range m.Files {
		if f.Path == "" {
			return fmt.Errorf("%w: file %d has no path", ErrInvalid, i)
		}
		for j, s := range f.Sequences {
			if s.Name == "" {
				return fmt.Errorf("%w: %s: sequence %d has no name", ErrInvalid, f.Path, j)
			}
			if len(s.Checksums) == 0 {
				return fmt.Errorf("%w: %s: %q has no checksums", ErrInvalid, f.Path, s.Name)
			}
		}
	}
	return nil
}

// resolve makes relative paths relative to dir.
func (m *Manifest) resolve(dir string) {
	if dir == "." || dir == "" {
		return
	}
	for i := range m.Files {
		f := &m.Files[i]
		if f.Index == "" {
			f.Index = f.IndexPath()
		}
		if !path.IsAbs(f.Path) {
			f.Path = path.Join(dir, f.Path)
		}
		if !path.IsAbs(f.Index) {
			f.Index = path.Join(dir, f.Index)
		}
	}
}

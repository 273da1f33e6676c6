package checksum

// Alias is one identifier a sequence can be retrieved by.
type Alias struct {
	Algorithm Algorithm
	Value     string
}

// String returns the alias value.
func (a Alias) String() string {
	return a.Value
}

// Record describes one retrievable sequence.
type Record struct {
	// ID is the canonical identifier.
	ID string
	// Name is the sequence name in the FASTA index.
	Name string
	// File is the path of the FASTA file holding the sequence.
	File string
	// Length is the number of bases.
	Length int64
	// Aliases lists every identifier in registration order. The
	// canonical ID is among them.
	Aliases []Alias
}

// NewRecord builds a record whose canonical ID is the first alias.
func NewRecord(name, file string, length int64, aliases ...Alias) *Record {
	r := &Record{Name: name, File: file, Length: length, Aliases: aliases}
	if len(aliases) > 0 {
		r.ID = normalize(aliases[0].Algorithm, aliases[0].Value)
	}
	return r
}

// Metadata is the JSON metadata document of a sequence.
type Metadata struct {
	Length  int64        `json:"length"`
	ID      string       `json:"id"`
	Aliases []AliasEntry `json:"aliases"`
}

// AliasEntry is one element of Metadata.Aliases.
type AliasEntry struct {
	Alias string `json:"alias"`
}

// Envelope wraps Metadata for the metadata endpoint.
type Envelope struct {
	Metadata Metadata `json:"metadata"`
}

// Metadata returns the metadata document for r.
func (r *Record) Metadata() Metadata {
	aliases := make([]AliasEntry, len(r.Aliases))
	for i, a := range r.Aliases {
		aliases[i] = AliasEntry{Alias: a.Value}
	}
	return Metadata{Length: r.Length, ID: r.ID, Aliases: aliases}
}

// Digest returns the registered value for a, if any.
func (r *Record) Digest(a Algorithm) (string, bool) {
	for _, al := range r.Aliases {
		if al.Algorithm == a {
			return al.Value, true
		}
	}
	return "", false
}

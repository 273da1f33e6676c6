package negotiate

import (
	"io"
	"unicode/utf8"

	"github.com/hupe1980/refget/codec"
)

// DefaultLineWidth is the number of bases per FASTA line.
const DefaultLineWidth = 60

// Writer receives sequence bases and renders them in a representation.
// Close completes the body. It does not close the underlying writer.
type Writer interface {
	io.Writer
	Close() error
}

type writerOptions struct {
	lineWidth int
	codec     codec.Codec
}

// WriterOption configures NewWriter.
type WriterOption func(*writerOptions)

// WithLineWidth sets the FASTA line width. Zero or less disables wrapping.
func WithLineWidth(n int) WriterOption {
	return func(o *writerOptions) {
		o.lineWidth = n
	}
}

// WithCodec sets the codec used to encode JSON header fields.
func WithCodec(c codec.Codec) WriterOption {
	return func(o *writerOptions) {
		o.codec = c
	}
}

// NewWriter returns a body writer for sequence id. Metadata bodies are
// encoded whole and pass through unchanged.
func (r Representation) NewWriter(w io.Writer, id string, optFns ...WriterOption) Writer {
	opts := writerOptions{
		lineWidth: DefaultLineWidth,
		codec:     codec.Default,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	switch r {
	case FASTA:
		return &fastaWriter{w: w, id: id, width: opts.lineWidth}
	case JSON:
		return &jsonWriter{w: w, id: id, codec: opts.codec}
	default:
		return plainWriter{w}
	}
}

type plainWriter struct {
	io.Writer
}

func (plainWriter) Close() error {
	return nil
}

type fastaWriter struct {
	w      io.Writer
	id     string
	width  int
	col    int
	header bool
	buf    []byte
}

func (f *fastaWriter) writeHeader() {
	if !f.header {
		f.header = true
		f.buf = append(f.buf, '>')
		f.buf = append(f.buf, f.id...)
		f.buf = append(f.buf, '\n')
	}
}

func (f *fastaWriter) Write(p []byte) (int, error) {
	f.buf = f.buf[:0]
	f.writeHeader()

	if f.width <= 0 {
		f.buf = append(f.buf, p...)
		f.col += len(p)
	} else {
		for rest := p; len(rest) > 0; {
			n := min(len(rest), f.width-f.col)
			f.buf = append(f.buf, rest[:n]...)
			rest = rest[n:]
			f.col += n
			if f.col == f.width {
				f.buf = append(f.buf, '\n')
				f.col = 0
			}
		}
	}

	if _, err := f.w.Write(f.buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (f *fastaWriter) Close() error {
	f.buf = f.buf[:0]
	f.writeHeader()
	if f.col > 0 {
		f.buf = append(f.buf, '\n')
		f.col = 0
	}
	_, err := f.w.Write(f.buf)
	return err
}

type jsonWriter struct {
	w      io.Writer
	id     string
	codec  codec.Codec
	header bool
	buf    []byte
}

func (j *jsonWriter) writeHeader() error {
	if j.header {
		return nil
	}
	j.header = true

	id, err := j.codec.Marshal(j.id)
	if err != nil {
		return err
	}
	j.buf = append(j.buf, `{"id":`...)
	j.buf = append(j.buf, id...)
	j.buf = append(j.buf, `,"sequence":"`...)
	return nil
}

func (j *jsonWriter) Write(p []byte) (int, error) {
	j.buf = j.buf[:0]
	if err := j.writeHeader(); err != nil {
		return 0, err
	}
	j.buf = appendEscaped(j.buf, p)

	if _, err := j.w.Write(j.buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (j *jsonWriter) Close() error {
	j.buf = j.buf[:0]
	if err := j.writeHeader(); err != nil {
		return err
	}
	j.buf = append(j.buf, `"}`...)
	_, err := j.w.Write(j.buf)
	return err
}

const hexDigits = "0123456789abcdef"

// appendEscaped appends p as the inside of a JSON string. Sequence data
// is ASCII; other bytes are escaped individually.
func appendEscaped(dst, p []byte) []byte {
	for _, c := range p {
		switch {
		case c == '"' || c == '\\':
			dst = append(dst, '\\', c)
		case c < 0x20 || c >= utf8.RuneSelf:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

package manifest

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var zstdDecoderPool sync.Pool

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Decompress inflates data according to the extension of name. It
// returns the payload and name without the compression extension.
// Uncompressed data is returned unchanged.
func Decompress(name string, data []byte) ([]byte, string, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".zst", ".zstd":
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, "", err
		}
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, "", fmt.Errorf("zstd: %w", err)
		}
		return out, stripCompression(name), nil
	case ".lz4":
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, "", fmt.Errorf("lz4: %w", err)
		}
		return out, stripCompression(name), nil
	default:
		return data, name, nil
	}
}

func stripCompression(name string) string {
	switch ext := path.Ext(name); strings.ToLower(ext) {
	case ".zst", ".zstd", ".lz4":
		return strings.TrimSuffix(name, ext)
	default:
		return name
	}
}

package artifact

import (
	"compress/zlib"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// WriteCompressed serializes the artifact to compact JSON and passes it
// through a zlib deflate stream, the delivery encoding the transport layer
// expects.
//
// Parameters:
//   - w: the destination stream
//
// Returns:
//   - error: serialization or write failure
func (a *Artifact) WriteCompressed(w io.Writer) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("artifact: marshal: %w", err)
	}
	zw := zlib.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return fmt.Errorf("artifact: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("artifact: compress: %w", err)
	}
	return nil
}

// ReadCompressed inflates and decodes an artifact previously written with
// WriteCompressed.
//
// Parameters:
//   - r: the source stream
//
// Returns:
//   - *Artifact: the decoded artifact
//   - error: decompression or decode failure
func ReadCompressed(r io.Reader) (*Artifact, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("artifact: decompress: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("artifact: decompress: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("artifact: decode: %w", err)
	}
	return &a, nil
}

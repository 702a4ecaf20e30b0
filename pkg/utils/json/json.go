// Package json provides the project-wide JSON codec, backed by sonic.
//
// All marshalling in skein goes through this package so the codec can be
// swapped in one place.
package json

import (
	"io"

	"github.com/bytedance/sonic"
)

// Marshal serializes v into JSON bytes.
func Marshal(v interface{}) ([]byte, error) {
	return sonic.Marshal(v)
}

// MarshalIndent serializes v into indented JSON bytes.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return sonic.ConfigDefault.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses JSON bytes into v.
func Unmarshal(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}

// NewDecoder returns a streaming decoder reading from r.
func NewDecoder(r io.Reader) sonic.Decoder {
	return sonic.ConfigDefault.NewDecoder(r)
}

// NewEncoder returns a streaming encoder writing to w.
func NewEncoder(w io.Writer) sonic.Encoder {
	return sonic.ConfigDefault.NewEncoder(w)
}

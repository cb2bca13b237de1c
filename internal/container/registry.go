package container

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned by Probe when no registered codec
// recognizes the buffer.
var ErrUnknownFormat = errors.New("unrecognized container format")

// Codec parses and serializes one container format. Decode and Encode are
// stateless: Encode re-reads the container layout from the base buffer it
// is given, so a File carries no format-private state between the two.
type Codec interface {
	// Format returns the format this codec handles.
	Format() Format

	// Sniff reports whether the buffer starts with this format's
	// signature. Sniff must not allocate proportionally to the buffer.
	Sniff(b []byte) bool

	// Decode parses the full buffer into a File.
	Decode(b []byte) (*File, error)

	// Encode serializes the file's current tag state into a new buffer,
	// splicing the untouched audio data out of base. base must be the
	// byte-for-byte container the File was decoded from.
	Encode(f *File, base []byte) ([]byte, error)
}

// codecs holds the registered codecs in registration order.
// Format packages register themselves during init.
var codecs []Codec

// Register registers a codec. It is called by format packages during
// initialization and is not safe for concurrent use.
func Register(c Codec) {
	codecs = append(codecs, c)
}

// Probe detects the buffer's format and parses it. It returns
// ErrUnknownFormat (wrapped) when no codec claims the buffer.
func Probe(b []byte) (*File, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: %d bytes is too small for any signature", ErrUnknownFormat, len(b))
	}
	for _, c := range codecs {
		if c.Sniff(b) {
			f, err := c.Decode(b)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", c.Format(), err)
			}
			return f, nil
		}
	}
	return nil, ErrUnknownFormat
}

// Encode serializes the file back into container bytes using base as the
// audio source.
func Encode(f *File, base []byte) ([]byte, error) {
	for _, c := range codecs {
		if c.Format() == f.Format {
			return c.Encode(f, base)
		}
	}
	return nil, fmt.Errorf("no codec for format %s", f.Format)
}

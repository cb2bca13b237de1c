// Package mp3 implements the MP3 container codec: ID3v2.3/2.4 tag
// parsing, ID3v2.4 tag writing, the ID3v1 trailer, and MPEG frame header
// properties.
package mp3

import (
	"fmt"

	"github.com/subframe7536/music-tag-native/internal/container"
)

type codec struct{}

func init() {
	container.Register(codec{})
}

func (codec) Format() container.Format {
	return container.FormatMP3
}

// Sniff recognizes an ID3v2 header or a bare MPEG frame sync.
func (codec) Sniff(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	if string(b[:3]) == "ID3" {
		return true
	}
	return b[0] == 0xFF && b[1]&0xE0 == 0xE0
}

func (codec) Decode(b []byte) (*container.File, error) {
	var audioStart int64
	var tags []*container.Tag

	if hasID3v2(b) {
		tag, size, err := parseID3v2(b)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
		audioStart = size
	}

	audioEnd := int64(len(b))
	if v1 := parseID3v1(b); v1 != nil {
		tags = append(tags, v1)
		audioEnd -= id3v1Size
	}

	props, err := parseProperties(b, audioStart, audioEnd)
	if err != nil {
		return nil, err
	}

	f := container.NewFile(container.FormatMP3, props)
	for _, t := range tags {
		f.AddTag(t)
	}
	return f, nil
}

func (codec) Encode(f *container.File, base []byte) ([]byte, error) {
	audioStart := int64(0)
	if hasID3v2(base) {
		size, err := id3v2TagSize(base)
		if err != nil {
			return nil, err
		}
		audioStart = size
	}
	audioEnd := int64(len(base))
	if hasID3v1(base) {
		audioEnd -= id3v1Size
	}
	if audioStart > audioEnd {
		return nil, fmt.Errorf("ID3v2 tag size %d overruns audio data", audioStart)
	}

	out := make([]byte, 0, len(base))
	if t := f.Tag(container.TagID3v2); t != nil {
		out = append(out, encodeID3v2(t)...)
	}
	out = append(out, base[audioStart:audioEnd]...)
	if t := f.Tag(container.TagID3v1); t != nil {
		out = append(out, encodeID3v1(t)...)
	}
	return out, nil
}

func hasID3v2(b []byte) bool {
	return len(b) >= id3v2HeaderSize && string(b[:3]) == "ID3"
}

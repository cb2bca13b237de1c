// Package wav implements the WAV container codec: RIFF chunk walking,
// fmt/data derived properties, and the LIST INFO metadata chunk.
package wav

import (
	"fmt"
	"strings"
	"time"

	binutil "github.com/subframe7536/music-tag-native/internal/binary"
	"github.com/subframe7536/music-tag-native/internal/container"
)

const riffHeaderSize = 12

// infoKeys maps RIFF INFO FOURCCs onto normalized keys.
var infoKeys = map[string]string{
	"INAM": container.KeyTitle,
	"IART": container.KeyArtist,
	"IPRD": container.KeyAlbum,
	"IGNR": container.KeyGenre,
	"ICMT": container.KeyComment,
	"ICRD": container.KeyDate,
	"ICOP": container.KeyCopyright,
	"ITRK": container.KeyTrackNumber,
}

var keyInfos = inverse(infoKeys)

func inverse(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for fourcc, key := range m {
		out[key] = fourcc
	}
	return out
}

type codec struct{}

func init() {
	container.Register(codec{})
}

func (codec) Format() container.Format {
	return container.FormatWAV
}

func (codec) Sniff(b []byte) bool {
	return len(b) >= riffHeaderSize && string(b[:4]) == "RIFF" && string(b[8:12]) == "WAVE"
}

func (codec) Decode(b []byte) (*container.File, error) {
	r := binutil.NewReader(b)

	var props container.Properties
	var byteRate uint32
	var dataSize int64
	var tag *container.Tag

	err := walkChunks(r, func(fourcc string, off, length int64) error {
		switch fourcc {
		case "fmt ":
			p, br, err := parseFmt(r, off, length)
			if err != nil {
				return err
			}
			props = p
			byteRate = br
		case "data":
			dataSize = length
		case "LIST":
			t, err := parseListInfo(r, off, length)
			if err != nil {
				return err
			}
			if t != nil {
				tag = t
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if byteRate > 0 && dataSize > 0 {
		seconds := float64(dataSize) / float64(byteRate)
		props.Duration = time.Duration(seconds * float64(time.Second))
		props.Bitrate = int(byteRate) * 8 / 1000
	}

	f := container.NewFile(container.FormatWAV, props)
	if tag != nil {
		f.AddTag(tag)
	}
	return f, nil
}

func (codec) Encode(f *container.File, base []byte) ([]byte, error) {
	r := binutil.NewReader(base)

	w := binutil.NewWriter()
	w.String("RIFF")
	w.Uint32LE(0) // patched below
	w.String("WAVE")

	err := walkChunks(r, func(fourcc string, off, length int64) error {
		if fourcc == "LIST" {
			listType, err := r.Bytes(off, 4, "LIST type")
			if err == nil && string(listType) == "INFO" {
				return nil
			}
		}
		raw, err := r.Bytes(off-8, int(length)+8, "chunk")
		if err != nil {
			return err
		}
		w.Raw(raw)
		if length%2 == 1 {
			w.Byte(0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if tag := f.Tag(container.TagRIFFInfo); tag != nil && tag.Len() > 0 {
		writeListInfo(w, tag)
	}

	w.SetUint32LE(4, uint32(w.Len()-8))
	return w.Bytes(), nil
}

// walkChunks iterates top-level RIFF chunks, calling fn with each
// chunk's FOURCC and body position. Chunks are word-aligned; a chunk
// with an odd length is followed by a pad byte.
func walkChunks(r *binutil.Reader, fn func(fourcc string, off, length int64) error) error {
	if r.Size() < riffHeaderSize {
		return fmt.Errorf("buffer too small for RIFF header")
	}

	off := int64(riffHeaderSize)
	for off+8 <= r.Size() {
		fourcc, err := r.Bytes(off, 4, "chunk FOURCC")
		if err != nil {
			return err
		}
		size, err := r.Uint32LE(off+4, "chunk size")
		if err != nil {
			return err
		}
		off += 8

		length := int64(size)
		if off+length > r.Size() {
			return fmt.Errorf("chunk %q of %d bytes runs past end of buffer", fourcc, size)
		}
		if err := fn(string(fourcc), off, length); err != nil {
			return err
		}

		off += length
		if length%2 == 1 {
			off++
		}
	}
	return nil
}

// parseFmt extracts audio properties from the fmt chunk and returns the
// byte rate, which duration and bitrate derive from once the data chunk
// size is known.
func parseFmt(r *binutil.Reader, off, length int64) (container.Properties, uint32, error) {
	var props container.Properties
	if length < 16 {
		return props, 0, fmt.Errorf("fmt chunk too small: %d bytes", length)
	}

	channels, err := r.Uint16LE(off+2, "channel count")
	if err != nil {
		return props, 0, err
	}
	sampleRate, err := r.Uint32LE(off+4, "sample rate")
	if err != nil {
		return props, 0, err
	}
	byteRate, err := r.Uint32LE(off+8, "byte rate")
	if err != nil {
		return props, 0, err
	}
	bitsPerSample, err := r.Uint16LE(off+14, "bits per sample")
	if err != nil {
		return props, 0, err
	}

	props.Channels = int(channels)
	props.SampleRate = int(sampleRate)
	props.BitDepth = int(bitsPerSample)
	return props, byteRate, nil
}

// parseListInfo reads a LIST chunk of type INFO into a RIFF INFO tag,
// or returns nil for LIST chunks of any other type.
func parseListInfo(r *binutil.Reader, off, length int64) (*container.Tag, error) {
	if length < 4 {
		return nil, nil
	}
	listType, err := r.Bytes(off, 4, "LIST type")
	if err != nil {
		return nil, err
	}
	if string(listType) != "INFO" {
		return nil, nil
	}

	tag := container.NewTag(container.TagRIFFInfo)
	end := off + length
	off += 4
	for off+8 <= end {
		fourcc, err := r.Bytes(off, 4, "INFO FOURCC")
		if err != nil {
			return nil, err
		}
		size, err := r.Uint32LE(off+4, "INFO entry size")
		if err != nil {
			return nil, err
		}
		off += 8

		if off+int64(size) > end {
			return nil, fmt.Errorf("INFO entry %q runs past LIST chunk", fourcc)
		}
		raw, err := r.Bytes(off, int(size), "INFO entry value")
		if err != nil {
			return nil, err
		}
		value := strings.TrimRight(string(raw), "\x00")

		key, ok := infoKeys[string(fourcc)]
		if !ok {
			key = "info:" + strings.ToLower(strings.TrimSpace(string(fourcc)))
		}
		if value != "" {
			tag.Set(key, value)
		}

		off += int64(size)
		if size%2 == 1 {
			off++
		}
	}
	return tag, nil
}

// writeListInfo appends a LIST INFO chunk carrying the tag's items.
// Values are NUL-terminated and entries word-aligned. Items with no
// FOURCC mapping and no "info:" prefix are dropped; the INFO chunk has
// no free-form key space.
func writeListInfo(w *binutil.Writer, tag *container.Tag) {
	w.String("LIST")
	sizeOff := w.Len()
	w.Uint32LE(0) // patched below
	w.String("INFO")

	for _, key := range tag.Keys() {
		fourcc, ok := keyInfos[key]
		if !ok {
			rest, found := strings.CutPrefix(key, "info:")
			if !found || len(rest) > 4 {
				continue
			}
			fourcc = strings.ToUpper(rest)
			for len(fourcc) < 4 {
				fourcc += " "
			}
		}
		value, _ := tag.Get(key)

		w.String(fourcc)
		w.Uint32LE(uint32(len(value) + 1))
		w.String(value)
		w.Byte(0)
		if (len(value)+1)%2 == 1 {
			w.Byte(0)
		}
	}

	w.SetUint32LE(sizeOff, uint32(w.Len()-sizeOff-4))
}

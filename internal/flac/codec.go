// Package flac implements the FLAC container codec: metadata block
// parsing and rewriting, STREAMINFO properties, Vorbis comments, and
// PICTURE blocks. Audio frames are never touched; Encode splices them
// out of the base buffer.
package flac

import (
	"fmt"
	"time"

	binutil "github.com/subframe7536/music-tag-native/internal/binary"
	"github.com/subframe7536/music-tag-native/internal/container"
)

// Metadata block types.
const (
	blockStreamInfo    = 0
	blockPadding       = 1
	blockVorbisComment = 4
	blockPicture       = 6
)

const streamInfoSize = 34

type codec struct{}

func init() {
	container.Register(codec{})
}

func (codec) Format() container.Format {
	return container.FormatFLAC
}

func (codec) Sniff(b []byte) bool {
	return len(b) >= 4 && string(b[:4]) == "fLaC"
}

func (codec) Decode(b []byte) (*container.File, error) {
	r := binutil.NewReader(b)

	var props container.Properties
	var tag *container.Tag

	err := walkBlocks(r, func(blockType uint8, off, length int64) error {
		switch blockType {
		case blockStreamInfo:
			p, err := parseStreamInfo(r, off, length)
			if err != nil {
				return err
			}
			props = p
		case blockVorbisComment:
			if tag == nil {
				tag = container.NewTag(container.TagVorbis)
			}
			if err := parseVorbisComment(r, off, length, tag); err != nil {
				return err
			}
		case blockPicture:
			pic, err := parsePictureBlock(r, off, length)
			if err != nil {
				return err
			}
			if tag == nil {
				tag = container.NewTag(container.TagVorbis)
			}
			tag.SetPictureAt(tag.PictureCount(), pic)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f := container.NewFile(container.FormatFLAC, props)
	if tag != nil {
		f.AddTag(tag)
	}
	return f, nil
}

func (codec) Encode(f *container.File, base []byte) ([]byte, error) {
	r := binutil.NewReader(base)

	// Collect the raw bytes of blocks we pass through unchanged. Comment,
	// picture, and padding blocks are dropped; they are rebuilt from the
	// tag state below.
	var kept [][]byte
	audioStart := int64(0)
	err := walkBlocks(r, func(blockType uint8, off, length int64) error {
		switch blockType {
		case blockVorbisComment, blockPicture, blockPadding:
		default:
			raw, err := r.Bytes(off-4, int(length)+4, "metadata block")
			if err != nil {
				return err
			}
			kept = append(kept, raw)
		}
		audioStart = off + length
		return nil
	})
	if err != nil {
		return nil, err
	}

	blocks := kept
	if tag := f.Tag(container.TagVorbis); tag != nil {
		blocks = append(blocks, encodeVorbisComment(tag))
		for _, pic := range tag.Pictures() {
			blocks = append(blocks, encodePictureBlock(pic))
		}
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no metadata blocks to write")
	}

	w := binutil.NewWriter()
	w.String("fLaC")
	for i, raw := range blocks {
		header := raw[0] &^ 0x80
		if i == len(blocks)-1 {
			header |= 0x80
		}
		w.Byte(header)
		w.Raw(raw[1:])
	}
	w.Raw(base[audioStart:])
	return w.Bytes(), nil
}

// walkBlocks iterates the metadata blocks after the magic, calling fn
// with each block's type and body position.
func walkBlocks(r *binutil.Reader, fn func(blockType uint8, off, length int64) error) error {
	if r.Size() < 4 {
		return fmt.Errorf("buffer too small for FLAC magic")
	}

	off := int64(4)
	for {
		header, err := r.Uint32(off, "metadata block header")
		if err != nil {
			return err
		}
		isLast := header>>31 == 1
		blockType := uint8(header >> 24 & 0x7F)
		length := int64(header & 0x00FFFFFF)
		off += 4

		if err := fn(blockType, off, length); err != nil {
			return err
		}
		off += length

		if isLast {
			return nil
		}
		if off >= r.Size() {
			return fmt.Errorf("metadata blocks run past end of buffer")
		}
	}
}

// parseStreamInfo extracts audio properties from the STREAMINFO block.
func parseStreamInfo(r *binutil.Reader, off, length int64) (container.Properties, error) {
	var props container.Properties
	if length != streamInfoSize {
		return props, fmt.Errorf("invalid STREAMINFO size: %d", length)
	}
	data, err := r.Bytes(off, streamInfoSize, "STREAMINFO block")
	if err != nil {
		return props, err
	}

	// Bytes 10-17 pack sample rate (20 bits), channels-1 (3 bits),
	// bits-per-sample-1 (5 bits), and total samples (36 bits).
	var packed uint64
	for _, b := range data[10:18] {
		packed = packed<<8 | uint64(b)
	}

	sampleRate := packed >> 44 & 0xFFFFF
	channels := (packed>>41)&0x7 + 1
	bitsPerSample := (packed>>36)&0x1F + 1
	totalSamples := packed & 0xFFFFFFFFF

	props.SampleRate = int(sampleRate)
	props.Channels = int(channels)
	props.BitDepth = int(bitsPerSample)
	if sampleRate > 0 {
		seconds := float64(totalSamples) / float64(sampleRate)
		props.Duration = time.Duration(seconds * float64(time.Second))
	}
	// FLAC reports no bit rate; callers estimate from size and duration.
	return props, nil
}

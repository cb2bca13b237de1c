package flac

import (
	"bytes"
	"fmt"
	"strings"

	binutil "github.com/subframe7536/music-tag-native/internal/binary"
	"github.com/subframe7536/music-tag-native/internal/container"
)

// vorbisAliases maps alternate spellings seen in the wild onto the
// canonical normalized key.
var vorbisAliases = map[string]string{
	"totaltracks": container.KeyTrackTotal,
	"totaldiscs":  container.KeyDiscTotal,
}

// parseVorbisComment reads a VORBIS_COMMENT block body into tag. Vorbis
// field names are case-insensitive; they are lowercased on the way in.
func parseVorbisComment(r *binutil.Reader, off, length int64, tag *container.Tag) error {
	end := off + length

	vendorLen, err := r.Uint32LE(off, "vendor length")
	if err != nil {
		return err
	}
	off += 4
	vendor, err := r.Bytes(off, int(vendorLen), "vendor string")
	if err != nil {
		return err
	}
	tag.Vendor = string(vendor)
	off += int64(vendorLen)

	count, err := r.Uint32LE(off, "comment count")
	if err != nil {
		return err
	}
	off += 4

	for i := uint32(0); i < count; i++ {
		if off >= end {
			return fmt.Errorf("comment %d runs past block end", i)
		}
		commentLen, err := r.Uint32LE(off, "comment length")
		if err != nil {
			return err
		}
		off += 4
		raw, err := r.Bytes(off, int(commentLen), "comment")
		if err != nil {
			return err
		}
		off += int64(commentLen)

		name, value, found := strings.Cut(string(raw), "=")
		if !found || name == "" {
			continue
		}
		key := strings.ToLower(name)
		if canonical, ok := vorbisAliases[key]; ok {
			key = canonical
		}
		tag.Set(key, value)
	}
	return nil
}

// encodeVorbisComment serializes the tag's items as a complete
// VORBIS_COMMENT metadata block, header included. Field names are
// written in upper case, the dominant convention.
func encodeVorbisComment(tag *container.Tag) []byte {
	body := binutil.NewWriter()
	vendor := tag.Vendor
	if vendor == "" {
		vendor = "music-tag-native"
	}
	body.Uint32LE(uint32(len(vendor)))
	body.String(vendor)

	keys := tag.Keys()
	body.Uint32LE(uint32(len(keys)))
	for _, key := range keys {
		value, _ := tag.Get(key)
		comment := strings.ToUpper(key) + "=" + value
		body.Uint32LE(uint32(len(comment)))
		body.String(comment)
	}

	w := binutil.NewWriter()
	w.Byte(blockVorbisComment)
	w.Uint24(uint32(body.Len()))
	w.Raw(body.Bytes())
	return w.Bytes()
}

// parsePictureBlock reads a PICTURE block body. All integers in the
// block are big-endian.
func parsePictureBlock(r *binutil.Reader, off, length int64) (container.Picture, error) {
	var pic container.Picture

	picType, err := r.Uint32(off, "picture type")
	if err != nil {
		return pic, err
	}
	off += 4

	mimeLen, err := r.Uint32(off, "MIME length")
	if err != nil {
		return pic, err
	}
	off += 4
	mime, err := r.Bytes(off, int(mimeLen), "MIME type")
	if err != nil {
		return pic, err
	}
	off += int64(mimeLen)

	descLen, err := r.Uint32(off, "description length")
	if err != nil {
		return pic, err
	}
	off += 4
	desc, err := r.Bytes(off, int(descLen), "description")
	if err != nil {
		return pic, err
	}
	off += int64(descLen)

	// Skip width, height, color depth, and indexed color count.
	off += 16

	dataLen, err := r.Uint32(off, "picture data length")
	if err != nil {
		return pic, err
	}
	off += 4
	data, err := r.Bytes(off, int(dataLen), "picture data")
	if err != nil {
		return pic, err
	}

	pic.Type = byte(picType)
	pic.MIMEType = string(mime)
	pic.Description = string(desc)
	pic.Data = bytes.Clone(data)
	return pic, nil
}

// encodePictureBlock serializes a picture as a complete PICTURE
// metadata block, header included. Width, height, depth, and color
// count are written as zero (unknown), which readers accept.
func encodePictureBlock(pic container.Picture) []byte {
	body := binutil.NewWriter()
	body.Uint32(uint32(pic.Type))
	body.Uint32(uint32(len(pic.MIMEType)))
	body.String(pic.MIMEType)
	body.Uint32(uint32(len(pic.Description)))
	body.String(pic.Description)
	body.Uint32(0) // width
	body.Uint32(0) // height
	body.Uint32(0) // color depth
	body.Uint32(0) // indexed colors
	body.Uint32(uint32(len(pic.Data)))
	body.Raw(pic.Data)

	w := binutil.NewWriter()
	w.Byte(blockPicture)
	w.Uint24(uint32(body.Len()))
	w.Raw(body.Bytes())
	return w.Bytes()
}

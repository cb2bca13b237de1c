package mp3

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf16"

	binutil "github.com/subframe7536/music-tag-native/internal/binary"
	"github.com/subframe7536/music-tag-native/internal/container"
)

const id3v2HeaderSize = 10

// frameKeys maps ID3v2 text frame IDs to normalized keys. TXXX, COMM,
// USLT, POPM and APIC have their own layouts and are handled separately.
var frameKeys = map[string]string{
	"TIT2": container.KeyTitle,
	"TPE1": container.KeyArtist,
	"TALB": container.KeyAlbum,
	"TCON": container.KeyGenre,
	"TPE2": container.KeyAlbumArtist,
	"TCOM": container.KeyComposer,
	"TPE3": container.KeyConductor,
	"TEXT": container.KeyLyricist,
	"TPUB": container.KeyPublisher,
	"TCOP": container.KeyCopyright,
	"TDRC": container.KeyDate,
}

// keyFrames is the write-side inverse of frameKeys.
var keyFrames = func() map[string]string {
	m := make(map[string]string, len(frameKeys))
	for id, key := range frameKeys {
		m[key] = id
	}
	return m
}()

// txxxKeys lists normalized keys that serialize as TXXX frames with an
// uppercase description, the convention replay-gain tooling writes.
var txxxKeys = map[string]bool{
	container.KeyReplayGainTrackGain: true,
	container.KeyReplayGainTrackPeak: true,
	container.KeyReplayGainAlbumGain: true,
	container.KeyReplayGainAlbumPeak: true,
}

// id3v2TagSize returns the full tag size including the 10-byte header.
func id3v2TagSize(b []byte) (int64, error) {
	if len(b) < id3v2HeaderSize {
		return 0, fmt.Errorf("truncated ID3v2 header: %d bytes", len(b))
	}
	size := int64(decodeSynchsafe(b[6:10]))
	total := id3v2HeaderSize + size
	if total > int64(len(b)) {
		return 0, fmt.Errorf("ID3v2 tag size %d exceeds buffer size %d", total, len(b))
	}
	return total, nil
}

// parseID3v2 parses an ID3v2.3 or ID3v2.4 tag at the start of the buffer
// and returns the normalized tag plus the total tag size.
func parseID3v2(b []byte) (*container.Tag, int64, error) {
	r := binutil.NewReader(b)
	header, err := r.Bytes(0, id3v2HeaderSize, "ID3v2 header")
	if err != nil {
		return nil, 0, err
	}

	version := header[3]
	if version != 3 && version != 4 {
		return nil, 0, fmt.Errorf("unsupported ID3v2 version: 2.%d", version)
	}
	flags := header[5]

	tagEnd, err := id3v2TagSize(b)
	if err != nil {
		return nil, 0, err
	}

	offset := int64(id3v2HeaderSize)
	if flags&0x40 != 0 {
		// Extended header. v2.4 stores a synchsafe size that includes
		// itself; v2.3 stores a plain size that excludes its own 4 bytes.
		ext, err := r.Bytes(offset, 4, "extended header size")
		if err != nil {
			return nil, 0, err
		}
		if version == 4 {
			offset += int64(decodeSynchsafe(ext))
		} else {
			offset += int64(uint32(ext[0])<<24|uint32(ext[1])<<16|uint32(ext[2])<<8|uint32(ext[3])) + 4
		}
	}

	tag := container.NewTag(container.TagID3v2)
	for offset+id3v2HeaderSize <= tagEnd {
		fh, err := r.Bytes(offset, id3v2HeaderSize, "frame header")
		if err != nil {
			break
		}
		if fh[0] == 0 {
			// Padding.
			break
		}

		id := string(fh[0:4])
		var size int64
		if version == 4 {
			size = int64(decodeSynchsafe(fh[4:8]))
		} else {
			size = int64(uint32(fh[4])<<24 | uint32(fh[5])<<16 | uint32(fh[6])<<8 | uint32(fh[7]))
		}
		data, err := r.Bytes(offset+id3v2HeaderSize, int(size), fmt.Sprintf("frame %s data", id))
		if err != nil {
			break
		}

		parseFrame(tag, id, data)
		offset += id3v2HeaderSize + size
	}

	return tag, tagEnd, nil
}

func parseFrame(tag *container.Tag, id string, data []byte) {
	switch {
	case id == "TXXX":
		parseTXXX(tag, data)
	case id == "COMM":
		if text, ok := parseLangFrame(data); ok {
			tag.Set(container.KeyComment, text)
		}
	case id == "USLT":
		if text, ok := parseLangFrame(data); ok {
			tag.Set(container.KeyLyrics, text)
		}
	case id == "POPM":
		parsePOPM(tag, data)
	case id == "APIC":
		parseAPIC(tag, data)
	case id == "TRCK":
		setSplitNumber(tag, container.KeyTrackNumber, container.KeyTrackTotal, textFrame(data))
	case id == "TPOS":
		setSplitNumber(tag, container.KeyDiscNumber, container.KeyDiscTotal, textFrame(data))
	case id == "TYER":
		// ID3v2.3 year frame; TDRC wins if both appear.
		if _, ok := tag.Get(container.KeyDate); !ok {
			tag.Set(container.KeyDate, textFrame(data))
		}
	case strings.HasPrefix(id, "T"):
		text := textFrame(data)
		if key, ok := frameKeys[id]; ok {
			tag.Set(key, text)
		} else {
			// Preserve unknown text frames for round-trips.
			tag.Set("id3:"+id, text)
		}
	}
}

// textFrame decodes a text frame body: encoding byte followed by text.
func textFrame(data []byte) string {
	if len(data) < 1 {
		return ""
	}
	return decodeText(data[1:], data[0])
}

// parseLangFrame decodes COMM/USLT bodies:
// [encoding][language(3)][description\0][text]
func parseLangFrame(data []byte) (string, bool) {
	if len(data) < 4 {
		return "", false
	}
	enc := data[0]
	body := data[4:]
	nul := findTerminator(body, enc)
	if nul < 0 {
		return decodeText(body, enc), true
	}
	return decodeText(body[nul+terminatorSize(enc):], enc), true
}

// parseTXXX decodes custom text frames: [encoding][description\0][value].
func parseTXXX(tag *container.Tag, data []byte) {
	if len(data) < 2 {
		return
	}
	enc := data[0]
	body := data[1:]
	nul := findTerminator(body, enc)
	if nul < 0 {
		return
	}
	desc := strings.ToLower(decodeText(body[:nul], enc))
	value := decodeText(body[nul+terminatorSize(enc):], enc)
	if txxxKeys[desc] {
		tag.Set(desc, value)
	} else {
		tag.Set("txxx:"+desc, value)
	}
}

// parsePOPM decodes a popularimeter frame: [email\0][rating][counter...]
// into the normalized "email|rating|counter" record.
func parsePOPM(tag *container.Tag, data []byte) {
	nul := bytes.IndexByte(data, 0)
	if nul < 0 || nul+1 >= len(data) {
		return
	}
	email := string(data[:nul])
	rating := data[nul+1]
	var counter uint32
	for _, b := range data[nul+2:] {
		counter = counter<<8 | uint32(b)
	}
	tag.Set(container.KeyPopularimeter, fmt.Sprintf("%s|%d|%d", email, rating, counter))
}

// parseAPIC decodes an attached picture:
// [encoding][MIME\0][picture type][description\0][data]
func parseAPIC(tag *container.Tag, data []byte) {
	if len(data) < 2 {
		return
	}
	enc := data[0]
	body := data[1:]

	mimeEnd := bytes.IndexByte(body, 0)
	if mimeEnd < 0 || mimeEnd+1 >= len(body) {
		return
	}
	mime := string(body[:mimeEnd])
	body = body[mimeEnd+1:]

	picType := body[0]
	body = body[1:]

	descEnd := findTerminator(body, enc)
	if descEnd < 0 {
		return
	}
	desc := decodeText(body[:descEnd], enc)
	payload := body[descEnd+terminatorSize(enc):]

	tag.SetPictureAt(tag.PictureCount(), container.Picture{
		Type:        picType,
		MIMEType:    mime,
		Description: desc,
		Data:        bytes.Clone(payload),
	})
}

// setSplitNumber stores "N" or "N/Total" text into two normalized keys.
func setSplitNumber(tag *container.Tag, numberKey, totalKey, text string) {
	number, total, _ := strings.Cut(text, "/")
	if number != "" {
		tag.Set(numberKey, number)
	}
	if total != "" {
		tag.Set(totalKey, total)
	}
}

// encodeID3v2 serializes the tag as ID3v2.4 with UTF-8 text frames.
func encodeID3v2(tag *container.Tag) []byte {
	frames := binutil.NewWriter()

	for _, key := range tag.Keys() {
		value, _ := tag.Get(key)
		switch {
		case key == container.KeyTrackNumber || key == container.KeyDiscNumber ||
			key == container.KeyTrackTotal || key == container.KeyDiscTotal:
			// Handled below as combined frames.
		case key == container.KeyComment:
			writeFrame(frames, "COMM", langFrameBody(value))
		case key == container.KeyLyrics:
			writeFrame(frames, "USLT", langFrameBody(value))
		case key == container.KeyPopularimeter:
			if body, ok := popmBody(value); ok {
				writeFrame(frames, "POPM", body)
			}
		case txxxKeys[key]:
			writeFrame(frames, "TXXX", txxxBody(strings.ToUpper(key), value))
		case strings.HasPrefix(key, "txxx:"):
			writeFrame(frames, "TXXX", txxxBody(strings.TrimPrefix(key, "txxx:"), value))
		case strings.HasPrefix(key, "id3:"):
			writeFrame(frames, strings.TrimPrefix(key, "id3:"), textBody(value))
		default:
			if id, ok := keyFrames[key]; ok {
				writeFrame(frames, id, textBody(value))
			}
			// Keys with no ID3v2 representation are dropped.
		}
	}

	if v := joinNumber(tag, container.KeyTrackNumber, container.KeyTrackTotal); v != "" {
		writeFrame(frames, "TRCK", textBody(v))
	}
	if v := joinNumber(tag, container.KeyDiscNumber, container.KeyDiscTotal); v != "" {
		writeFrame(frames, "TPOS", textBody(v))
	}

	for _, pic := range tag.Pictures() {
		writeFrame(frames, "APIC", apicBody(pic))
	}

	out := binutil.NewWriter()
	out.String("ID3")
	out.Byte(4) // version 2.4
	out.Byte(0)
	out.Byte(0) // flags
	out.Raw(encodeSynchsafe(uint32(frames.Len())))
	out.Raw(frames.Bytes())
	return out.Bytes()
}

func writeFrame(w *binutil.Writer, id string, body []byte) {
	w.String(id)
	w.Raw(encodeSynchsafe(uint32(len(body))))
	w.Uint16(0) // frame flags
	w.Raw(body)
}

// textBody builds a UTF-8 text frame body.
func textBody(text string) []byte {
	body := make([]byte, 0, len(text)+1)
	body = append(body, encodingUTF8)
	return append(body, text...)
}

// langFrameBody builds a COMM/USLT body with an "eng" language code and
// an empty description.
func langFrameBody(text string) []byte {
	body := make([]byte, 0, len(text)+6)
	body = append(body, encodingUTF8)
	body = append(body, "eng"...)
	body = append(body, 0)
	return append(body, text...)
}

func txxxBody(desc, value string) []byte {
	body := make([]byte, 0, len(desc)+len(value)+2)
	body = append(body, encodingUTF8)
	body = append(body, desc...)
	body = append(body, 0)
	return append(body, value...)
}

// popmBody builds a POPM frame body from the "email|rating|counter"
// record. Malformed records are skipped rather than written broken.
func popmBody(record string) ([]byte, bool) {
	parts := strings.Split(record, "|")
	if len(parts) != 3 {
		return nil, false
	}
	var rating, counter uint32
	if _, err := fmt.Sscanf(parts[1], "%d", &rating); err != nil || rating > 255 {
		return nil, false
	}
	_, _ = fmt.Sscanf(parts[2], "%d", &counter)

	body := make([]byte, 0, len(parts[0])+6)
	body = append(body, parts[0]...)
	body = append(body, 0, byte(rating))
	body = append(body, byte(counter>>24), byte(counter>>16), byte(counter>>8), byte(counter))
	return body, true
}

func apicBody(pic container.Picture) []byte {
	body := make([]byte, 0, len(pic.Data)+len(pic.MIMEType)+len(pic.Description)+4)
	body = append(body, encodingUTF8)
	body = append(body, pic.MIMEType...)
	body = append(body, 0)
	body = append(body, pic.Type)
	body = append(body, pic.Description...)
	body = append(body, 0)
	return append(body, pic.Data...)
}

// joinNumber combines number/total keys back into "N" or "N/Total".
func joinNumber(tag *container.Tag, numberKey, totalKey string) string {
	number, _ := tag.Get(numberKey)
	total, hasTotal := tag.Get(totalKey)
	if !hasTotal || total == "" {
		return number
	}
	return number + "/" + total
}

// Text encoding bytes defined by ID3v2.
const (
	encodingLatin1  = 0
	encodingUTF16   = 1
	encodingUTF16BE = 2
	encodingUTF8    = 3
)

func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 | uint32(b[1]&0x7F)<<14 | uint32(b[2]&0x7F)<<7 | uint32(b[3]&0x7F)
}

func encodeSynchsafe(v uint32) []byte {
	return []byte{
		byte(v >> 21 & 0x7F),
		byte(v >> 14 & 0x7F),
		byte(v >> 7 & 0x7F),
		byte(v & 0x7F),
	}
}

// decodeText decodes frame text per the ID3v2 encoding byte.
func decodeText(data []byte, encoding byte) string {
	data = trimTerminator(data, encoding)
	switch encoding {
	case encodingUTF16:
		if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
			return decodeUTF16(data[2:], false)
		}
		if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
			return decodeUTF16(data[2:], true)
		}
		return decodeUTF16(data, true)
	case encodingUTF16BE:
		return decodeUTF16(data, true)
	default:
		// Latin-1 and UTF-8 both pass through; invalid UTF-8 is kept
		// as-is rather than rejected.
		return string(data)
	}
}

func decodeUTF16(data []byte, bigEndian bool) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	u16 := make([]uint16, len(data)/2)
	for i := range u16 {
		if bigEndian {
			u16[i] = uint16(data[i*2])<<8 | uint16(data[i*2+1])
		} else {
			u16[i] = uint16(data[i*2]) | uint16(data[i*2+1])<<8
		}
	}
	return string(utf16.Decode(u16))
}

// trimTerminator drops a trailing NUL terminator if present.
func trimTerminator(data []byte, encoding byte) []byte {
	switch encoding {
	case encodingUTF16, encodingUTF16BE:
		if n := len(data); n >= 2 && data[n-2] == 0 && data[n-1] == 0 {
			return data[:n-2]
		}
	default:
		if n := len(data); n >= 1 && data[n-1] == 0 {
			return data[:n-1]
		}
	}
	return data
}

// terminatorSize returns the width in bytes of the NUL terminator for
// the encoding.
func terminatorSize(encoding byte) int {
	switch encoding {
	case encodingUTF16, encodingUTF16BE:
		return 2
	default:
		return 1
	}
}

// findTerminator locates the NUL terminator for the encoding.
func findTerminator(data []byte, encoding byte) int {
	switch encoding {
	case encodingUTF16, encodingUTF16BE:
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return -1
	default:
		return bytes.IndexByte(data, 0)
	}
}

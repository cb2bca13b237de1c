package mp3

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/subframe7536/music-tag-native/internal/container"
)

const id3v1Size = 128

// id3v1Genres is the ID3v1 genre table. The trailer stores a genre as an
// index into this list; 255 means unset.
var id3v1Genres = []string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk", "Grunge",
	"Hip-Hop", "Jazz", "Metal", "New Age", "Oldies", "Other", "Pop", "R&B",
	"Rap", "Reggae", "Rock", "Techno", "Industrial", "Alternative", "Ska",
	"Death Metal", "Pranks", "Soundtrack", "Euro-Techno", "Ambient",
	"Trip-Hop", "Vocal", "Jazz+Funk", "Fusion", "Trance", "Classical",
	"Instrumental", "Acid", "House", "Game", "Sound Clip", "Gospel",
	"Noise", "AlternRock", "Bass", "Soul", "Punk", "Space", "Meditative",
	"Instrumental Pop", "Instrumental Rock", "Ethnic", "Gothic",
	"Darkwave", "Techno-Industrial", "Electronic", "Pop-Folk", "Eurodance",
	"Dream", "Southern Rock", "Comedy", "Cult", "Gangsta", "Top 40",
	"Christian Rap", "Pop/Funk", "Jungle", "Native American", "Cabaret",
	"New Wave", "Psychadelic", "Rave", "Showtunes", "Trailer", "Lo-Fi",
	"Tribal", "Acid Punk", "Acid Jazz", "Polka", "Retro", "Musical",
	"Rock & Roll", "Hard Rock",
}

func hasID3v1(b []byte) bool {
	return len(b) >= id3v1Size && string(b[len(b)-id3v1Size:len(b)-id3v1Size+3]) == "TAG"
}

// parseID3v1 parses the fixed trailer at the end of the buffer, or
// returns nil if none is present.
func parseID3v1(b []byte) *container.Tag {
	if !hasID3v1(b) {
		return nil
	}
	t := b[len(b)-id3v1Size:]

	tag := container.NewTag(container.TagID3v1)
	setTrimmed(tag, container.KeyTitle, t[3:33])
	setTrimmed(tag, container.KeyArtist, t[33:63])
	setTrimmed(tag, container.KeyAlbum, t[63:93])
	setTrimmed(tag, container.KeyDate, t[93:97])

	comment := t[97:127]
	if comment[28] == 0 && comment[29] != 0 {
		// ID3v1.1: last comment byte repurposed as the track number.
		tag.Set(container.KeyTrackNumber, strconv.Itoa(int(comment[29])))
		comment = comment[:28]
	}
	setTrimmed(tag, container.KeyComment, comment)

	if genre := int(t[127]); genre < len(id3v1Genres) {
		tag.Set(container.KeyGenre, id3v1Genres[genre])
	}
	return tag
}

// encodeID3v1 serializes the tag as a 128-byte trailer. Fields are
// truncated to their fixed widths; items the trailer cannot carry are
// dropped.
func encodeID3v1(tag *container.Tag) []byte {
	t := make([]byte, id3v1Size)
	copy(t, "TAG")

	setFixedWidth(t[3:33], tag, container.KeyTitle)
	setFixedWidth(t[33:63], tag, container.KeyArtist)
	setFixedWidth(t[63:93], tag, container.KeyAlbum)

	if date, ok := tag.Get(container.KeyDate); ok && len(date) >= 4 {
		copy(t[93:97], date[:4])
	}

	if track, ok := tag.Get(container.KeyTrackNumber); ok {
		if n, err := strconv.Atoi(track); err == nil && n > 0 && n < 256 {
			setFixedWidth(t[97:125], tag, container.KeyComment)
			t[126] = byte(n)
		} else {
			setFixedWidth(t[97:127], tag, container.KeyComment)
		}
	} else {
		setFixedWidth(t[97:127], tag, container.KeyComment)
	}

	t[127] = 255
	if genre, ok := tag.Get(container.KeyGenre); ok {
		for i, name := range id3v1Genres {
			if strings.EqualFold(name, genre) {
				t[127] = byte(i)
				break
			}
		}
	}
	return t
}

func setTrimmed(tag *container.Tag, key string, field []byte) {
	s := strings.TrimRight(string(bytes.TrimRight(field, "\x00")), " ")
	if s != "" {
		tag.Set(key, s)
	}
}

func setFixedWidth(field []byte, tag *container.Tag, key string) {
	if v, ok := tag.Get(key); ok {
		copy(field, v)
	}
}

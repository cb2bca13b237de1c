// Package container holds the format-agnostic model of a parsed audio
// file: the container format, its technical properties, and the metadata
// tags embedded in it. Format codecs live in their own packages and
// register themselves with this package's codec registry.
package container

import "time"

// Format represents the detected container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota // Unknown
	// FormatMP3 represents MP3 audio files.
	FormatMP3 // MP3
	// FormatFLAC represents FLAC audio files.
	FormatFLAC // FLAC
	// FormatWAV represents WAV audio files.
	FormatWAV // WAV
)

// String returns the conventional name of the format.
func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatFLAC:
		return "FLAC"
	case FormatWAV:
		return "WAV"
	default:
		return "Unknown"
	}
}

// Lossless reports whether the format stores audio without lossy compression.
func (f Format) Lossless() bool {
	switch f {
	case FormatFLAC, FormatWAV:
		return true
	default:
		return false
	}
}

// PrimaryTagType returns the tag type a format designates as authoritative
// when multiple tag blocks coexist in one file.
func (f Format) PrimaryTagType() TagType {
	switch f {
	case FormatMP3:
		return TagID3v2
	case FormatFLAC:
		return TagVorbis
	case FormatWAV:
		return TagRIFFInfo
	default:
		return TagUnknown
	}
}

// TagType identifies a tag format family. The set is closed: every tag a
// codec produces is one of these variants.
type TagType int

const (
	// TagUnknown is an unrecognized tag family.
	TagUnknown TagType = iota // Unknown
	// TagID3v1 is the fixed 128-byte trailer tag.
	TagID3v1 // ID3v1
	// TagID3v2 is an ID3v2.3/2.4 frame tag.
	TagID3v2 // ID3v2
	// TagVorbis is a Vorbis comment block.
	TagVorbis // Vorbis
	// TagAPE is an APEv2 item tag.
	TagAPE // APE
	// TagMP4Ilst is an MP4 ilst atom tag.
	TagMP4Ilst // MP4 ilst
	// TagAIFFText is an AIFF text chunk tag.
	TagAIFFText // AIFF text
	// TagRIFFInfo is a RIFF LIST INFO chunk tag.
	TagRIFFInfo // RIFF INFO
)

// String returns the conventional name of the tag family.
func (t TagType) String() string {
	switch t {
	case TagID3v1:
		return "ID3v1"
	case TagID3v2:
		return "ID3v2"
	case TagVorbis:
		return "Vorbis"
	case TagAPE:
		return "APE"
	case TagMP4Ilst:
		return "MP4 ilst"
	case TagAIFFText:
		return "AIFF text"
	case TagRIFFInfo:
		return "RIFF INFO"
	default:
		return "Unknown"
	}
}

// Properties represents container-reported technical audio properties.
// Zero values mean the container did not report the property, except
// Duration where zero means unknown or empty.
type Properties struct {
	Duration   time.Duration
	SampleRate int // Hz
	BitDepth   int // bits per sample
	Channels   int
	Bitrate    int // kbps, as reported by the container
}

// Normalized tag keys. Codecs translate between these and each format's
// native key system (ID3v2 frame IDs, Vorbis field names, RIFF FOURCCs);
// everything above the codec layer speaks only these keys.
//
// Key names follow the MusicBrainz Picard tag map, same as taglib-based
// tooling uses.
const (
	KeyTitle       = "title"
	KeyArtist      = "artist"
	KeyAlbum       = "album"
	KeyGenre       = "genre"
	KeyComment     = "comment"
	KeyAlbumArtist = "albumartist"
	KeyComposer    = "composer"
	KeyConductor   = "conductor"
	KeyLyricist    = "lyricist"
	KeyPublisher   = "publisher"
	KeyLyrics      = "lyrics"
	KeyCopyright   = "copyright"

	KeyDate        = "date"
	KeyTrackNumber = "tracknumber"
	KeyTrackTotal  = "tracktotal"
	KeyDiscNumber  = "discnumber"
	KeyDiscTotal   = "disctotal"

	// KeyPopularimeter holds a popularity record in "email|rating|counter"
	// text form, the single record the star rating serializes through.
	KeyPopularimeter = "popularimeter"

	KeyReplayGainTrackGain = "replaygain_track_gain"
	KeyReplayGainTrackPeak = "replaygain_track_peak"
	KeyReplayGainAlbumGain = "replaygain_album_gain"
	KeyReplayGainAlbumPeak = "replaygain_album_peak"
)

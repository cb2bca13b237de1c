package musictag

import (
	"github.com/subframe7536/music-tag-native/internal/container"
)

// Format is an alias to container.Format, re-exported so callers can
// name formats without importing internal packages.
type Format = container.Format

// Container formats the probe can detect.
const (
	FormatUnknown = container.FormatUnknown
	FormatMP3     = container.FormatMP3
	FormatFLAC    = container.FormatFLAC
	FormatWAV     = container.FormatWAV
)

// TagFormat is an alias to container.TagType, the closed set of tag
// families a file can embed.
type TagFormat = container.TagType

// Tag families. Only ID3v1, ID3v2, Vorbis, and RIFF INFO are produced
// by the bundled codecs; the rest complete the closed set.
const (
	TagID3v1    = container.TagID3v1
	TagID3v2    = container.TagID3v2
	TagVorbis   = container.TagVorbis
	TagAPE      = container.TagAPE
	TagMP4Ilst  = container.TagMP4Ilst
	TagAIFFText = container.TagAIFFText
	TagRIFFInfo = container.TagRIFFInfo
)

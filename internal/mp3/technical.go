package mp3

import (
	"encoding/binary"
	"time"

	"github.com/subframe7536/music-tag-native/internal/container"
)

// MPEG1 Layer III bitrate table in kbps.
var bitrateTable = []int{
	0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0,
}

// MPEG1 sample rate table in Hz.
var sampleRateTable = []int{
	44100, 48000, 32000, 0,
}

// parseProperties extracts bitrate, sample rate, channels, and duration
// from the MPEG frames between audioStart and audioEnd. A stream with no
// recognizable frame yields empty properties rather than an error, since
// the tag data may still be usable.
func parseProperties(b []byte, audioStart, audioEnd int64) (container.Properties, error) {
	var props container.Properties

	for off := audioStart; off+4 <= audioEnd; off++ {
		header := binary.BigEndian.Uint32(b[off : off+4])
		if !validFrameHeader(header) {
			continue
		}

		bitrate, sampleRate, channels := parseFrameHeader(header)
		if bitrate == 0 || sampleRate == 0 {
			continue
		}
		props.Bitrate = bitrate
		props.SampleRate = sampleRate
		props.Channels = channels

		audioBytes := audioEnd - off
		if dur, ok := parseXingDuration(b, off, audioEnd, sampleRate); ok {
			props.Duration = dur
			// VBR stream: the first frame's bitrate is not representative,
			// report the average over the whole stream instead.
			if secs := dur.Seconds(); secs > 0 {
				props.Bitrate = int(float64(audioBytes*8)/(secs*1000) + 0.5)
			}
		} else {
			props.Duration = time.Duration(float64(audioBytes*8) / float64(bitrate*1000) * float64(time.Second))
		}
		break
	}

	return props, nil
}

// validFrameHeader checks frame sync plus MPEG1/MPEG2 Layer III markers.
func validFrameHeader(header uint32) bool {
	if header&0xFFE00000 != 0xFFE00000 {
		return false
	}
	version := (header >> 19) & 0x3
	layer := (header >> 17) & 0x3
	return (version == 3 || version == 2) && layer == 1
}

func parseFrameHeader(header uint32) (bitrate, sampleRate, channels int) {
	bitrateIdx := (header >> 12) & 0xF
	if int(bitrateIdx) < len(bitrateTable) {
		bitrate = bitrateTable[bitrateIdx]
	}

	sampleRateIdx := (header >> 10) & 0x3
	if int(sampleRateIdx) < len(sampleRateTable) {
		sampleRate = sampleRateTable[sampleRateIdx]
	}

	if (header>>6)&0x3 == 3 {
		channels = 1
	} else {
		channels = 2
	}
	return
}

// parseXingDuration looks for a Xing/Info VBR header in the first frame
// and computes the duration from its frame count.
func parseXingDuration(b []byte, frameOffset, audioEnd int64, sampleRate int) (time.Duration, bool) {
	// Xing header sits 36 bytes into the frame for MPEG1.
	off := frameOffset + 36
	if off+12 > audioEnd {
		return 0, false
	}
	marker := string(b[off : off+4])
	if marker != "Xing" && marker != "Info" {
		return 0, false
	}

	flags := binary.BigEndian.Uint32(b[off+4 : off+8])
	if flags&0x1 == 0 {
		return 0, false
	}
	numFrames := binary.BigEndian.Uint32(b[off+8 : off+12])

	// Each MPEG1 Layer III frame carries 1152 samples.
	const samplesPerFrame = 1152
	totalSamples := uint64(numFrames) * samplesPerFrame
	seconds := float64(totalSamples) / float64(sampleRate)
	return time.Duration(seconds * float64(time.Second)), true
}

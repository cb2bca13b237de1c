package musictag

import (
	"math"
	"time"
)

// Quality is the coarse quality tier of a loaded file.
type Quality string

const (
	// QualityHQ covers every lossy format, unconditionally.
	QualityHQ Quality = "HQ"
	// QualitySQ covers lossless audio at CD resolution or below, and
	// lossless audio whose resolution is unknown.
	QualitySQ Quality = "SQ"
	// QualityHiRes covers lossless audio above 44100 Hz with at least
	// 16 bits per sample.
	QualityHiRes Quality = "HiRes"
)

// Quality classifies the loaded file. Lossy formats are always HQ.
// Lossless formats are HiRes only when both sample rate and bit depth
// are known and the sample rate exceeds 44100 Hz at 16 or more bits;
// missing either value means SQ, never HiRes.
func (s *Session) Quality() (Quality, error) {
	if s.IsDisposed() {
		return "", ErrDisposed
	}
	return classifyQuality(s.file.Lossless(), s.file.Props.SampleRate, s.file.Props.BitDepth), nil
}

func classifyQuality(lossless bool, sampleRate, bitDepth int) Quality {
	if !lossless {
		return QualityHQ
	}
	if sampleRate > 44100 && bitDepth >= 16 {
		return QualityHiRes
	}
	return QualitySQ
}

// Bitrate returns the audio bit rate in kbps. A container-reported rate
// is returned unchanged; otherwise the rate is estimated from file size
// and duration. The estimate includes container and tag overhead, so it
// is biased upward relative to the true audio payload; estimates
// outside [8, 10000] kbps are treated as nonsensical and report absent.
func (s *Session) Bitrate() (int, bool, error) {
	if s.IsDisposed() {
		return 0, false, ErrDisposed
	}
	if reported := s.file.Props.Bitrate; reported > 0 {
		return reported, true, nil
	}
	kbps, ok := estimateBitrate(s.size, s.file.Props.Duration)
	return kbps, ok, nil
}

func estimateBitrate(sizeBytes int64, duration time.Duration) (int, bool) {
	if duration <= 0 {
		return 0, false
	}
	kbps := int(math.Round(float64(sizeBytes) * 8 / (duration.Seconds() * 1000)))
	if kbps < 8 || kbps > 10000 {
		return 0, false
	}
	return kbps, true
}

package musictag

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/subframe7536/music-tag-native/internal/container"
	"github.com/subframe7536/music-tag-native/internal/replaygain"
)

// Field accessors. Every getter returns the value, whether it is
// present, and an error; absence is a normal result, not an error.
// Every setter takes an Update, so clearing a field is distinguishable
// from setting it to an empty value.

func (s *Session) Title() (string, bool, error)  { return s.getText(container.KeyTitle) }
func (s *Session) Artist() (string, bool, error) { return s.getText(container.KeyArtist) }
func (s *Session) Album() (string, bool, error)  { return s.getText(container.KeyAlbum) }
func (s *Session) Genre() (string, bool, error)  { return s.getText(container.KeyGenre) }
func (s *Session) Comment() (string, bool, error) {
	return s.getText(container.KeyComment)
}

func (s *Session) SetTitle(u Update[string]) error  { return s.setText(container.KeyTitle, u) }
func (s *Session) SetArtist(u Update[string]) error { return s.setText(container.KeyArtist, u) }
func (s *Session) SetAlbum(u Update[string]) error  { return s.setText(container.KeyAlbum, u) }
func (s *Session) SetGenre(u Update[string]) error  { return s.setText(container.KeyGenre, u) }
func (s *Session) SetComment(u Update[string]) error {
	return s.setText(container.KeyComment, u)
}

// Extended fields, stored through the generic keyed-text mechanism.

func (s *Session) AlbumArtist() (string, bool, error) {
	return s.getText(container.KeyAlbumArtist)
}
func (s *Session) Composer() (string, bool, error)  { return s.getText(container.KeyComposer) }
func (s *Session) Conductor() (string, bool, error) { return s.getText(container.KeyConductor) }
func (s *Session) Lyricist() (string, bool, error)  { return s.getText(container.KeyLyricist) }
func (s *Session) Publisher() (string, bool, error) { return s.getText(container.KeyPublisher) }
func (s *Session) Lyrics() (string, bool, error)    { return s.getText(container.KeyLyrics) }
func (s *Session) Copyright() (string, bool, error) { return s.getText(container.KeyCopyright) }

func (s *Session) SetAlbumArtist(u Update[string]) error {
	return s.setText(container.KeyAlbumArtist, u)
}
func (s *Session) SetComposer(u Update[string]) error {
	return s.setText(container.KeyComposer, u)
}
func (s *Session) SetConductor(u Update[string]) error {
	return s.setText(container.KeyConductor, u)
}
func (s *Session) SetLyricist(u Update[string]) error {
	return s.setText(container.KeyLyricist, u)
}
func (s *Session) SetPublisher(u Update[string]) error {
	return s.setText(container.KeyPublisher, u)
}
func (s *Session) SetLyrics(u Update[string]) error {
	return s.setText(container.KeyLyrics, u)
}
func (s *Session) SetCopyright(u Update[string]) error {
	return s.setText(container.KeyCopyright, u)
}

// Year extracts the year from the stored date. A date starting with
// four digits yields that number directly; anything else goes through a
// lenient date parse, and a date that still does not parse reads as
// absent.
func (s *Session) Year() (int, bool, error) {
	date, ok, err := s.getText(container.KeyDate)
	if err != nil || !ok {
		return 0, false, err
	}
	if len(date) >= 4 {
		if y, err := strconv.Atoi(date[:4]); err == nil {
			return y, true, nil
		}
	}
	t, err := dateparse.ParseAny(date)
	if err != nil {
		return 0, false, nil
	}
	return t.Year(), true, nil
}

// SetYear stores the year as the whole date value, replacing any finer
// grained date previously present.
func (s *Session) SetYear(u Update[int]) error {
	return s.setInt(container.KeyDate, u)
}

func (s *Session) TrackNumber() (int, bool, error) {
	return s.getInt(container.KeyTrackNumber)
}
func (s *Session) TrackTotal() (int, bool, error) {
	return s.getInt(container.KeyTrackTotal)
}
func (s *Session) DiscNumber() (int, bool, error) {
	return s.getInt(container.KeyDiscNumber)
}
func (s *Session) DiscTotal() (int, bool, error) {
	return s.getInt(container.KeyDiscTotal)
}

func (s *Session) SetTrackNumber(u Update[int]) error {
	return s.setInt(container.KeyTrackNumber, u)
}
func (s *Session) SetTrackTotal(u Update[int]) error {
	return s.setInt(container.KeyTrackTotal, u)
}
func (s *Session) SetDiscNumber(u Update[int]) error {
	return s.setInt(container.KeyDiscNumber, u)
}
func (s *Session) SetDiscTotal(u Update[int]) error {
	return s.setInt(container.KeyDiscTotal, u)
}

// starLevels maps the five star ratings onto the popularity byte each
// serializes as. Reads reverse the mapping exactly; a stored byte
// outside this set reads as absent.
var starLevels = [5]int{1, 64, 128, 196, 255}

// popmEmail identifies this library's popularity records.
const popmEmail = "no@email"

// Rating returns the 1-5 star rating decoded from the stored
// popularity record. Records written by other software with bytes
// outside the five star levels read as absent.
func (s *Session) Rating() (int, bool, error) {
	record, ok, err := s.getText(container.KeyPopularimeter)
	if err != nil || !ok {
		return 0, false, err
	}
	parts := strings.Split(record, "|")
	if len(parts) < 2 {
		return 0, false, nil
	}
	level, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false, nil
	}
	for star, b := range starLevels {
		if level == b {
			return star + 1, true, nil
		}
	}
	return 0, false, nil
}

// SetRating stores a 1-5 star rating as a single popularity record.
// Values outside 1-5 fail with ErrInvalidRating and leave the stored
// state unchanged.
func (s *Session) SetRating(u Update[int]) error {
	stars, set := u.Value()
	if !set {
		return s.setText(container.KeyPopularimeter, Clear[string]())
	}
	if stars < 1 || stars > 5 {
		return ErrInvalidRating
	}
	record := popmEmail + "|" + strconv.Itoa(starLevels[stars-1]) + "|0"
	return s.setText(container.KeyPopularimeter, Set(record))
}

// Replay gain accessors. Stored text that does not parse as a decimal
// number reads as absent; third-party tag writers are not guaranteed to
// follow the canonical format.

func (s *Session) ReplayGainTrackGain() (float64, bool, error) {
	return s.getGain(container.KeyReplayGainTrackGain)
}
func (s *Session) ReplayGainTrackPeak() (float64, bool, error) {
	return s.getGain(container.KeyReplayGainTrackPeak)
}
func (s *Session) ReplayGainAlbumGain() (float64, bool, error) {
	return s.getGain(container.KeyReplayGainAlbumGain)
}
func (s *Session) ReplayGainAlbumPeak() (float64, bool, error) {
	return s.getGain(container.KeyReplayGainAlbumPeak)
}

func (s *Session) SetReplayGainTrackGain(u Update[float64]) error {
	return s.setGain(container.KeyReplayGainTrackGain, u, replaygain.FormatGain)
}
func (s *Session) SetReplayGainTrackPeak(u Update[float64]) error {
	return s.setGain(container.KeyReplayGainTrackPeak, u, replaygain.FormatPeak)
}
func (s *Session) SetReplayGainAlbumGain(u Update[float64]) error {
	return s.setGain(container.KeyReplayGainAlbumGain, u, replaygain.FormatGain)
}
func (s *Session) SetReplayGainAlbumPeak(u Update[float64]) error {
	return s.setGain(container.KeyReplayGainAlbumPeak, u, replaygain.FormatPeak)
}

func (s *Session) getText(key string) (string, bool, error) {
	tag, err := s.currentTag()
	if err != nil {
		return "", false, err
	}
	v, ok := tag.Get(key)
	return v, ok, nil
}

func (s *Session) setText(key string, u Update[string]) error {
	tag, err := s.currentTag()
	if err != nil {
		return err
	}
	if v, set := u.Value(); set {
		tag.Set(key, v)
		slog.Debug("musictag: set field", "key", key)
	} else {
		tag.Remove(key)
		slog.Debug("musictag: cleared field", "key", key)
	}
	return nil
}

func (s *Session) getInt(key string) (int, bool, error) {
	v, ok, err := s.getText(key)
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (s *Session) setInt(key string, u Update[int]) error {
	if n, set := u.Value(); set {
		return s.setText(key, Set(strconv.Itoa(n)))
	}
	return s.setText(key, Clear[string]())
}

func (s *Session) getGain(key string) (float64, bool, error) {
	v, ok, err := s.getText(key)
	if err != nil || !ok {
		return 0, false, err
	}
	f, ok := replaygain.Parse(v)
	return f, ok, nil
}

func (s *Session) setGain(key string, u Update[float64], format func(float64) string) error {
	if v, set := u.Value(); set {
		return s.setText(key, Set(format(v)))
	}
	return s.setText(key, Clear[string]())
}

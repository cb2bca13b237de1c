package musictag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subframe7536/music-tag-native/internal/container"
)

func TestTextFieldsRoundTrip(t *testing.T) {
	s := loadBuffer(t, flacBuffer(t, map[string]string{container.KeyTitle: "x"}))

	set := []struct {
		name   string
		setter func(Update[string]) error
		getter func() (string, bool, error)
	}{
		{"albumartist", s.SetAlbumArtist, s.AlbumArtist},
		{"composer", s.SetComposer, s.Composer},
		{"conductor", s.SetConductor, s.Conductor},
		{"lyricist", s.SetLyricist, s.Lyricist},
		{"publisher", s.SetPublisher, s.Publisher},
		{"lyrics", s.SetLyrics, s.Lyrics},
		{"copyright", s.SetCopyright, s.Copyright},
		{"comment", s.SetComment, s.Comment},
		{"genre", s.SetGenre, s.Genre},
	}
	for _, tc := range set {
		require.NoError(t, tc.setter(Set("value of "+tc.name)))
		got, ok, err := tc.getter()
		require.NoError(t, err)
		require.True(t, ok, tc.name)
		assert.Equal(t, "value of "+tc.name, got, tc.name)
	}
}

func TestClearIsDistinctFromEmpty(t *testing.T) {
	s := loadBuffer(t, flacBuffer(t, map[string]string{container.KeyTitle: "x"}))

	require.NoError(t, s.SetComment(Set("")))
	_, ok, err := s.Comment()
	require.NoError(t, err)
	assert.True(t, ok, "empty comment should read as present")

	require.NoError(t, s.SetComment(Clear[string]()))
	_, ok, err = s.Comment()
	require.NoError(t, err)
	assert.False(t, ok, "cleared comment should read as absent")
}

func TestNumericFields(t *testing.T) {
	s := loadBuffer(t, mp3Buffer(t, map[string]string{container.KeyTitle: "x"}))

	require.NoError(t, s.SetTrackNumber(Set(3)))
	require.NoError(t, s.SetTrackTotal(Set(24)))
	require.NoError(t, s.SetDiscNumber(Set(1)))
	require.NoError(t, s.SetDiscTotal(Set(2)))

	require.NoError(t, s.Save())
	out, err := s.Buffer()
	require.NoError(t, err)
	reloaded := loadBuffer(t, out)

	for _, tc := range []struct {
		get  func() (int, bool, error)
		want int
	}{
		{reloaded.TrackNumber, 3},
		{reloaded.TrackTotal, 24},
		{reloaded.DiscNumber, 1},
		{reloaded.DiscTotal, 2},
	} {
		got, ok, err := tc.get()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, tc.want, got)
	}
}

func TestYear(t *testing.T) {
	s := loadBuffer(t, flacBuffer(t, map[string]string{container.KeyTitle: "x"}))

	require.NoError(t, s.SetYear(Set(1827)))
	y, ok, err := s.Year()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1827, y)

	// A finer-grained date still yields its year.
	tag, err := s.currentTag()
	require.NoError(t, err)
	tag.Set(container.KeyDate, "2003-07-15")
	y, ok, err = s.Year()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2003, y)

	// Non-ISO dates go through the lenient parser.
	tag.Set(container.KeyDate, "July 15, 2003")
	y, ok, err = s.Year()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2003, y)

	// Garbage reads as absent, not as an error.
	tag.Set(container.KeyDate, "sometime long ago")
	_, ok, err = s.Year()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRatingRoundTrip(t *testing.T) {
	s := loadBuffer(t, mp3Buffer(t, map[string]string{container.KeyTitle: "x"}))

	for stars := 1; stars <= 5; stars++ {
		require.NoError(t, s.SetRating(Set(stars)))
		got, ok, err := s.Rating()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, stars, got)
	}

	require.NoError(t, s.SetRating(Clear[int]()))
	_, ok, err := s.Rating()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRatingInvalidInputLeavesStateUnchanged(t *testing.T) {
	s := loadBuffer(t, mp3Buffer(t, map[string]string{container.KeyTitle: "x"}))
	require.NoError(t, s.SetRating(Set(4)))

	for _, bad := range []int{0, -1, 6, 100} {
		err := s.SetRating(Set(bad))
		assert.ErrorIs(t, err, ErrInvalidRating)
	}

	got, ok, err := s.Rating()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, got)
}

func TestRatingForeignRecordReadsAbsent(t *testing.T) {
	s := loadBuffer(t, mp3Buffer(t, map[string]string{
		container.KeyTitle: "x",
		// A popularity byte outside the five star levels.
		container.KeyPopularimeter: "other@tagger|77|3",
	}))

	_, ok, err := s.Rating()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReplayGainRoundTrip(t *testing.T) {
	s := loadBuffer(t, flacBuffer(t, map[string]string{container.KeyTitle: "x"}))

	require.NoError(t, s.SetReplayGainTrackGain(Set(1.23)))
	require.NoError(t, s.SetReplayGainTrackPeak(Set(0.123456789)))
	require.NoError(t, s.SetReplayGainAlbumGain(Set(-0.5)))
	require.NoError(t, s.SetReplayGainAlbumPeak(Set(0.987654)))

	require.NoError(t, s.Save())
	out, err := s.Buffer()
	require.NoError(t, err)
	reloaded := loadBuffer(t, out)

	g, ok, err := reloaded.ReplayGainTrackGain()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.23, g)

	p, ok, err := reloaded.ReplayGainTrackPeak()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0.123457, p) // six decimal places on the wire

	g, ok, err = reloaded.ReplayGainAlbumGain()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, -0.5, g)
}

func TestReplayGainLenientRead(t *testing.T) {
	s := loadBuffer(t, flacBuffer(t, map[string]string{
		container.KeyTitle:               "x",
		container.KeyReplayGainTrackGain: "  -3.1db ", // non-canonical but parseable
		container.KeyReplayGainAlbumGain: "loud",      // unparseable reads absent
	}))

	g, ok, err := s.ReplayGainTrackGain()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, -3.1, g)

	_, ok, err = s.ReplayGainAlbumGain()
	require.NoError(t, err)
	assert.False(t, ok)
}

package musictag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subframe7536/music-tag-native/internal/container"
)

func TestLoadBufferRoundTrip(t *testing.T) {
	buffers := map[string][]byte{
		"mp3":  mp3Buffer(t, map[string]string{container.KeyTitle: "Original"}),
		"flac": flacBuffer(t, map[string]string{container.KeyTitle: "Original"}),
		"wav":  wavBuffer(t, map[string]string{container.KeyTitle: "Original"}),
	}

	for name, buf := range buffers {
		t.Run(name, func(t *testing.T) {
			s := loadBuffer(t, buf)

			title, ok, err := s.Title()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Original", title)

			require.NoError(t, s.SetTitle(Set("Changed")))
			require.NoError(t, s.SetArtist(Set("Somebody")))
			require.NoError(t, s.Save())

			out, err := s.Buffer()
			require.NoError(t, err)

			reloaded := loadBuffer(t, out)
			title, ok, err = reloaded.Title()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Changed", title)
			artist, ok, err := reloaded.Artist()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Somebody", artist)
		})
	}
}

func TestLoadBufferUnmodifiedFieldsSurvive(t *testing.T) {
	s := loadBuffer(t, mp3Buffer(t, map[string]string{
		container.KeyTitle:  "Keep",
		container.KeyAlbum:  "Album",
		container.KeyArtist: "Artist",
	}))

	require.NoError(t, s.SetGenre(Set("Jazz")))
	require.NoError(t, s.Save())
	out, err := s.Buffer()
	require.NoError(t, err)

	reloaded := loadBuffer(t, out)
	for _, tc := range []struct {
		get  func() (string, bool, error)
		want string
	}{
		{reloaded.Title, "Keep"},
		{reloaded.Album, "Album"},
		{reloaded.Artist, "Artist"},
		{reloaded.Genre, "Jazz"},
	} {
		got, ok, err := tc.get()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, tc.want, got)
	}
}

func TestLoadBufferJunk(t *testing.T) {
	s := New()
	err := s.LoadBuffer([]byte("this is not an audio file at all"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, s.IsDisposed())
}

func TestLoadBufferNoTag(t *testing.T) {
	err := New().LoadBuffer(wavBase(44100, 2, 16, 100))
	assert.ErrorIs(t, err, ErrNoTag)
}

func TestDisposeIdempotent(t *testing.T) {
	s := loadBuffer(t, wavBuffer(t, map[string]string{container.KeyTitle: "x"}))
	require.False(t, s.IsDisposed())

	s.Dispose()
	assert.True(t, s.IsDisposed())
	s.Dispose()
	assert.True(t, s.IsDisposed())

	_, _, err := s.Title()
	assert.ErrorIs(t, err, ErrDisposed)
	assert.ErrorIs(t, s.Save(), ErrDisposed)
	_, err = s.Buffer()
	assert.ErrorIs(t, err, ErrDisposed)
}

func TestLoadOverExistingSession(t *testing.T) {
	s := loadBuffer(t, mp3Buffer(t, map[string]string{container.KeyTitle: "first"}))
	require.NoError(t, s.LoadBuffer(wavBuffer(t, map[string]string{container.KeyTitle: "second"})))

	format, err := s.Format()
	require.NoError(t, err)
	assert.Equal(t, FormatWAV, format)
	title, _, err := s.Title()
	require.NoError(t, err)
	assert.Equal(t, "second", title)
}

func TestLoadPathMissing(t *testing.T) {
	err := New().LoadPath(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPathModeSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.wav")
	require.NoError(t, os.WriteFile(path, wavBuffer(t, map[string]string{container.KeyTitle: "Before"}), 0o644))

	s := New()
	require.NoError(t, s.LoadPath(path))
	defer s.Dispose()

	// Path-mode sessions hold no buffer.
	buf, err := s.Buffer()
	require.NoError(t, err)
	assert.Empty(t, buf)

	require.NoError(t, s.SetTitle(Set("After")))
	require.NoError(t, s.Save())

	check := New()
	require.NoError(t, check.LoadPath(path))
	defer check.Dispose()
	title, _, err := check.Title()
	require.NoError(t, err)
	assert.Equal(t, "After", title)
}

func TestPathModeSaveToRelocates(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.wav")
	dst := filepath.Join(dir, "dst.wav")
	original := wavBuffer(t, map[string]string{container.KeyTitle: "Before"})
	require.NoError(t, os.WriteFile(src, original, 0o644))

	s := New()
	require.NoError(t, s.LoadPath(src))
	defer s.Dispose()
	require.NoError(t, s.SetTitle(Set("After")))
	require.NoError(t, s.SaveTo(dst))

	// The source file is untouched; the destination has the update and
	// the same audio payload.
	srcBytes, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, original, srcBytes)

	check := New()
	require.NoError(t, check.LoadPath(dst))
	defer check.Dispose()
	title, _, err := check.Title()
	require.NoError(t, err)
	assert.Equal(t, "After", title)
}

func TestBufferModeSaveToWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copy.mp3")

	s := loadBuffer(t, mp3Buffer(t, map[string]string{container.KeyTitle: "Memory"}))
	require.NoError(t, s.SetTitle(Set("Persisted")))
	require.NoError(t, s.SaveTo(path))

	// The in-memory buffer was updated as well.
	buf, err := s.Buffer()
	require.NoError(t, err)
	reloaded := loadBuffer(t, buf)
	title, _, err := reloaded.Title()
	require.NoError(t, err)
	assert.Equal(t, "Persisted", title)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf, onDisk)
}

func TestSaveWithBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.wav")
	original := wavBuffer(t, map[string]string{container.KeyTitle: "Before"})
	require.NoError(t, os.WriteFile(path, original, 0o644))

	s := New()
	require.NoError(t, s.LoadPath(path))
	defer s.Dispose()
	require.NoError(t, s.SetTitle(Set("After")))
	require.NoError(t, s.Save(WithBackup(".bak")))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, original, backup)
}

func TestSaveWithValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.flac")
	require.NoError(t, os.WriteFile(path, flacBuffer(t, map[string]string{container.KeyTitle: "v"}), 0o644))

	s := New()
	require.NoError(t, s.LoadPath(path))
	defer s.Dispose()
	require.NoError(t, s.SetTitle(Set("validated")))
	require.NoError(t, s.Save(WithValidation()))
}

func TestTagSelectionPrefersPrimary(t *testing.T) {
	// An MP3 with both ID3v2 and ID3v1 reads and writes the ID3v2 tag.
	v2 := container.NewTag(container.TagID3v2)
	v2.Set(container.KeyTitle, "from v2")
	v1 := container.NewTag(container.TagID3v1)
	v1.Set(container.KeyTitle, "from v1")
	f := container.NewFile(container.FormatMP3, container.Properties{})
	f.AddTag(v1)
	f.AddTag(v2)
	buf, err := container.Encode(f, mpegFrame())
	require.NoError(t, err)

	s := loadBuffer(t, buf)
	tf, err := s.TagFormat()
	require.NoError(t, err)
	assert.Equal(t, TagID3v2, tf)
	title, _, err := s.Title()
	require.NoError(t, err)
	assert.Equal(t, "from v2", title)

	// The untouched ID3v1 trailer survives a save.
	require.NoError(t, s.SetTitle(Set("rewritten")))
	require.NoError(t, s.Save())
	out, err := s.Buffer()
	require.NoError(t, err)

	reparsed, err := container.Probe(out)
	require.NoError(t, err)
	trailer := reparsed.Tag(container.TagID3v1)
	require.NotNil(t, trailer)
	v, _ := trailer.Get(container.KeyTitle)
	assert.Equal(t, "from v1", v)
}

func TestSessionProperties(t *testing.T) {
	s := loadBuffer(t, flacBuffer(t, map[string]string{container.KeyTitle: "x"}))

	sr, ok, err := s.SampleRate()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 44100, sr)

	depth, ok, err := s.BitDepth()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 16, depth)

	ch, ok, err := s.Channels()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, ch)

	dur, err := s.Duration()
	require.NoError(t, err)
	assert.Equal(t, float64(10), dur.Seconds())
}

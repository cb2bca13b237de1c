package musictag

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/subframe7536/music-tag-native/internal/container"

	// Register the bundled format codecs.
	_ "github.com/subframe7536/music-tag-native/internal/flac"
	_ "github.com/subframe7536/music-tag-native/internal/mp3"
	_ "github.com/subframe7536/music-tag-native/internal/wav"
)

// sourceKind tags where a session's bytes live. Save behavior branches
// on this tag, never on ad hoc nil checks.
type sourceKind int

const (
	sourceNone   sourceKind = iota // unloaded
	sourceBuffer                   // loaded from memory; session owns the buffer
	sourcePath                     // loaded from a filesystem path; no buffer retained
)

// Session is one loaded audio file instance: the uniform read/write
// surface over whichever tag format the file carries.
//
// A session is either fully unloaded or fully loaded; loading over an
// existing session disposes it first. Sessions are not safe for
// concurrent use; callers needing concurrency use independent sessions.
type Session struct {
	src  sourceKind
	buf  []byte
	path string
	size int64
	file *container.File
}

// New creates an unloaded session.
func New() *Session {
	return &Session{}
}

// LoadBuffer parses an in-memory audio file and takes ownership of a
// copy of its bytes. It returns a *ParseError (matching ErrInvalidInput)
// when the format cannot be determined or parsing fails, and ErrNoTag
// when the file exposes zero tags.
func (s *Session) LoadBuffer(b []byte) error {
	s.Dispose()

	f, err := container.Probe(b)
	if err != nil {
		return &ParseError{Err: err}
	}
	if len(f.Tags()) == 0 {
		return ErrNoTag
	}

	s.src = sourceBuffer
	s.buf = bytes.Clone(b)
	s.size = int64(len(b))
	s.file = f
	slog.Debug("musictag: loaded buffer", "format", f.Format, "size", s.size)
	return nil
}

// LoadPath parses an audio file at a filesystem path. The session keeps
// the path but not the file's bytes; saves re-read the container from
// disk. It fails with ErrUnsupportedEnvironment where no filesystem is
// available, *ParseError for unreadable or unparseable files, and
// ErrNoTag when the file exposes zero tags.
func (s *Session) LoadPath(path string) error {
	if !fsSupported {
		return ErrUnsupportedEnvironment
	}
	s.Dispose()

	b, err := os.ReadFile(path)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	f, err := container.Probe(b)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	if len(f.Tags()) == 0 {
		return ErrNoTag
	}

	s.src = sourcePath
	s.path = path
	s.size = int64(len(b))
	s.file = f
	slog.Debug("musictag: loaded path", "path", path, "format", f.Format)
	return nil
}

// Dispose unloads the session, dropping the buffer, path, and parsed
// structure. It is idempotent; disposing an unloaded session is a no-op.
func (s *Session) Dispose() {
	s.src = sourceNone
	s.buf = nil
	s.path = ""
	s.size = 0
	s.file = nil
}

// IsDisposed reports whether no file is loaded.
func (s *Session) IsDisposed() bool {
	return s.src == sourceNone
}

// Save serializes the current tag state back to the session's source.
//
// A buffer-mode session rewrites its in-memory buffer. A path-mode
// session rewrites the file at its load path, atomically. Save fails
// with ErrNoTarget if the session has neither.
func (s *Session) Save(opts ...SaveOption) error {
	return s.save("", opts...)
}

// SaveTo serializes the current tag state to a filesystem path.
//
// A buffer-mode session rewrites its in-memory buffer and additionally
// writes the updated buffer to path, so one call both round-trips in
// memory and persists a copy. A path-mode session writes to path; when
// path differs from the load path the untouched container is relocated
// there with the tag update applied, leaving the original file as it
// was.
func (s *Session) SaveTo(path string, opts ...SaveOption) error {
	return s.save(path, opts...)
}

func (s *Session) save(target string, opts ...SaveOption) error {
	if s.IsDisposed() {
		return ErrDisposed
	}
	if target != "" && !fsSupported {
		return ErrUnsupportedEnvironment
	}
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	switch s.src {
	case sourceBuffer:
		out, err := container.Encode(s.file, s.buf)
		if err != nil {
			return &WriteError{Err: err}
		}
		if target != "" {
			if err := writeFileAtomic(target, out, options); err != nil {
				return err
			}
		}
		// The stored buffer is only replaced once every underlying
		// write has succeeded.
		s.buf = out
		s.size = int64(len(out))
		slog.Debug("musictag: saved buffer", "size", s.size, "path", target)
		if target != "" && options.validate {
			return s.validateWritten(target)
		}
		return nil

	case sourcePath:
		if target == "" {
			target = s.path
		}
		base, err := os.ReadFile(s.path)
		if err != nil {
			return &WriteError{Path: s.path, Err: err}
		}
		out, err := container.Encode(s.file, base)
		if err != nil {
			return &WriteError{Path: target, Err: err}
		}
		if err := writeFileAtomic(target, out, options); err != nil {
			return err
		}
		slog.Debug("musictag: saved path", "path", target)
		if options.validate {
			return s.validateWritten(target)
		}
		return nil

	default:
		return ErrNoTarget
	}
}

// Buffer returns a copy of the session's in-memory bytes. A path-mode
// session that has not performed a buffer-producing save returns an
// empty slice.
func (s *Session) Buffer() ([]byte, error) {
	if s.IsDisposed() {
		return nil, ErrDisposed
	}
	return bytes.Clone(s.buf), nil
}

// Format returns the detected container format.
func (s *Session) Format() (Format, error) {
	if s.IsDisposed() {
		return FormatUnknown, ErrDisposed
	}
	return s.file.Format, nil
}

// TagFormat returns the tag family of the selected tag, the one all
// field accessors read and write.
func (s *Session) TagFormat() (TagFormat, error) {
	tag, err := s.currentTag()
	if err != nil {
		return container.TagUnknown, err
	}
	return tag.Type(), nil
}

// SampleRate returns the container-reported sample rate in Hz, with
// false when the container does not report one.
func (s *Session) SampleRate() (int, bool, error) {
	if s.IsDisposed() {
		return 0, false, ErrDisposed
	}
	return s.file.Props.SampleRate, s.file.Props.SampleRate > 0, nil
}

// BitDepth returns the container-reported bits per sample, with false
// when the container does not report one.
func (s *Session) BitDepth() (int, bool, error) {
	if s.IsDisposed() {
		return 0, false, ErrDisposed
	}
	return s.file.Props.BitDepth, s.file.Props.BitDepth > 0, nil
}

// Channels returns the container-reported channel count, with false
// when the container does not report one.
func (s *Session) Channels() (int, bool, error) {
	if s.IsDisposed() {
		return 0, false, ErrDisposed
	}
	return s.file.Props.Channels, s.file.Props.Channels > 0, nil
}

// Duration returns the audio duration, zero when unknown.
func (s *Session) Duration() (time.Duration, error) {
	if s.IsDisposed() {
		return 0, ErrDisposed
	}
	return s.file.Props.Duration, nil
}

// currentTag selects the tag all field accessors target: the format's
// primary tag when the container designates one, else the first tag in
// native order. The same rule serves reads and writes, so a get/set
// pair within one session always addresses the same physical tag.
func (s *Session) currentTag() (*container.Tag, error) {
	if s.IsDisposed() {
		return nil, ErrDisposed
	}
	if t := s.file.PrimaryTag(); t != nil {
		return t, nil
	}
	if t := s.file.FirstTag(); t != nil {
		return t, nil
	}
	// Load guarantees at least one tag; an empty collection here means
	// the invariant was breached after load.
	return nil, ErrNoTag
}

// validateWritten re-opens a just-written file and compares the key
// fields against the session.
func (s *Session) validateWritten(path string) error {
	written := New()
	if err := written.LoadPath(path); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("validate: %w", err)}
	}
	defer written.Dispose()

	for _, key := range []string{container.KeyTitle, container.KeyArtist, container.KeyAlbum} {
		got, _, err := written.getText(key)
		if err != nil {
			return &WriteError{Path: path, Err: fmt.Errorf("validate %s: %w", key, err)}
		}
		want, _, err := s.getText(key)
		if err != nil {
			return &WriteError{Path: path, Err: fmt.Errorf("validate %s: %w", key, err)}
		}
		if got != want {
			return &WriteError{Path: path, Err: fmt.Errorf("validate %s: got %q, want %q", key, got, want)}
		}
	}
	return nil
}

// writeFileAtomic writes data to path through a temp file in the same
// directory followed by a rename, so a failed write never leaves a
// partially written file at path. Failures are reported as *WriteError.
func writeFileAtomic(path string, data []byte, options *saveOptions) error {
	var origInfo os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(path); err == nil {
			origInfo = info
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".musictag-*.tmp")
	if err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("sync temp file: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("close temp file: %w", err)}
	}

	if options.backupSuffix != "" {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+options.backupSuffix); err != nil {
				return &WriteError{Path: path, Err: fmt.Errorf("create backup: %w", err)}
			}
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("rename temp file: %w", err)}
	}
	success = true

	if origInfo != nil {
		// Non-fatal: the data is already on disk.
		os.Chtimes(path, origInfo.ModTime(), origInfo.ModTime())
	}
	return nil
}

// Package musictag presents a single uniform read/write surface for the
// descriptive metadata embedded in audio files, across tag formats that
// are mutually incompatible on the wire (ID3v1, ID3v2, Vorbis comments,
// RIFF INFO).
//
// A Session wraps one loaded file. Load it from memory or from a path,
// read and write fields through typed accessors, then save back to the
// same target or a new one:
//
//	s := musictag.New()
//	if err := s.LoadPath("song.mp3"); err != nil {
//		return err
//	}
//	defer s.Dispose()
//
//	s.SetTitle(musictag.Set("New Title"))
//	s.SetComment(musictag.Clear[string]())
//	if err := s.Save(); err != nil {
//		return err
//	}
//
// Field accessors target one tag per session: the format's primary tag
// when several coexist (an MP3 with both ID3v2 and ID3v1 reads and
// writes the ID3v2 tag), else the first tag in native order. Saving
// rewrites every tag the file carries, so tags outside the selected one
// survive a save untouched.
package musictag

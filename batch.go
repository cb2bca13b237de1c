package musictag

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Snapshot is a point-in-time summary of one file's metadata, the
// fields a library scan typically needs.
type Snapshot struct {
	Path     string
	Format   Format
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
	Quality  Quality
	Bitrate  int // kbps, 0 when unknown
}

// ReadAll loads every path concurrently and returns one snapshot per
// path, in input order. Parallelism is capped at the CPU count. The
// first failing path aborts the batch; sessions opened by other
// goroutines are disposed before ReadAll returns.
func ReadAll(ctx context.Context, paths ...string) ([]*Snapshot, error) {
	snapshots := make([]*Snapshot, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			snap, err := readSnapshot(path)
			if err != nil {
				return err
			}
			snapshots[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func readSnapshot(path string) (*Snapshot, error) {
	s := New()
	if err := s.LoadPath(path); err != nil {
		return nil, err
	}
	defer s.Dispose()

	snap := &Snapshot{Path: path}
	snap.Format, _ = s.Format()
	snap.Title, _, _ = s.Title()
	snap.Artist, _, _ = s.Artist()
	snap.Album, _, _ = s.Album()
	snap.Duration, _ = s.Duration()
	snap.Quality, _ = s.Quality()
	snap.Bitrate, _, _ = s.Bitrate()
	return snap, nil
}

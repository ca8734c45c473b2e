// Package capture cleans raw device logs and loads cleaned captures.
package capture

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joeydtaylor/breathscope/pkg/internal/codec"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// Clean copies the device frames in r to w as cleaned pairs. Lines that are
// not frames are dropped and counted.
func Clean(ctx context.Context, r io.Reader, w io.Writer) (types.DecodeStats, error) {
	pairs, stats, err := codec.NewFrameDecoder().DecodeAll(ctxReader{ctx: ctx, r: r})
	if err != nil {
		return stats, fmt.Errorf("clean: %w", err)
	}
	if err := codec.NewPairEncoder().Encode(w, pairs); err != nil {
		return stats, fmt.Errorf("clean: write: %w", err)
	}
	return stats, nil
}

// CleanFile rewrites path in place. The cleaned output goes to a temporary
// file in the same directory and replaces the original only on success.
func CleanFile(ctx context.Context, path string) (types.DecodeStats, error) {
	in, err := os.Open(path)
	if err != nil {
		return types.DecodeStats{}, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return types.DecodeStats{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return types.DecodeStats{}, err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	stats, err := Clean(ctx, in, tmp)
	if err != nil {
		tmp.Close()
		return stats, err
	}
	if err := tmp.Close(); err != nil {
		return stats, err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return stats, err
	}
	in.Close()
	if err := os.Rename(tmpName, path); err != nil {
		return stats, err
	}
	return stats, nil
}

// Load reads cleaned pairs from r. Malformed lines are skipped.
func Load(r io.Reader) ([]types.SamplePair, types.DecodeStats, error) {
	pairs, stats, err := codec.NewPairDecoder().DecodeAll(r)
	if err != nil {
		return nil, stats, fmt.Errorf("load: %w", err)
	}
	return pairs, stats, nil
}

// LoadFile reads a cleaned capture file. duration is how long the collection
// ran; pass 0 when it is unknown.
func LoadFile(path string, duration time.Duration) (types.Capture, types.DecodeStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Capture{}, types.DecodeStats{}, err
	}
	defer f.Close()

	pairs, stats, err := Load(f)
	if err != nil {
		return types.Capture{}, stats, err
	}
	return types.Capture{Samples: pairs, Duration: duration}, stats, nil
}

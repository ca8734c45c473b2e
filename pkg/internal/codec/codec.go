// Package codec turns capture text into sample pairs and back.
//
// Two line formats exist. Raw device frames look like "Ca=<int> Cb=<int>"
// and may be interleaved with boot banners or partial writes. Cleaned
// captures hold one "<a> <b>" pair per line. Both decoders skip lines they
// cannot parse and count them in DecodeStats.
package codec

import (
	"bufio"
	"io"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// maxLineBytes bounds a single capture line. Longer lines are drained and
// counted as skipped.
const maxLineBytes = 1 << 20

type lineParser func(line string) (types.SamplePair, bool)

func decodeLines(r io.Reader, parse lineParser) ([]types.SamplePair, types.DecodeStats, error) {
	var (
		out   []types.SamplePair
		stats types.DecodeStats
	)
	br := bufio.NewReaderSize(r, 64*1024)
	for {
		line, oversized, err := readLine(br)
		if err == io.EOF {
			return out, stats, nil
		}
		if err != nil {
			return nil, stats, err
		}
		stats.Lines++
		if oversized {
			stats.Skipped++
			continue
		}
		pair, ok := parse(string(line))
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Accepted++
		out = append(out, pair)
	}
}

// readLine returns the next line without its terminator. A line longer than
// maxLineBytes is consumed up to its newline and reported as oversized.
func readLine(br *bufio.Reader) (line []byte, oversized bool, err error) {
	started := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if err == io.EOF && started {
				return line, oversized, nil
			}
			return nil, false, err
		}
		started = true
		if !oversized {
			if len(line)+len(chunk) > maxLineBytes {
				oversized = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, oversized, nil
		}
	}
}

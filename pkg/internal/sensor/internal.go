package sensor

import "github.com/joeydtaylor/breathscope/pkg/internal/types"

// decorateCallbacks appends the sensor's own bookkeeping and logging hooks
// after the caller's options.
func (s *Sensor) decorateCallbacks(options ...types.Option[types.Sensor]) []types.Option[types.Sensor] {
	return append(
		options,
		WithOnPeaksFunc(func(c types.ComponentMetadata, ch types.Channel, peaks []int) {
			s.tallyLock.Lock()
			s.tally.Peaks[ch] += int64(len(peaks))
			s.tallyLock.Unlock()
			s.NotifyLoggers(types.DebugLevel, "Peaks detected",
				"component", c, "event", "Peaks", "channel", ch, "count", len(peaks))
		}),
		WithOnGapResolvedFunc(func(c types.ComponentMetadata, r types.Resolution) {
			s.tallyLock.Lock()
			s.tally.Gaps[r.Source]++
			s.tallyLock.Unlock()
			s.NotifyLoggers(types.DebugLevel, "Gap resolved",
				"component", c, "event", "GapResolved",
				"position", r.Position, "index", r.Index, "source", string(r.Source))
		}),
		WithOnCompleteFunc(func(c types.ComponentMetadata, r types.Report) {
			s.tallyLock.Lock()
			s.tally.Runs++
			s.tally.LastReport = r.ID
			s.tallyLock.Unlock()
			s.NotifyLoggers(types.InfoLevel, "Detection complete",
				"component", c, "event", "Complete",
				"report", r.ID, "breaths", r.BreathCount, "bpm", r.BreathsPerMinute)
		}),
		WithOnErrorFunc(func(c types.ComponentMetadata, err error) {
			s.tallyLock.Lock()
			s.tally.Errors++
			s.tallyLock.Unlock()
			s.NotifyLoggers(types.ErrorLevel, "Detection failed",
				"component", c, "event", "Error", "error", err)
		}),
	)
}

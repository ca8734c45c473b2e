package sensor

import "github.com/joeydtaylor/breathscope/pkg/internal/types"

// RegisterOnFiltered registers callbacks for filtered-channel events.
func (s *Sensor) RegisterOnFiltered(callback ...func(types.ComponentMetadata, types.Channel, int)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnFiltered = append(s.OnFiltered, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnFiltered invokes callbacks after a channel has been filtered.
func (s *Sensor) InvokeOnFiltered(c types.ComponentMetadata, ch types.Channel, length int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnFiltered) {
		if cb == nil {
			continue
		}
		cb(c, ch, length)
	}
}

// RegisterOnPeaks registers callbacks for per-channel peak sets.
func (s *Sensor) RegisterOnPeaks(callback ...func(types.ComponentMetadata, types.Channel, []int)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnPeaks = append(s.OnPeaks, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnPeaks invokes callbacks once a channel's peaks are known.
func (s *Sensor) InvokeOnPeaks(c types.ComponentMetadata, ch types.Channel, peaks []int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnPeaks) {
		if cb == nil {
			continue
		}
		cb(c, ch, peaks)
	}
}

// RegisterOnGapResolved registers callbacks for filled gaps.
func (s *Sensor) RegisterOnGapResolved(callback ...func(types.ComponentMetadata, types.Resolution)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnGapResolved = append(s.OnGapResolved, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnGapResolved invokes callbacks for each filled gap.
func (s *Sensor) InvokeOnGapResolved(c types.ComponentMetadata, r types.Resolution) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnGapResolved) {
		if cb == nil {
			continue
		}
		cb(c, r)
	}
}

// RegisterOnComplete registers callbacks for finished runs.
func (s *Sensor) RegisterOnComplete(callback ...func(types.ComponentMetadata, types.Report)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnComplete = append(s.OnComplete, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnComplete invokes callbacks with the finished report.
func (s *Sensor) InvokeOnComplete(c types.ComponentMetadata, r types.Report) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnComplete) {
		if cb == nil {
			continue
		}
		cb(c, r)
	}
}

// RegisterOnError registers callbacks for failed runs.
func (s *Sensor) RegisterOnError(callback ...func(types.ComponentMetadata, error)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnError = append(s.OnError, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnError invokes callbacks when a run aborts.
func (s *Sensor) InvokeOnError(c types.ComponentMetadata, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnError) {
		if cb == nil {
			continue
		}
		cb(c, err)
	}
}

package sensor

import "github.com/joeydtaylor/breathscope/pkg/internal/types"

// GetComponentMetadata returns the sensor metadata.
func (s *Sensor) GetComponentMetadata() types.ComponentMetadata {
	s.metadataLock.Lock()
	metadata := s.componentMetadata
	s.metadataLock.Unlock()
	return metadata
}

// SetComponentMetadata updates the sensor name and ID.
func (s *Sensor) SetComponentMetadata(name string, id string) {
	s.metadataLock.Lock()
	old := s.componentMetadata
	s.componentMetadata.Name = name
	s.componentMetadata.ID = id
	current := s.componentMetadata
	s.metadataLock.Unlock()

	s.NotifyLoggers(types.DebugLevel, "Component metadata updated",
		"component", current,
		"event", "SetComponentMetadata",
		"old", old,
	)
}

// Snapshot returns a copy of the running tally.
func (s *Sensor) Snapshot() Tally {
	s.tallyLock.Lock()
	defer s.tallyLock.Unlock()

	out := s.tally
	out.Peaks = make(map[types.Channel]int64, len(s.tally.Peaks))
	for k, v := range s.tally.Peaks {
		out.Peaks[k] = v
	}
	out.Gaps = make(map[types.ResolutionSource]int64, len(s.tally.Gaps))
	for k, v := range s.tally.Gaps {
		out.Gaps[k] = v
	}
	return out
}

package types

import (
	"fmt"
	"time"
)

// Channel selects one side of a SamplePair.
type Channel int

const (
	ChannelA Channel = iota // first value on a capture line ("Ca")
	ChannelB                // second value on a capture line ("Cb")
)

func (c Channel) String() string {
	switch c {
	case ChannelA:
		return "A"
	case ChannelB:
		return "B"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// Other returns the opposite channel.
func (c Channel) Other() Channel {
	if c == ChannelA {
		return ChannelB
	}
	return ChannelA
}

// ParseChannel accepts "a"/"A"/"ca" and "b"/"B"/"cb".
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "a", "A", "ca", "Ca", "CA":
		return ChannelA, nil
	case "b", "B", "cb", "Cb", "CB":
		return ChannelB, nil
	default:
		return ChannelA, fmt.Errorf("unknown channel %q", s)
	}
}

// SamplePair is one reading of both ADC channels, in raw counts.
type SamplePair struct {
	A int
	B int
}

// Capture is a complete acquisition: samples in acquisition order plus the
// wall-clock time the collection ran for.
type Capture struct {
	Samples  []SamplePair
	Duration time.Duration
}

// Channel copies one channel out of the capture.
func (c Capture) Channel(ch Channel) []int {
	out := make([]int, len(c.Samples))
	for i, s := range c.Samples {
		if ch == ChannelA {
			out[i] = s.A
		} else {
			out[i] = s.B
		}
	}
	return out
}

// SampleRate returns samples per second, or 0 when the duration is unknown.
func (c Capture) SampleRate() float64 {
	if c.Duration <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / c.Duration.Seconds()
}

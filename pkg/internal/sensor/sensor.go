package sensor

import (
	"sync"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"github.com/joeydtaylor/breathscope/pkg/internal/utils"
)

// Sensor provides callback hooks for detection runs.
type Sensor struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	OnFiltered    []func(types.ComponentMetadata, types.Channel, int)
	OnPeaks       []func(types.ComponentMetadata, types.Channel, []int)
	OnGapResolved []func(types.ComponentMetadata, types.Resolution)
	OnComplete    []func(types.ComponentMetadata, types.Report)
	OnError       []func(types.ComponentMetadata, error)
	callbackLock  sync.Mutex

	loggers     []types.Logger
	loggersLock sync.Mutex

	tally     Tally
	tallyLock sync.Mutex
}

// Tally is a running count of what the sensor has observed.
type Tally struct {
	Runs       int64
	Errors     int64
	Peaks      map[types.Channel]int64
	Gaps       map[types.ResolutionSource]int64
	LastReport string
}

// NewSensor creates a sensor and applies options.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	s := &Sensor{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SENSOR",
		},
		tally: Tally{
			Peaks: make(map[types.Channel]int64),
			Gaps:  make(map[types.ResolutionSource]int64),
		},
	}

	for _, opt := range s.decorateCallbacks(options...) {
		if opt == nil {
			continue
		}
		opt(s)
	}

	return s
}

package detector

import "github.com/joeydtaylor/breathscope/pkg/internal/types"

// ConnectLogger attaches loggers, skipping nils.
func (d *Detector) ConnectLogger(loggers ...types.Logger) {
	d.loggersLock.Lock()
	defer d.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			d.loggers = append(d.loggers, l)
		}
	}
}

// ConnectSensor attaches sensors, skipping nils.
func (d *Detector) ConnectSensor(sensors ...types.Sensor) {
	d.sensorsLock.Lock()
	defer d.sensorsLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			d.sensors = append(d.sensors, s)
		}
	}
}

// SetConfig replaces the configuration used by subsequent runs. The channel
// map is copied so later edits by the caller do not leak in.
func (d *Detector) SetConfig(cfg types.DetectorConfig) {
	cfg.Channels = copyChannels(cfg.Channels)
	d.configLock.Lock()
	d.config = cfg
	d.configLock.Unlock()
}

// GetConfig returns a copy of the current configuration.
func (d *Detector) GetConfig() types.DetectorConfig {
	d.configLock.RLock()
	cfg := d.config
	d.configLock.RUnlock()
	cfg.Channels = copyChannels(cfg.Channels)
	return cfg
}

// GetComponentMetadata returns the detector metadata.
func (d *Detector) GetComponentMetadata() types.ComponentMetadata {
	d.metadataLock.Lock()
	defer d.metadataLock.Unlock()
	return d.componentMetadata
}

// SetComponentMetadata updates the detector name and ID.
func (d *Detector) SetComponentMetadata(name string, id string) {
	d.metadataLock.Lock()
	old := d.componentMetadata
	d.componentMetadata.Name = name
	d.componentMetadata.ID = id
	current := d.componentMetadata
	d.metadataLock.Unlock()

	d.NotifyLoggers(types.DebugLevel, "Component metadata updated",
		"component", current,
		"event", "SetComponentMetadata",
		"old", old,
	)
}

func copyChannels(in map[types.Channel]types.ChannelConfig) map[types.Channel]types.ChannelConfig {
	if in == nil {
		return nil
	}
	out := make(map[types.Channel]types.ChannelConfig, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

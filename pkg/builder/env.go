package builder

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string {
	v := strings.TrimSpace(strings.Trim(os.Getenv(key), `"`))
	if v == "" {
		return def
	}
	return v
}

// EnvIntOr returns the parsed int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvFloatOr returns the parsed float env value or def on empty/parse failure.
func EnvFloatOr(key string, def float64) float64 {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// EnvBoolOr returns the parsed bool env value or def on empty/parse failure.
func EnvBoolOr(key string, def bool) bool {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// DetectorConfigFromEnv starts from DefaultDetectorConfig and applies
// <prefix>WINDOW, WINDOW_A, WINDOW_B, PROMINENCE, MIN_DISTANCE, MIN_PLATEAU,
// PRIORITY, NORMALIZE, INVERT, PRIMARY, PROFILE and SPECTRAL. An empty prefix
// means "BREATH_". Unparseable numbers keep the default; unknown channel names
// are errors.
func DetectorConfigFromEnv(prefix string) (types.DetectorConfig, error) {
	if prefix == "" {
		prefix = "BREATH_"
	}
	cfg := DefaultDetectorConfig()

	primary := cfg.Primary
	if v := EnvOr(prefix+"PRIMARY", ""); v != "" {
		ch, err := types.ParseChannel(v)
		if err != nil {
			return cfg, fmt.Errorf("%sPRIMARY: %w", prefix, err)
		}
		primary = ch
	}

	// Only the primary channel is inverted unless INVERT names another one.
	invert := map[types.Channel]bool{primary: true}
	if v := EnvOr(prefix+"INVERT", ""); v != "" {
		invert = map[types.Channel]bool{}
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" || strings.EqualFold(name, "none") {
				continue
			}
			ch, err := types.ParseChannel(name)
			if err != nil {
				return cfg, fmt.Errorf("%sINVERT: %w", prefix, err)
			}
			invert[ch] = true
		}
	}

	window := EnvIntOr(prefix+"WINDOW", types.FiveCycleWindowSize)
	for _, ch := range []types.Channel{types.ChannelA, types.ChannelB} {
		cc := cfg.Channels[ch]
		cc.Window = EnvIntOr(prefix+"WINDOW_"+ch.String(), window)
		cc.Normalize = types.NormalizeMode(strings.ToLower(EnvOr(prefix+"NORMALIZE", string(cc.Normalize))))
		cc.Invert = invert[ch]
		cc.Peaks.Prominence = EnvFloatOr(prefix+"PROMINENCE", cc.Peaks.Prominence)
		cc.Peaks.MinDistance = EnvIntOr(prefix+"MIN_DISTANCE", cc.Peaks.MinDistance)
		cc.Peaks.MinPlateau = EnvIntOr(prefix+"MIN_PLATEAU", cc.Peaks.MinPlateau)
		cc.Peaks.Priority = types.PeakPriority(strings.ToLower(EnvOr(prefix+"PRIORITY", string(cc.Peaks.Priority))))
		cfg.Channels[ch] = cc
	}

	cfg.Primary = primary
	cfg.Profile = types.Profile(strings.ToLower(EnvOr(prefix+"PROFILE", string(cfg.Profile))))
	cfg.Spectral = EnvBoolOr(prefix+"SPECTRAL", cfg.Spectral)

	return cfg, cfg.Validate()
}

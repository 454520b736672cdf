package interp

import (
	"github.com/BurntSushi/toml"

	"github.com/funge98/gofunge/vm"
)

// Config collects the interpreter's documented policy choices. The
// zero value is not useful; start from DefaultConfig.
type Config struct {
	// Unknown selects the unknown-instruction policy: "reflect"
	// (Funge-98 standard behavior), "noop" (treat as 'z'), or
	// "kill" (terminate the offending IP).
	Unknown vm.UnknownPolicy `toml:"unknown"`

	// SpaceCostsTick makes space an ordinary one-tick no-op. When
	// false, spaces and ';' sections execute outside of time.
	SpaceCostsTick bool `toml:"space_costs_tick"`

	// Seed for the '?' direction source, for reproducible runs.
	Seed int64 `toml:"seed"`

	// MaxTicks aborts the run after this many ticks; 0 means no
	// limit.
	MaxTicks int `toml:"max_ticks"`

	// Trace enables instruction tracing to the log.
	Trace bool `toml:"trace"`

	// Args holds the program name and its arguments, reported by
	// the 'y' instruction.
	Args []string `toml:"-"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Unknown:        vm.UNKNOWN_REFLECT,
		SpaceCostsTick: true,
	}
}

// LoadConfig reads a TOML policy file over the defaults.
func LoadConfig(path string) (cfg Config, err error) {
	cfg = DefaultConfig()

	_, err = toml.DecodeFile(path, &cfg)
	if err != nil {
		err = &ErrConfig{Path: path, Err: err}
	}

	return
}

// machine maps the interpreter configuration onto the core's.
func (cfg Config) machine() vm.Config {
	return vm.Config{
		Unknown:        cfg.Unknown,
		SpaceCostsTick: cfg.SpaceCostsTick,
		Seed:           cfg.Seed,
		Args:           cfg.Args,
	}
}

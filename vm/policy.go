package vm

// UnknownPolicy selects what dispatch does with a character that has
// no table entry.
type UnknownPolicy int

//go:generate go tool stringer -linecomment -type=UnknownPolicy
const (
	UNKNOWN_REFLECT = UnknownPolicy(0) // reflect
	UNKNOWN_NOOP    = UnknownPolicy(1) // noop
	UNKNOWN_KILL    = UnknownPolicy(2) // kill
)

// UnmarshalText decodes a policy name, for configuration files.
func (up *UnknownPolicy) UnmarshalText(text []byte) (err error) {
	switch string(text) {
	case "reflect":
		*up = UNKNOWN_REFLECT
	case "noop":
		*up = UNKNOWN_NOOP
	case "kill":
		*up = UNKNOWN_KILL
	default:
		err = ErrPolicyInvalid(text)
	}

	return
}

// Config collects the documented policy choices of the machine.
type Config struct {
	Unknown        UnknownPolicy // Unknown-instruction policy.
	SpaceCostsTick bool          // Space is an ordinary one-tick no-op.
	Seed           int64         // Seed for the '?' direction source.
	Args           []string      // Program arguments, reported by 'y'.
}

// DefaultConfig returns the documented defaults: unknown instructions
// reflect, and space consumes a scheduler tick.
func DefaultConfig() Config {
	return Config{
		Unknown:        UNKNOWN_REFLECT,
		SpaceCostsTick: true,
	}
}

package idle

// Dialer opens connections to a display server.
type Dialer interface {
	// Open connects to the named display. An empty name defers to $DISPLAY.
	Open(display string) (Conn, error)
}

// Conn is a single display server connection. It is owned by one Query
// call and closed before Query returns.
type Conn interface {
	// ScreenSaverSupported reports whether the MIT-SCREEN-SAVER extension
	// is available.
	ScreenSaverSupported() bool

	// Root returns the drawable idle information is queried against.
	Root() (Drawable, error)

	// IdleMillis returns milliseconds since the server last saw user input.
	IdleMillis(root Drawable) (uint64, error)

	// VendorRelease returns the release number from the connection setup.
	VendorRelease() uint32

	// PowerManager returns the DPMS view of the same connection.
	PowerManager() PowerManager

	Close()
}

// PowerManager exposes the DPMS queries the corrector needs.
type PowerManager interface {
	Present() bool
	Capable() bool
	Timeouts() (Timeouts, error)
	Info() (level PowerLevel, enabled bool, err error)
}

type Drawable uint32

// PowerLevel is a DPMS power level as reported on the wire.
type PowerLevel uint16

const (
	PowerOn PowerLevel = iota
	PowerStandby
	PowerSuspend
	PowerOff
)

func (l PowerLevel) String() string {
	switch l {
	case PowerOn:
		return "on"
	case PowerStandby:
		return "standby"
	case PowerSuspend:
		return "suspend"
	case PowerOff:
		return "off"
	default:
		return "unknown"
	}
}

// Timeouts are the DPMS timeouts in seconds.
type Timeouts struct {
	Standby uint16
	Suspend uint16
	Off     uint16
}

// PowerState is one DPMS reading: the current level, the master on/off
// flag and the configured timeouts.
type PowerState struct {
	Level    PowerLevel
	Enabled  bool
	Timeouts Timeouts
}

// Result describes one idle query.
type Result struct {
	Raw           uint64
	Corrected     uint64
	VendorRelease uint32

	// Gated is true when the release predates FixedRelease and the DPMS
	// correction was attempted.
	Gated bool
}

// Millis returns the idle time to report.
func (r Result) Millis() uint64 {
	return r.Corrected
}

package idle

import "codeberg.org/mutker/xprintidle/internal/logger"

const millisPerSecond = 1000

// Correct adds back the time the server spent in earlier DPMS levels.
//
// Servers affected by the DPMS idle bug reset their idle counter on every
// power level transition, so the sample only covers the current level.
// Correct never fails: a missing or incapable DPMS extension, or a failed
// query, leaves idle unchanged.
func Correct(idle uint64, pm PowerManager) uint64 {
	state, ok := ReadPowerState(pm)
	if !ok {
		return idle
	}

	corrected := Adjust(idle, state)

	logger.Debug().
		Str("level", state.Level.String()).
		Bool("enabled", state.Enabled).
		Uint16("standby", state.Timeouts.Standby).
		Uint16("suspend", state.Timeouts.Suspend).
		Uint16("off", state.Timeouts.Off).
		Uint64("idle", idle).
		Uint64("corrected", corrected).
		Msg("DPMS state read")

	return corrected
}

// ReadPowerState queries pm. ok is false when DPMS is absent, not capable,
// or any query fails.
func ReadPowerState(pm PowerManager) (PowerState, bool) {
	if pm == nil || !pm.Present() {
		logger.Debug().Msg("DPMS extension not present")
		return PowerState{}, false
	}

	if !pm.Capable() {
		logger.Debug().Msg("Display is not DPMS capable")
		return PowerState{}, false
	}

	timeouts, err := pm.Timeouts()
	if err != nil {
		logger.Debug().Err(err).Msg("Failed to get DPMS timeouts")
		return PowerState{}, false
	}

	level, enabled, err := pm.Info()
	if err != nil {
		logger.Debug().Err(err).Msg("Failed to get DPMS info")
		return PowerState{}, false
	}

	return PowerState{
		Level:    level,
		Enabled:  enabled,
		Timeouts: timeouts,
	}, true
}

// Adjust applies the correction policy for a known power state.
func Adjust(idle uint64, state PowerState) uint64 {
	if !state.Enabled {
		return idle
	}

	elapsed, ok := state.Elapsed()
	if !ok {
		return idle
	}

	if idle < elapsed {
		return idle + elapsed
	}

	return idle
}

// Elapsed returns the minimum milliseconds without input needed to reach
// the current level. ok is false for PowerOn and unknown levels.
func (s PowerState) Elapsed() (uint64, bool) {
	standby := uint64(s.Timeouts.Standby)
	suspend := uint64(s.Timeouts.Suspend)
	off := uint64(s.Timeouts.Off)

	switch s.Level {
	case PowerStandby:
		return standby * millisPerSecond, true
	case PowerSuspend:
		return (suspend + standby) * millisPerSecond, true
	case PowerOff:
		return (off + suspend + standby) * millisPerSecond, true
	default:
		return 0, false
	}
}

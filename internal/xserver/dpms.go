package xserver

import (
	"codeberg.org/mutker/xprintidle/internal/errors"
	"codeberg.org/mutker/xprintidle/internal/idle"
	"codeberg.org/mutker/xprintidle/internal/logger"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/dpms"
)

// powerManager answers DPMS queries on an existing connection.
type powerManager struct {
	x       *xgb.Conn
	checked bool
	present bool
}

func (p *powerManager) Present() bool {
	if !p.checked {
		p.checked = true
		if err := dpms.Init(p.x); err != nil {
			logger.Debug().Err(err).Msg("DPMS not available")
		} else {
			p.present = true
		}
	}

	return p.present
}

func (p *powerManager) Capable() bool {
	reply, err := dpms.Capable(p.x).Reply()
	if err != nil || reply == nil {
		logger.Debug().Err(err).Msg("Failed to query DPMS capability")
		return false
	}

	return reply.Capable
}

func (p *powerManager) Timeouts() (idle.Timeouts, error) {
	errFactory := errors.New()

	reply, err := dpms.GetTimeouts(p.x).Reply()
	if err != nil {
		return idle.Timeouts{}, errFactory.Wrap(ErrDPMSQuery, err)
	}

	if reply == nil {
		return idle.Timeouts{}, errFactory.New(ErrEmptyReply)
	}

	return idle.Timeouts{
		Standby: reply.StandbyTimeout,
		Suspend: reply.SuspendTimeout,
		Off:     reply.OffTimeout,
	}, nil
}

func (p *powerManager) Info() (idle.PowerLevel, bool, error) {
	errFactory := errors.New()

	reply, err := dpms.Info(p.x).Reply()
	if err != nil {
		return 0, false, errFactory.Wrap(ErrDPMSQuery, err)
	}

	if reply == nil {
		return 0, false, errFactory.New(ErrEmptyReply)
	}

	return powerLevel(reply.PowerLevel), reply.State, nil
}

func powerLevel(level uint16) idle.PowerLevel {
	switch level {
	case dpms.DPMSModeOn:
		return idle.PowerOn
	case dpms.DPMSModeStandby:
		return idle.PowerStandby
	case dpms.DPMSModeSuspend:
		return idle.PowerSuspend
	case dpms.DPMSModeOff:
		return idle.PowerOff
	default:
		return idle.PowerLevel(level)
	}
}

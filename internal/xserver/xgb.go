// Package xserver talks to an X server over the wire protocol and
// implements the connection interfaces of package idle.
package xserver

import (
	"log"

	"codeberg.org/mutker/xprintidle/internal/errors"
	"codeberg.org/mutker/xprintidle/internal/idle"
	"codeberg.org/mutker/xprintidle/internal/logger"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"
)

func init() {
	// xgb reports protocol noise on its own logger; keep it off stderr
	// unless debug logging is on.
	xgb.Logger = log.New(logger.DebugWriter(), "X11: ", log.Lmsgprefix)
}

// Dialer opens X connections with xgb.
type Dialer struct{}

func (Dialer) Open(display string) (idle.Conn, error) {
	x, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("display", display).Msg("Connected to X server")

	return &conn{x: x}, nil
}

type conn struct {
	x  *xgb.Conn
	pm *powerManager
}

func (c *conn) ScreenSaverSupported() bool {
	if err := screensaver.Init(c.x); err != nil {
		logger.Debug().Err(err).Msg("MIT-SCREEN-SAVER not available")
		return false
	}

	return true
}

func (c *conn) Root() (idle.Drawable, error) {
	errFactory := errors.New()

	setup := xproto.Setup(c.x)
	if setup == nil || len(setup.Roots) == 0 {
		return 0, errFactory.New(ErrNoScreen)
	}

	screen := setup.DefaultScreen(c.x)
	if screen == nil {
		return 0, errFactory.New(ErrNoScreen)
	}

	return idle.Drawable(screen.Root), nil
}

func (c *conn) IdleMillis(root idle.Drawable) (uint64, error) {
	errFactory := errors.New()

	reply, err := screensaver.QueryInfo(c.x, xproto.Drawable(root)).Reply()
	if err != nil {
		return 0, errFactory.Wrap(ErrQueryInfo, err)
	}

	if reply == nil {
		return 0, errFactory.New(ErrEmptyReply)
	}

	return uint64(reply.MsSinceUserInput), nil
}

func (c *conn) VendorRelease() uint32 {
	setup := xproto.Setup(c.x)
	if setup == nil {
		return 0
	}

	logger.Debug().
		Str("vendor", setup.Vendor).
		Uint32("release", setup.ReleaseNumber).
		Msg("X server release")

	return setup.ReleaseNumber
}

func (c *conn) PowerManager() idle.PowerManager {
	if c.pm == nil {
		c.pm = &powerManager{x: c.x}
	}

	return c.pm
}

func (c *conn) Close() {
	c.x.Close()
}

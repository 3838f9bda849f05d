package idle

import "io"

type fakePowerManager struct {
	present     bool
	capable     bool
	timeouts    Timeouts
	timeoutsErr error
	level       PowerLevel
	enabled     bool
	infoErr     error
}

func (p *fakePowerManager) Present() bool { return p.present }
func (p *fakePowerManager) Capable() bool { return p.capable }

func (p *fakePowerManager) Timeouts() (Timeouts, error) {
	return p.timeouts, p.timeoutsErr
}

func (p *fakePowerManager) Info() (PowerLevel, bool, error) {
	return p.level, p.enabled, p.infoErr
}

type fakeConn struct {
	screenSaver bool
	rootErr     error
	idle        uint64
	idleErr     error
	release     uint32
	pm          PowerManager
	closed      int
}

func (c *fakeConn) ScreenSaverSupported() bool { return c.screenSaver }

func (c *fakeConn) Root() (Drawable, error) {
	if c.rootErr != nil {
		return 0, c.rootErr
	}
	return 0x1e1, nil
}

func (c *fakeConn) IdleMillis(_ Drawable) (uint64, error) { return c.idle, c.idleErr }
func (c *fakeConn) VendorRelease() uint32                 { return c.release }
func (c *fakeConn) PowerManager() PowerManager            { return c.pm }
func (c *fakeConn) Close()                                { c.closed++ }

type fakeDialer struct {
	conn    *fakeConn
	err     error
	display string
}

func (d *fakeDialer) Open(display string) (Conn, error) {
	d.display = display
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

// standbyPM reports DPMS standby after a 600 second timeout.
func standbyPM() *fakePowerManager {
	return &fakePowerManager{
		present:  true,
		capable:  true,
		timeouts: Timeouts{Standby: 600, Suspend: 600, Off: 600},
		level:    PowerStandby,
		enabled:  true,
	}
}

var errBroken = io.ErrUnexpectedEOF

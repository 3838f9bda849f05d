package idle

import (
	"codeberg.org/mutker/xprintidle/internal/errors"
	"codeberg.org/mutker/xprintidle/internal/logger"
)

// FixedRelease is the first X.Org release whose idle counter survives
// DPMS level transitions. Older releases get the DPMS correction.
const FixedRelease = 12000000

// Query opens display, reads the idle sample and applies the DPMS
// correction when the server release needs it. The connection is closed
// before Query returns on every path.
func Query(dialer Dialer, display string) (Result, error) {
	errFactory := errors.New()

	conn, err := dialer.Open(display)
	if err != nil {
		return Result{}, errFactory.Wrap(errors.ErrConnection, err)
	}
	defer conn.Close()

	if !conn.ScreenSaverSupported() {
		return Result{}, errFactory.New(errors.ErrUnsupported)
	}

	root, err := conn.Root()
	if err != nil {
		return Result{}, errFactory.Wrap(errors.ErrAllocation, err)
	}

	raw, err := conn.IdleMillis(root)
	if err != nil {
		return Result{}, errFactory.Wrap(errors.ErrQuery, err)
	}

	result := Result{
		Raw:           raw,
		Corrected:     raw,
		VendorRelease: conn.VendorRelease(),
	}

	if result.VendorRelease < FixedRelease {
		result.Gated = true
		result.Corrected = Correct(raw, conn.PowerManager())
	}

	logger.Debug().
		Uint64("raw", result.Raw).
		Uint64("corrected", result.Corrected).
		Uint32("vendor_release", result.VendorRelease).
		Bool("gated", result.Gated).
		Msg("Idle time queried")

	return result, nil
}

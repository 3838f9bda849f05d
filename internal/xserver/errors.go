package xserver

import "codeberg.org/mutker/xprintidle/internal/errors"

const (
	ErrNoScreen   = errors.ErrorCode("x_no_screen")
	ErrQueryInfo  = errors.ErrorCode("x_screensaver_query_info_failed")
	ErrDPMSQuery  = errors.ErrorCode("x_dpms_query_failed")
	ErrEmptyReply = errors.ErrorCode("x_empty_reply")
)

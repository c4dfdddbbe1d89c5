package locomotion

import "errors"

var (
	ErrInvalidSettings = errors.New("invalid locomotion settings")
	ErrMissingProber   = errors.New("ground prober is not wired")
	ErrMissingMover    = errors.New("movement primitive is not wired")
	ErrMissingCamera   = errors.New("camera is not wired")
	ErrMissingBody     = errors.New("body position source is not wired")
)

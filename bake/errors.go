package bake

import (
	"errors"
)

// ErrInvalidRange reports a bake range whose end frame precedes its start
// frame or whose playback rate is not positive. A configuration error: the
// export does not proceed.
var ErrInvalidRange = errors.New("bake: invalid bake range")

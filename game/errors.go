package game

import "errors"

// ErrIllegalMove is returned when a requested placement or slide violates
// the rules: wrong phase, wrong player, unreachable destination, or a
// blocked path.
var ErrIllegalMove = errors.New("illegal move")

// ErrOutOfRange is returned when a cell or player index is outside the
// board or player count.
var ErrOutOfRange = errors.New("out of range")

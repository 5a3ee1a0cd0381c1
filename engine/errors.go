package engine

import (
	"github.com/jthemphill/htmf/game"
)

// ErrIllegalMove and ErrOutOfRange are re-exported from game so callers of
// this package don't need to import it themselves to check errors.
var (
	ErrIllegalMove = game.ErrIllegalMove
	ErrOutOfRange  = game.ErrOutOfRange
)

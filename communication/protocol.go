// Package communication defines the wire records exchanged between a
// host shell and the engine it drives, and an HTTP transport for them.
// It plays the same role the original server's protocol.rs module did:
// convert requests into engine calls, and engine state back into JSON,
// without the engine itself knowing anything about transport.
package communication

import (
	"github.com/jthemphill/htmf/board"
	"github.com/jthemphill/htmf/engine"
)

// Request is the symmetric envelope a client sends in. Type selects
// which of getGameState / getPossibleMoves / movePenguin it represents;
// Src is omitted (nil) for a draft placement or when it doesn't apply.
type Request struct {
	Type string `json:"type"`
	Src  *int   `json:"src,omitempty"`
	Dst  int    `json:"dst"`
}

const (
	RequestGetGameState     = "getGameState"
	RequestGetPossibleMoves = "getPossibleMoves"
	RequestMovePenguin      = "movePenguin"
)

// MoveScore is one root child's search statistics, keyed by the move
// that produced it.
type MoveScore struct {
	Src     *int    `json:"src,omitempty"`
	Dst     int     `json:"dst"`
	Visits  int     `json:"visits"`
	Rewards float64 `json:"rewards"`
}

// PlayerMoveScores groups every explored root move under the player
// whose turn it is.
type PlayerMoveScores struct {
	Player     int         `json:"player"`
	MoveScores []MoveScore `json:"moveScores"`
}

// BoardView is the client-facing rendering of the board: fish counts,
// penguin positions, and claimed territory, all indexed by player.
type BoardView struct {
	Fish     []int8  `json:"fish"`
	Penguins [][]int `json:"penguins"`
	Claimed  [][]int `json:"claimed"`
}

// GameStateView is the client-facing rendering of a whole game in
// progress.
type GameStateView struct {
	Board        BoardView `json:"board"`
	Scores       []int     `json:"scores"`
	ActivePlayer *int      `json:"activePlayer"`
	Turn         int       `json:"turn"`
	Drafting     bool      `json:"drafting"`
	GameOver     bool      `json:"gameOver"`
}

// GameStateResponse answers getGameState and movePenguin requests.
type GameStateResponse struct {
	Type               string        `json:"type"`
	State              GameStateView `json:"state"`
	PossibleMoves      []int         `json:"possibleMoves"`
	LastMoveWasIllegal bool          `json:"lastMoveWasIllegal"`
}

// ThinkingProgressResponse reports how much search work backs the
// current position, for a shell rendering a ponder indicator.
type ThinkingProgressResponse struct {
	Type             string           `json:"type"`
	Visits           int              `json:"visits"`
	Required         int              `json:"required"`
	TotalPlayouts    int              `json:"totalPlayouts"`
	TotalTimeMs      int64            `json:"totalTimeMs"`
	TreeSize         int              `json:"treeSize"`
	PlayerMoveScores PlayerMoveScores `json:"playerMoveScores"`
}

// newGameStateView reads e's current position into the client-facing
// shape. It never returns an error: every field it reads is already
// known to be in range.
func newGameStateView(e *engine.Engine) GameStateView {
	fish := make([]int8, board.NumCells)
	for c := 0; c < board.NumCells; c++ {
		n, _ := e.NumFish(board.Cell(c))
		fish[c] = n
	}

	penguins := make([][]int, 0, 2)
	claimed := make([][]int, 0, 2)
	for player := 0; player < 2; player++ {
		p, _ := e.Penguins(player)
		c, _ := e.Claimed(player)
		penguins = append(penguins, p)
		claimed = append(claimed, c)
	}

	scores := make([]int, 0, 2)
	for player := 0; player < 2; player++ {
		s, _ := e.Score(player)
		scores = append(scores, s)
	}

	var active *int
	if p, ok := e.ActivePlayer(); ok {
		active = &p
	}

	return GameStateView{
		Board:        BoardView{Fish: fish, Penguins: penguins, Claimed: claimed},
		Scores:       scores,
		ActivePlayer: active,
		Turn:         e.Turn(),
		Drafting:     e.IsDrafting(),
		GameOver:     e.GameOver(),
	}
}

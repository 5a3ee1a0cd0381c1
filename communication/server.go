package communication

import (
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jthemphill/htmf/board"
	"github.com/jthemphill/htmf/config"
	"github.com/jthemphill/htmf/engine"
	"github.com/jthemphill/htmf/game"
	"github.com/jthemphill/htmf/searcher"
)

// session is one game in progress behind a gin route, guarded against
// concurrent requests from the same client.
type session struct {
	mu                 sync.Mutex
	engine             *engine.Engine
	lastMoveWasIllegal bool
}

// Server hosts any number of concurrent games behind a small HTTP API,
// each keyed by a session id handed back at creation time.
type Server struct {
	search config.Search

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewServer builds a Server that seeds every new game's searcher with
// search's tunables.
func NewServer(search config.Search) *Server {
	return &Server{
		search:   search,
		sessions: make(map[string]*session),
	}
}

// Router builds the gin engine backing this server, with every route
// registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.POST("/games", s.createGame)
	r.GET("/games/:id", s.getGameState)
	r.POST("/games/:id/possibleMoves", s.getPossibleMoves)
	r.POST("/games/:id/move", s.movePenguin)
	r.POST("/games/:id/ponder", s.ponder)
	r.POST("/games/:id/takeAction", s.takeAction)
	return r
}

func (s *Server) createGame(c *gin.Context) {
	var body struct {
		Seed *uint64 `json:"seed"`
	}
	_ = c.ShouldBindJSON(&body)

	seed := uint64(rand.Int63())
	if body.Seed != nil {
		seed = *body.Seed
	}

	id := uuid.New().String()
	sess := &session{engine: engine.New(seed)}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	log.Info().Str("game", id).Uint64("seed", seed).Msg("created game")

	c.JSON(http.StatusOK, gin.H{
		"id":        id,
		"gameState": s.stateResponse(sess, nil, false),
	})
}

func (s *Server) lookup(c *gin.Context) *session {
	s.mu.RLock()
	sess := s.sessions[c.Param("id")]
	s.mu.RUnlock()
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such game"})
	}
	return sess
}

func (s *Server) getGameState(c *gin.Context) {
	sess := s.lookup(c)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	c.JSON(http.StatusOK, s.stateResponse(sess, nil, sess.lastMoveWasIllegal))
}

func (s *Server) getPossibleMoves(c *gin.Context) {
	sess := s.lookup(c)
	if sess == nil {
		return
	}
	var body struct {
		Src *int `json:"src"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Src == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "src is required"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	moves, err := sess.engine.PossibleMoves(board.Cell(*body.Src))
	if err != nil {
		c.JSON(http.StatusOK, s.stateResponse(sess, nil, true))
		return
	}
	c.JSON(http.StatusOK, s.stateResponse(sess, moves, sess.lastMoveWasIllegal))
}

func (s *Server) movePenguin(c *gin.Context) {
	sess := s.lookup(c)
	if sess == nil {
		return
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	var err error
	if req.Src == nil {
		err = sess.engine.PlacePenguin(board.Cell(req.Dst))
	} else {
		err = sess.engine.MovePenguin(board.Cell(*req.Src), board.Cell(req.Dst))
	}
	sess.lastMoveWasIllegal = err != nil

	c.JSON(http.StatusOK, s.stateResponse(sess, nil, sess.lastMoveWasIllegal))
}

func (s *Server) ponder(c *gin.Context) {
	sess := s.lookup(c)
	if sess == nil {
		return
	}
	var body struct {
		N int `json:"n"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.N <= 0 {
		body.N = s.search.PlayoutChunk
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	start := time.Now()
	sess.engine.PlayoutNTimes(body.N)

	c.JSON(http.StatusOK, s.thinkingProgress(sess, time.Since(start)))
}

func (s *Server) takeAction(c *gin.Context) {
	sess := s.lookup(c)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.engine.TakeAction(); err != nil {
		c.JSON(http.StatusOK, s.stateResponse(sess, nil, true))
		return
	}
	c.JSON(http.StatusOK, s.stateResponse(sess, nil, false))
}

func (s *Server) stateResponse(sess *session, possibleMoves []int, lastMoveWasIllegal bool) GameStateResponse {
	if possibleMoves == nil {
		possibleMoves = []int{}
	}
	return GameStateResponse{
		Type:               "gameState",
		State:              newGameStateView(sess.engine),
		PossibleMoves:      possibleMoves,
		LastMoveWasIllegal: lastMoveWasIllegal,
	}
}

func (s *Server) thinkingProgress(sess *session, elapsed time.Duration) ThinkingProgressResponse {
	player, ok := sess.engine.ActivePlayer()
	if !ok {
		player = 0
	}

	stats := sess.engine.ChildStats()
	scores := make([]MoveScore, 0, len(stats))
	for move, st := range stats {
		scores = append(scores, moveScoreFrom(move, st))
	}
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].Dst < scores[j].Dst || (scores[i].Dst == scores[j].Dst && srcLess(scores[i].Src, scores[j].Src))
	})

	return ThinkingProgressResponse{
		Type:          "thinkingProgress",
		Visits:        sess.engine.Visits(),
		Required:      s.search.Episodes,
		TotalPlayouts: sess.engine.TotalPlayouts(),
		TotalTimeMs:   elapsed.Milliseconds(),
		TreeSize:      sess.engine.TreeSize(),
		PlayerMoveScores: PlayerMoveScores{
			Player:     player,
			MoveScores: scores,
		},
	}
}

func moveScoreFrom(m game.Move, st searcher.Stats) MoveScore {
	score := MoveScore{Dst: int(m.Dst), Visits: st.Visits, Rewards: st.Rewards}
	if !m.IsPlacement() {
		src := int(m.Src)
		score.Src = &src
	}
	return score
}

// srcLess orders a nil src (a draft placement) before any slide, then by
// cell, so thinking-progress output is deterministic across calls.
func srcLess(a, b *int) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return *a < *b
}

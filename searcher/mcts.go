// Package searcher implements Monte Carlo tree search over game states:
// UCB1 selection, lazy expansion, and a persistent tree that can be
// reparented onto a child once a move is committed instead of being
// rebuilt from scratch.
package searcher

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/jthemphill/htmf/game"
	"github.com/jthemphill/htmf/metrics"
	"github.com/jthemphill/htmf/playout"
)

// Option configures an MCTS searcher.
type Option func(*MCTS)

// WithGoroutines sets how many workers run simulations concurrently.
func WithGoroutines(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.goroutines = n
		}
	}
}

// WithEpisodes caps a Search call at a fixed number of simulations,
// split across the worker pool.
func WithEpisodes(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.episodes = n
		}
	}
}

// WithDuration caps a Search call at a wall-clock budget instead of a
// fixed episode count.
func WithDuration(d time.Duration) Option {
	return func(m *MCTS) {
		if d > 0 {
			m.duration = d
		}
	}
}

// WithMetrics attaches a collector that observes every simulation run.
func WithMetrics(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

// WithSeed fixes the RNG behind PlayoutOnce/PlayoutNTimes, the single-
// threaded step API. It has no effect on Search's worker pool, which
// seeds each goroutine independently.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// MCTS owns a persistent search tree over a sequence of game states.
type MCTS struct {
	mu sync.Mutex

	goroutines int
	episodes   int
	duration   time.Duration
	metrics    metrics.Collector
	rng        *rand.Rand

	totalPlayouts int

	root *node
}

// New builds a searcher rooted at state. By default it runs a single
// goroutine for 1000 episodes per Search call.
func New(state game.State, options ...Option) *MCTS {
	m := &MCTS{
		goroutines: DefaultGoroutines,
		episodes:   1000,
		metrics:    metrics.NewNoopCollector(),
		rng:        rand.New(rand.NewSource(1)),
		root:       newNode(nil, state, game.NoPlayer),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Reset discards the tree and starts fresh from state.
func (m *MCTS) Reset(state game.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root = newNode(nil, state, game.NoPlayer)
	m.totalPlayouts = 0
}

// Advance commits mv: if it was already explored, that child becomes the
// new root and the rest of the tree is kept; otherwise the tree is reset
// to fresh, rooted at next.
func (m *MCTS) Advance(mv game.Move, next game.State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, candidate := range m.root.moves {
		if candidate == mv && i < len(m.root.children) {
			child := m.root.children[i]
			child.parent = nil
			m.root = child
			return
		}
	}
	m.root = newNode(nil, next, game.NoPlayer)
}

// Visits returns the root's total simulation count.
func (m *MCTS) Visits() int {
	m.mu.Lock()
	root := m.root
	m.mu.Unlock()
	return root.Visits()
}

// TreeSize returns how many nodes the tree currently holds.
func (m *MCTS) TreeSize() int {
	m.mu.Lock()
	root := m.root
	m.mu.Unlock()
	return root.Size()
}

// ChildVisits reports the visit count of every move explored from the
// root, the raw material behind a move-score display.
func (m *MCTS) ChildVisits() map[game.Move]int {
	m.mu.Lock()
	root := m.root
	m.mu.Unlock()
	return root.ChildVisits()
}

// ChildStats reports the visits and accumulated reward of every move
// explored from the root, keyed by move.
func (m *MCTS) ChildStats() map[game.Move]Stats {
	m.mu.Lock()
	root := m.root
	m.mu.Unlock()
	return root.ChildStats()
}

// BestMove returns the most-visited move from the root.
func (m *MCTS) BestMove() (game.Move, bool) {
	m.mu.Lock()
	root := m.root
	m.mu.Unlock()
	return root.BestMove()
}

// TotalPlayouts reports how many simulations have run since the game
// started, across every reparenting Advance has done.
func (m *MCTS) TotalPlayouts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalPlayouts
}

// PlayoutOnce runs a single simulation synchronously on the calling
// goroutine. This is the default, single-threaded cooperative mode: the
// host schedules search by calling this (or PlayoutNTimes) repeatedly
// and interleaving it with its own event loop, rather than the engine
// running any background workers of its own.
func (m *MCTS) PlayoutOnce() {
	m.mu.Lock()
	rng := m.rng
	m.mu.Unlock()

	m.simulate(rng)
}

// PlayoutNTimes runs n simulations synchronously, in a single chunk.
func (m *MCTS) PlayoutNTimes(n int) {
	for i := 0; i < n; i++ {
		m.PlayoutOnce()
	}
}

// Search runs simulations until episodes or duration (whichever the
// searcher was configured with) is spent, or ctx is canceled first.
func (m *MCTS) Search(ctx context.Context) {
	m.metrics.Start(m.goroutines)
	defer m.metrics.Complete()

	if m.duration > 0 {
		m.countdown(ctx)
		return
	}
	m.iterate(ctx)
}

func (m *MCTS) iterate(ctx context.Context) {
	tasks := make(chan struct{}, m.episodes)
	for i := 0; i < m.episodes; i++ {
		tasks <- struct{}{}
	}
	close(tasks)

	var wg sync.WaitGroup
	for g := 0; g < m.goroutines; g++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for range tasks {
				select {
				case <-ctx.Done():
					return
				default:
				}
				m.simulate(rng)
				m.metrics.AddEpisode()
			}
		}(uint64(g + 1))
	}
	wg.Wait()
}

func (m *MCTS) countdown(ctx context.Context) {
	deadline := time.After(m.duration)
	var wg sync.WaitGroup
	for g := 0; g < m.goroutines; g++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-ctx.Done():
					return
				case <-deadline:
					return
				default:
					m.simulate(rng)
					m.metrics.AddEpisode()
				}
			}
		}(uint64(g + 1))
	}
	wg.Wait()
}

// simulate runs one selection-expansion-rollout-backup cycle from the
// root.
func (m *MCTS) simulate(rng *rand.Rand) {
	m.mu.Lock()
	root := m.root
	m.totalPlayouts++
	m.mu.Unlock()

	root.applyVirtualLoss()

	if root.terminal() {
		// Nothing left to explore; the visit is still counted above so
		// Visits() reflects the work actually requested.
		return
	}

	path := []*node{root}
	cur := root
	for !cur.terminal() {
		child, expanded := cur.selectOrExpand()
		path = append(path, child)
		cur = child
		if expanded {
			break
		}
	}

	final := playout.Rollout(cur.state, rng)

	for _, n := range path {
		if n.mover == game.NoPlayer {
			continue // the root itself was never reached by a move
		}
		reward := playout.Reward(final, n.mover)
		n.backup(reward)
	}
}

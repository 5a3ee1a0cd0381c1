package searcher

import (
	"math"
	"sort"
	"sync"

	"github.com/jthemphill/htmf/game"
)

// node is one point in the search tree: the state reached by a sequence
// of moves from the root, the untried moves still available from it, and
// the statistics gathered by every simulation that has passed through it.
// Every field but parent is guarded by mu so concurrent workers can share
// a tree.
type node struct {
	mu sync.RWMutex

	parent   *node
	state    game.State
	mover    int // player whose move produced this node; game.NoPlayer only at the tree root
	moves    []game.Move
	children []*node
	rewards  float64
	visits   int
}

func newNode(parent *node, state game.State, mover int) *node {
	moves := state.LegalActions()
	sort.Slice(moves, func(i, j int) bool { return moves[i].Less(moves[j]) })

	return &node{
		parent:   parent,
		state:    state,
		mover:    mover,
		moves:    moves,
		children: make([]*node, 0, len(moves)),
	}
}

func (n *node) terminal() bool {
	return len(n.moves) == 0
}

// selectOrExpand either adds the next untried child (expanded == true) or
// descends to the best-scoring existing child via UCB1. It applies a
// virtual loss to whichever child it returns, so a second concurrent
// caller is steered away from the same branch until the first finishes.
func (n *node) selectOrExpand() (child *node, expanded bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.terminal() {
		return n, false
	}

	if len(n.children) < len(n.moves) {
		move := n.moves[len(n.children)]
		mover, _ := n.state.ActivePlayer() // n is non-terminal, so this always succeeds
		next, err := n.state.Apply(move)
		if err != nil {
			panic(err)
		}
		child = newNode(n, next, mover)
		n.children = append(n.children, child)
		child.applyVirtualLoss()
		return child, true
	}

	idx := n.pickChildLocked()
	child = n.children[idx]
	child.applyVirtualLoss()
	return child, false
}

// pickChildLocked returns the index of the child with the highest UCB1
// score. Caller must hold n.mu.
func (n *node) pickChildLocked() int {
	if n.visits == 0 {
		panic("cannot pick among children of an unvisited node")
	}
	normalizer := ExplorationSquared * math.Log(float64(n.visits))

	best := -1
	bestScore := math.Inf(-1)
	for i, child := range n.children {
		score := child.ucb1(normalizer)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

func (n *node) ucb1(normalizer float64) float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.visits == 0 {
		return math.Inf(1)
	}
	return n.rewards/float64(n.visits) + math.Sqrt(normalizer/float64(n.visits))
}

// applyVirtualLoss records a provisional visit with a losing reward
// before a simulation has actually run, so sibling workers don't pile
// onto the same branch. backup reverses exactly this much of it.
func (n *node) applyVirtualLoss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visits++
	n.rewards += Loss
}

// backup folds in the real reward now that a rollout reached a
// conclusion, undoing the provisional Loss applied at selection time.
func (n *node) backup(reward float64) {
	n.mu.Lock()
	n.rewards += reward - Loss
	n.mu.Unlock()
}

// Visits reports how many simulations have passed through this node.
func (n *node) Visits() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.visits
}

// ChildVisits reports the visit count for every explored child, keyed by
// the move that produced it.
func (n *node) ChildVisits() map[game.Move]int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	visits := make(map[game.Move]int, len(n.children))
	for i, child := range n.children {
		visits[n.moves[i]] = child.Visits()
	}
	return visits
}

// Stats is a snapshot of a node's accumulated search statistics.
type Stats struct {
	Visits  int
	Rewards float64
}

// Stats returns this node's current visit count and accumulated reward.
func (n *node) Stats() Stats {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return Stats{Visits: n.visits, Rewards: n.rewards}
}

// ChildStats reports the full statistics of every explored child, keyed
// by the move that produced it.
func (n *node) ChildStats() map[game.Move]Stats {
	n.mu.RLock()
	defer n.mu.RUnlock()

	stats := make(map[game.Move]Stats, len(n.children))
	for i, child := range n.children {
		stats[n.moves[i]] = child.Stats()
	}
	return stats
}

// BestMove returns the move with the most visits, the standard way to
// pick a final action once search time is spent. Ties break first by
// highest mean reward, then by the move's natural order, so the choice
// is always deterministic.
func (n *node) BestMove() (game.Move, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if len(n.children) == 0 {
		return game.Move{}, false
	}

	best := 0
	bestStats := n.children[0].Stats()
	for i := 1; i < len(n.children); i++ {
		stats := n.children[i].Stats()
		better := stats.Visits > bestStats.Visits ||
			(stats.Visits == bestStats.Visits && stats.mean() > bestStats.mean()) ||
			(stats.Visits == bestStats.Visits && stats.mean() == bestStats.mean() && n.moves[i].Less(n.moves[best]))
		if better {
			bestStats = stats
			best = i
		}
	}
	return n.moves[best], true
}

// mean reports the average reward per visit, or 0 for an unvisited node.
func (s Stats) mean() float64 {
	if s.Visits == 0 {
		return 0
	}
	return s.Rewards / float64(s.Visits)
}

// Size counts this node and every descendant, for reporting how much of
// the tree search has built.
func (n *node) Size() int {
	n.mu.RLock()
	children := append([]*node(nil), n.children...)
	n.mu.RUnlock()

	size := 1
	for _, child := range children {
		size += child.Size()
	}
	return size
}

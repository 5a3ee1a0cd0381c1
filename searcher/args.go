package searcher

// Hyperparameters for the search tree.
const (
	// ExplorationSquared is c^2 in the UCB1 formula: q/n + sqrt(c^2*ln(N)/n).
	ExplorationSquared = 2.0

	// Win, Draw, and Loss are the canonical terminal rewards backed up
	// the tree. Virtual loss borrows the Loss value as a placeholder so
	// concurrent workers descending the same branch see it as
	// temporarily worse than it is.
	Win  = 1.0
	Draw = 0.5
	Loss = 0.0
)

// DefaultGoroutines is how many workers search uses when the caller
// doesn't specify a count.
const DefaultGoroutines = 1

package i

import "context"

// Score is one member of a ranked set.
type Score struct {
	Member string
	Score  float64
}

// Leaderboard ranks members by an accumulated score.
type Leaderboard interface {
	Increment(ctx context.Context, member string, by float64) error
	Top(ctx context.Context, n int64) ([]Score, error)
}

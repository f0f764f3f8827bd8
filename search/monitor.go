package search

import (
	"github.com/civiclens/civiclens/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterFilter(candidates int)
	ScoredHit(hit core.ScoredDocument)
	Finish(results []core.ScoredDocument)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                    {}
func (n *noopMonitor) AfterFilter(_ int)                 {}
func (n *noopMonitor) ScoredHit(_ core.ScoredDocument)   {}
func (n *noopMonitor) Finish(_ []core.ScoredDocument)    {}

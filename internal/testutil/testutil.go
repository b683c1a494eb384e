package testutil

import (
	"context"

	"github.com/vk/passdb/internal/pass"
)

// Journal records the order in which passes were applied across a schedule
// run. Several passes can share one journal.
type Journal struct {
	Entries []string
}

// RecordingPass is a scriptable pass for registry and scheduler tests. Each
// application consumes the next element of Changes as its rewrite count;
// once exhausted it reports zero changes, or keeps repeating the last
// element when Loop is set.
type RecordingPass struct {
	name    string
	Applied int
	Changes []int
	Loop    bool
	Err     error
	Journal *Journal
}

// NewPass returns a pass scripted with the given per-application rewrite
// counts.
func NewPass(changes ...int) *RecordingPass {
	return &RecordingPass{Changes: changes}
}

// Name returns the registered name.
func (p *RecordingPass) Name() string { return p.name }

// SetName assigns the registered name.
func (p *RecordingPass) SetName(name string) { p.name = name }

// Apply records the application and returns the scripted rewrite count.
func (p *RecordingPass) Apply(ctx context.Context, g pass.Graph) (int, error) {
	p.Applied++
	if p.Journal != nil {
		p.Journal.Entries = append(p.Journal.Entries, p.name)
	}
	if p.Err != nil {
		return 0, p.Err
	}
	idx := p.Applied - 1
	if idx >= len(p.Changes) {
		if p.Loop && len(p.Changes) > 0 {
			idx = len(p.Changes) - 1
		} else {
			return 0, nil
		}
	}
	return p.Changes[idx], nil
}

// Graph is a fixed-size stub satisfying pass.Graph.
type Graph struct {
	Nodes int
}

// NodeCount returns the fixed node count.
func (g *Graph) NodeCount() int { return g.Nodes }

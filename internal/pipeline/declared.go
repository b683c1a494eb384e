package pipeline

import (
	"context"

	"github.com/vk/passdb/internal/pass"
)

// DeclaredPass is the registry-side stand-in for a pass declared in a
// pipeline file. The rewriting engine binds the actual rewrite behavior at
// runtime; until then a declared pass applies as a no-op, which is enough
// for schedule inspection and planning.
type DeclaredPass struct {
	name string
	kind string
}

// NewDeclaredPass returns a declared pass of the given rewrite kind.
func NewDeclaredPass(kind string) *DeclaredPass {
	return &DeclaredPass{kind: kind}
}

// Name returns the registered name.
func (p *DeclaredPass) Name() string { return p.name }

// SetName assigns the registered name.
func (p *DeclaredPass) SetName(name string) { p.name = name }

// Kind returns the declared rewrite family.
func (p *DeclaredPass) Kind() string { return p.kind }

// Apply performs no rewrites until an implementation is bound.
func (p *DeclaredPass) Apply(ctx context.Context, g pass.Graph) (int, error) {
	return 0, nil
}

package registry

import (
	"context"

	"github.com/vk/passdb/internal/pass"
)

// ProxyRegistry is a zero-storage alias over another scheduling registry.
// The same pass object cannot be registered under two names, so composing
// one pass set into a second slot goes through a proxy: the proxy carries
// its own name while every query forwards untouched to the target.
type ProxyRegistry struct {
	name   string
	target Scheduling
}

// NewProxy wraps target. The proxy's own name is assigned when it is
// registered somewhere.
func NewProxy(target Scheduling) *ProxyRegistry {
	return &ProxyRegistry{target: target}
}

// Name returns the proxy's own name, not the target's.
func (p *ProxyRegistry) Name() string { return p.name }

// SetName assigns the proxy's own name; the target keeps its name.
func (p *ProxyRegistry) SetName(name string) { p.name = name }

// Query forwards to the wrapped registry unchanged.
func (p *ProxyRegistry) Query(ctx context.Context, selectors ...any) (pass.Pass, error) {
	return p.target.Query(ctx, selectors...)
}

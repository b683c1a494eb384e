package registry

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/passdb/internal/ctxlog"
	"github.com/vk/passdb/internal/orderedset"
	"github.com/vk/passdb/internal/pass"
)

// Scheduling is a registry whose Query wraps resolution into a runnable
// scheduler pass. Equilibrium, sequence, local-group and proxy registries
// satisfy it; the base Registry does not, so only scheduling registries can
// be nested inside another registry.
type Scheduling interface {
	Name() string
	SetName(name string)
	Query(ctx context.Context, selectors ...any) (pass.Pass, error)
}

// entry is the tagged variant stored in the arena: exactly one of leaf or
// nested is non-nil, decided once at registration time.
type entry struct {
	id     uint64
	name   string
	kind   string
	leaf   pass.Pass
	nested Scheduling
}

// objName reads the registered object's current name.
func (e *entry) objName() string {
	if e.leaf != nil {
		return e.leaf.Name()
	}
	return e.nested.Name()
}

// setObjName assigns the registered object's name.
func (e *entry) setObjName(name string) {
	if e.leaf != nil {
		e.leaf.SetName(name)
		return
	}
	e.nested.SetName(name)
}

// Registry is the base pass registry: an arena of entries indexed by stable
// handles, with insertion-ordered buckets mapping names and tags to handle
// sets. Buckets hold handles rather than object copies, so a pass reachable
// through many tags stays a single logical entity.
type Registry struct {
	name      string
	arena     map[uint64]*entry
	buckets   map[string]*orderedset.Set[uint64]
	names     map[string]struct{}
	nameOrder []string
}

// New creates an empty registry. The name doubles as the implicit tag added
// to registrations unless suppressed; pass "" for an anonymous registry.
func New(name string) *Registry {
	return &Registry{
		name:    name,
		arena:   make(map[uint64]*entry),
		buckets: make(map[string]*orderedset.Set[uint64]),
		names:   make(map[string]struct{}),
	}
}

// Name returns the registry's name, or "".
func (r *Registry) Name() string { return r.name }

// SetName assigns the registry's name. Called by an enclosing registry when
// this registry is nested into it.
func (r *Registry) SetName(name string) { r.name = name }

// registerConfig collects per-registration options.
type registerConfig struct {
	registryNameTag bool
	final           bool
}

// RegisterOption adjusts a single registration.
type RegisterOption func(*registerConfig)

// defaultRegisterConfig returns the option defaults: the containing
// registry's name is added as a tag, and the pass is not final.
func defaultRegisterConfig() registerConfig {
	return registerConfig{registryNameTag: true}
}

// WithoutRegistryTag suppresses the implicit tag carrying the containing
// registry's name, so the pass is selectable only by its own name and the
// tags given explicitly.
func WithoutRegistryTag() RegisterOption {
	return func(c *registerConfig) { c.registryNameTag = false }
}

// AsFinal marks the pass as final in an EquilibriumRegistry: it runs exactly
// once after the ordinary passes reach a fixpoint. Other registry kinds
// ignore it.
func AsFinal() RegisterOption {
	return func(c *registerConfig) { c.final = true }
}

// Register stores obj under a unique name plus the given tags. obj must be a
// pass.Pass or a Scheduling registry; its name is assigned here, exactly
// once. The object is additionally tagged with its concrete type name and,
// unless suppressed, with this registry's name.
func (r *Registry) Register(name string, obj any, tags []string, opts ...RegisterOption) error {
	cfg := defaultRegisterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &entry{name: name, kind: kindName(obj)}
	switch v := obj.(type) {
	case pass.Pass:
		e.leaf = v
	case Scheduling:
		e.nested = v
	default:
		return fmt.Errorf("%w: %T is neither a pass nor a scheduling registry", ErrInvalidPassType, obj)
	}

	if r.hasEntries(name) {
		return fmt.Errorf("%w: %q is already a registered name or tag", ErrDuplicateName, name)
	}
	if prev := e.objName(); prev != "" && prev != name && r.hasEntries(prev) {
		return fmt.Errorf("%w: %q is already registered as %q; use a ProxyRegistry to reference it twice",
			ErrDuplicateName, name, prev)
	}
	e.setObjName(name)

	e.id = pass.NextID()
	r.arena[e.id] = e
	r.bucket(name).Add(e.id)
	r.names[name] = struct{}{}
	r.nameOrder = append(r.nameOrder, name)
	r.bucket(e.kind).Add(e.id)

	if cfg.registryNameTag && r.name != "" {
		tags = append(append([]string(nil), tags...), r.name)
	}
	return r.AddTags(name, tags...)
}

// AddTags makes the pass registered under name reachable through each tag.
// Adding a tag the pass already carries is a no-op.
func (r *Registry) AddTags(name string, tags ...string) error {
	e, err := r.one(name)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		if _, ok := r.names[tag]; ok {
			return fmt.Errorf("%w: %q", ErrTagNameCollision, tag)
		}
		r.bucket(tag).Add(e.id)
	}
	return nil
}

// RemoveTags removes the pass registered under name from each tag's bucket.
// Removing a tag the pass does not carry is a no-op.
func (r *Registry) RemoveTags(name string, tags ...string) error {
	e, err := r.one(name)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		if _, ok := r.names[tag]; ok {
			return fmt.Errorf("%w: %q", ErrTagNameCollision, tag)
		}
		if b, ok := r.buckets[tag]; ok {
			b.Remove(e.id)
		}
	}
	return nil
}

// Lookup returns the single object registered under name: a pass.Pass for a
// leaf registration or a Scheduling registry for a nested one.
func (r *Registry) Lookup(name string) (any, error) {
	e, err := r.one(name)
	if err != nil {
		return nil, err
	}
	if e.leaf != nil {
		return e.leaf, nil
	}
	return e.nested, nil
}

// Resolve turns a query into the ordered pass set it selects. Include tags
// union, require tags intersect, exclude tags subtract, all preserving
// bucket insertion order. Selected nested registries are then expanded
// in place: each is resolved against the enclosing query, an Override
// query, or dropped under a Skip rule, and the resulting scheduler inherits
// the registry's registration name.
func (r *Registry) Resolve(ctx context.Context, q *Query) ([]pass.Pass, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: query must not be nil", ErrArgumentConflict)
	}

	selected := orderedset.New[uint64]()
	for _, tag := range q.Include() {
		if b, ok := r.buckets[tag]; ok {
			selected.Update(b)
		}
	}
	for _, tag := range q.Require() {
		selected.IntersectWith(r.buckets[tag])
	}
	for _, tag := range q.Exclude() {
		selected.DifferenceWith(r.buckets[tag])
	}

	out := make([]pass.Pass, 0, selected.Len())
	for _, id := range selected.Items() {
		e := r.arena[id]
		if e.nested == nil {
			out = append(out, e.leaf)
			continue
		}
		sub := q
		if rule, ok := q.subqueryRule(e.name); ok {
			switch rule.kind {
			case skipRule:
				continue
			case overrideRule:
				sub = rule.query
			case inheritRule:
				// enclosing query unchanged
			}
		}
		sched, err := e.nested.Query(ctx, sub)
		if err != nil {
			return nil, fmt.Errorf("expanding nested registry %q: %w", e.name, err)
		}
		sched.SetName(e.name)
		out = append(out, sched)
	}

	ctxlog.FromContext(ctx).Debug("Query resolved.",
		"registry", r.name, "include", q.Include(), "require", q.Require(),
		"exclude", q.Exclude(), "selected", len(out))
	return out, nil
}

// Query resolves selectors into the ordered pass set they select. Selectors
// are either prefixed tag strings ('+' include, '&' require, '-' exclude)
// optionally followed by subquery rule maps, or a single *Query value with
// nothing else.
func (r *Registry) Query(ctx context.Context, selectors ...any) ([]pass.Pass, error) {
	q, err := parseSelectors(selectors)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, q)
}

// ParseTags builds a Query from prefixed tag strings alone. It is the
// string-only form of the selector syntax accepted by Query.
func ParseTags(tags ...string) (*Query, error) {
	selectors := make([]any, len(tags))
	for i, tag := range tags {
		selectors[i] = tag
	}
	return parseSelectors(selectors)
}

// parseSelectors converts the dynamic selector list shared by every Query
// method into a single Query value.
func parseSelectors(selectors []any) (*Query, error) {
	if len(selectors) > 0 {
		if q, ok := selectors[0].(*Query); ok {
			if len(selectors) > 1 {
				return nil, fmt.Errorf("%w: a Query must be the sole selector", ErrArgumentConflict)
			}
			return q, nil
		}
	}
	q := NewQuery()
	for _, sel := range selectors {
		switch v := sel.(type) {
		case string:
			if len(v) < 2 {
				return nil, fmt.Errorf("%w: tag %q must be '+', '&' or '-' followed by a tag", ErrInvalidTagSyntax, v)
			}
			switch v[0] {
			case '+':
				q.include.Add(v[1:])
			case '&':
				q.require.Add(v[1:])
			case '-':
				q.exclude.Add(v[1:])
			default:
				return nil, fmt.Errorf("%w: tag %q must start with '+', '&' or '-'", ErrInvalidTagSyntax, v)
			}
		case map[string]SubqueryRule:
			for name, rule := range v {
				q.subquery[name] = rule
			}
		case *Query:
			return nil, fmt.Errorf("%w: a Query must be the sole selector", ErrArgumentConflict)
		default:
			return nil, fmt.Errorf("%w: unsupported selector %T", ErrInvalidTagSyntax, sel)
		}
	}
	return q, nil
}

// one returns the sole entry registered under name.
func (r *Registry) one(name string) (*entry, error) {
	b, ok := r.buckets[name]
	if !ok || b.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing registered under %q", ErrNotFound, name)
	}
	if b.Len() > 1 {
		return nil, fmt.Errorf("%w: %q matches %d passes, use Query instead", ErrAmbiguousSelector, name, b.Len())
	}
	return r.arena[b.Items()[0]], nil
}

// bucket returns the handle set for key, creating it if needed.
func (r *Registry) bucket(key string) *orderedset.Set[uint64] {
	b, ok := r.buckets[key]
	if !ok {
		b = orderedset.New[uint64]()
		r.buckets[key] = b
	}
	return b
}

// hasEntries reports whether key exists as a bucket with at least one entry.
func (r *Registry) hasEntries(key string) bool {
	b, ok := r.buckets[key]
	return ok && b.Len() > 0
}

// kindName returns the concrete type name used as the automatic kind tag.
func kindName(obj any) string {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

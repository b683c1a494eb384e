package registry

import (
	"github.com/vk/passdb/internal/orderedset"
)

// subqueryKind discriminates the three behaviors a subquery entry can select
// for a nested registry during resolution.
type subqueryKind int

const (
	// inheritRule resolves the nested registry against the enclosing query
	// unchanged. This is also the behavior when no entry exists.
	inheritRule subqueryKind = iota

	// overrideRule resolves the nested registry against its own query.
	overrideRule

	// skipRule drops the nested registry from the result. A registry handle
	// may never remain in a schedule unexpanded, so "skip expansion" means
	// "do not schedule".
	skipRule
)

// SubqueryRule tells resolution how to treat one nested registry.
type SubqueryRule struct {
	kind  subqueryKind
	query *Query
}

// Inherit resolves the nested registry with the enclosing query. Equivalent
// to having no entry at all; useful to be explicit.
func Inherit() SubqueryRule { return SubqueryRule{kind: inheritRule} }

// Override resolves the nested registry with q instead of the enclosing
// query.
func Override(q *Query) SubqueryRule { return SubqueryRule{kind: overrideRule, query: q} }

// Skip drops the nested registry from the result entirely.
func Skip() SubqueryRule { return SubqueryRule{kind: skipRule} }

// Query is an immutable selection over tags: include tags are unioned,
// require tags intersect, exclude tags subtract. Subquery rules control
// nested-registry expansion and the optional position cutoff overrides the
// configured default in sequence registries. Derivation methods return a new
// Query; an existing Query is never mutated observably.
type Query struct {
	name     string
	include  *orderedset.Set[string]
	require  *orderedset.Set[string]
	exclude  *orderedset.Set[string]
	subquery map[string]SubqueryRule
	cutoff   *float64
}

// NewQuery returns a query including the given tags.
func NewQuery(include ...string) *Query {
	return &Query{
		include:  orderedset.New(include...),
		require:  orderedset.New[string](),
		exclude:  orderedset.New[string](),
		subquery: make(map[string]SubqueryRule),
	}
}

// clone returns a deep copy safe to mutate before handing out.
func (q *Query) clone() *Query {
	out := &Query{
		name:     q.name,
		include:  q.include.Copy(),
		require:  q.require.Copy(),
		exclude:  q.exclude.Copy(),
		subquery: make(map[string]SubqueryRule, len(q.subquery)),
		cutoff:   q.cutoff,
	}
	for name, rule := range q.subquery {
		out.subquery[name] = rule
	}
	return out
}

// Including returns a new query with the tags unioned into the include set.
func (q *Query) Including(tags ...string) *Query {
	out := q.clone()
	for _, tag := range tags {
		out.include.Add(tag)
	}
	return out
}

// Requiring returns a new query with the tags unioned into the require set.
func (q *Query) Requiring(tags ...string) *Query {
	out := q.clone()
	for _, tag := range tags {
		out.require.Add(tag)
	}
	return out
}

// Excluding returns a new query with the tags unioned into the exclude set.
func (q *Query) Excluding(tags ...string) *Query {
	out := q.clone()
	for _, tag := range tags {
		out.exclude.Add(tag)
	}
	return out
}

// WithSubquery returns a new query carrying a rule for the named nested
// registry.
func (q *Query) WithSubquery(name string, rule SubqueryRule) *Query {
	out := q.clone()
	out.subquery[name] = rule
	return out
}

// WithPositionCutoff returns a new query with an explicit position cutoff.
func (q *Query) WithPositionCutoff(cutoff float64) *Query {
	out := q.clone()
	out.cutoff = &cutoff
	return out
}

// WithName returns a new query carrying a name; a sequence scheduler built
// from a named query inherits it for attribution.
func (q *Query) WithName(name string) *Query {
	out := q.clone()
	out.name = name
	return out
}

// Name returns the query's attribution name, or "".
func (q *Query) Name() string { return q.name }

// Include returns the include tags in insertion order.
func (q *Query) Include() []string { return q.include.Items() }

// Require returns the require tags in insertion order.
func (q *Query) Require() []string { return q.require.Items() }

// Exclude returns the exclude tags in insertion order.
func (q *Query) Exclude() []string { return q.exclude.Items() }

// PositionCutoff returns the explicit cutoff and whether one was set.
func (q *Query) PositionCutoff() (float64, bool) {
	if q.cutoff == nil {
		return 0, false
	}
	return *q.cutoff, true
}

// subqueryRule returns the rule recorded for a nested registry name.
func (q *Query) subqueryRule(name string) (SubqueryRule, bool) {
	rule, ok := q.subquery[name]
	return rule, ok
}

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryDerivationsDoNotMutate(t *testing.T) {
	q := NewQuery("a")

	inc := q.Including("b")
	req := q.Requiring("r")
	exc := q.Excluding("x")
	cut := q.WithPositionCutoff(7)
	sub := q.WithSubquery("nested", Skip())
	named := q.WithName("plan")

	assert.Equal(t, []string{"a"}, q.Include())
	assert.Empty(t, q.Require())
	assert.Empty(t, q.Exclude())
	assert.Empty(t, q.Name())
	_, hasCutoff := q.PositionCutoff()
	assert.False(t, hasCutoff)
	_, hasRule := q.subqueryRule("nested")
	assert.False(t, hasRule)

	assert.Equal(t, []string{"a", "b"}, inc.Include())
	assert.Equal(t, []string{"r"}, req.Require())
	assert.Equal(t, []string{"x"}, exc.Exclude())

	c, ok := cut.PositionCutoff()
	require.True(t, ok)
	assert.Equal(t, 7.0, c)

	rule, ok := sub.subqueryRule("nested")
	require.True(t, ok)
	assert.Equal(t, skipRule, rule.kind)

	assert.Equal(t, "plan", named.Name())
}

func TestQueryDerivationsChain(t *testing.T) {
	q := NewQuery("a").Including("b").Requiring("r").Excluding("x").WithPositionCutoff(3)

	assert.Equal(t, []string{"a", "b"}, q.Include())
	assert.Equal(t, []string{"r"}, q.Require())
	assert.Equal(t, []string{"x"}, q.Exclude())
	c, ok := q.PositionCutoff()
	require.True(t, ok)
	assert.Equal(t, 3.0, c)
}

func TestParseTags(t *testing.T) {
	q, err := ParseTags("+a", "+b", "&r", "-x")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, q.Include())
	assert.Equal(t, []string{"r"}, q.Require())
	assert.Equal(t, []string{"x"}, q.Exclude())

	_, err = ParseTags("plain")
	assert.ErrorIs(t, err, ErrInvalidTagSyntax)
}

func TestSubqueryRuleConstructors(t *testing.T) {
	assert.Equal(t, inheritRule, Inherit().kind)
	assert.Equal(t, skipRule, Skip().kind)

	over := Override(NewQuery("special"))
	assert.Equal(t, overrideRule, over.kind)
	require.NotNil(t, over.query)
	assert.Equal(t, []string{"special"}, over.query.Include())
}

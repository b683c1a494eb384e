package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/passdb/internal/pass"
	"github.com/vk/passdb/internal/testutil"
)

func TestSequenceAppliesOnceInOrder(t *testing.T) {
	ctx := context.Background()
	journal := &testutil.Journal{}
	names := []string{"canonicalize", "fold", "merge"}
	passes := make([]pass.Pass, 0, len(names))
	for _, name := range names {
		p := testutil.NewPass(1)
		p.SetName(name)
		p.Journal = journal
		passes = append(passes, p)
	}
	s := &Sequence{Passes: passes}

	total, err := s.Apply(ctx, &testutil.Graph{Nodes: 10})
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	assert.Equal(t, names, journal.Entries, "each pass runs exactly once, in order")
}

func TestSequenceFailurePolicy(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("nil callback aborts", func(t *testing.T) {
		failing := testutil.NewPass()
		failing.SetName("broken")
		failing.Err = boom
		after := testutil.NewPass(1)
		after.SetName("fold")
		s := &Sequence{Passes: []pass.Pass{failing, after}}

		total, err := s.Apply(ctx, &testutil.Graph{Nodes: 10})
		require.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "broken")
		assert.Equal(t, 0, total)
		assert.Equal(t, 0, after.Applied)
	})

	t.Run("callback reports and continues", func(t *testing.T) {
		failing := testutil.NewPass()
		failing.SetName("broken")
		failing.Err = boom
		after := testutil.NewPass(1)
		after.SetName("fold")

		var reported []string
		s := &Sequence{
			Passes: []pass.Pass{failing, after},
			OnFailure: func(ctx context.Context, p pass.Pass, err error) {
				reported = append(reported, p.Name())
			},
		}

		total, err := s.Apply(ctx, &testutil.Graph{Nodes: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, 1, after.Applied)
		assert.Equal(t, []string{"broken"}, reported)
	})
}

func TestLocalGroupPropagatesFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	failing := testutil.NewPass()
	failing.SetName("broken")
	failing.Err = boom

	lg := NewLocalGroup([]pass.Pass{failing})
	lg.SetName("node_local")

	_, err := lg.Apply(ctx, &testutil.Graph{Nodes: 1})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "node_local", lg.Name())
}

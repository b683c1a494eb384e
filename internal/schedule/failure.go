package schedule

import (
	"context"

	"github.com/vk/passdb/internal/ctxlog"
	"github.com/vk/passdb/internal/pass"
)

// FailureFunc is invoked when an individual pass errors during a run. A
// scheduler with a non-nil callback reports the failure and continues; a
// scheduler with a nil callback stops and propagates the error.
type FailureFunc func(ctx context.Context, p pass.Pass, err error)

// WarnOnFailure is the default callback: it logs the failure at Warn level
// and lets the run continue.
func WarnOnFailure(ctx context.Context, p pass.Pass, err error) {
	ctxlog.FromContext(ctx).Warn("Pass failed, continuing run.", "pass", p.Name(), "error", err)
}

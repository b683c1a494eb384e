package registry

import "errors"

// Every violation below indicates a misassembled or misqueried registry, not
// a runtime condition: all are returned synchronously from the offending call
// and none are retried. Failures inside pass execution are reported through
// the scheduler failure callback instead (see the schedule package).
var (
	// ErrDuplicateName is returned when a registration name is already in use
	// as a name or tag, or when the same pass is registered under a second
	// name in the same hierarchy.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrInvalidPassType is returned when the registered object is neither a
	// pass nor a nested scheduling registry.
	ErrInvalidPassType = errors.New("invalid pass type")

	// ErrTagNameCollision is returned when a tag string is already a
	// registered name.
	ErrTagNameCollision = errors.New("tag collides with a registered name")

	// ErrAmbiguousSelector is returned when a name-based operation hits a
	// bucket with more than one entry, which means the selector is really a
	// tag and the caller should use Query instead.
	ErrAmbiguousSelector = errors.New("ambiguous selector")

	// ErrNotFound is returned when nothing is registered under a name.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTagSyntax is returned for a query tag without a '+', '&' or
	// '-' prefix, or for an unsupported selector value.
	ErrInvalidTagSyntax = errors.New("invalid tag syntax")

	// ErrArgumentConflict is returned when a Query value is combined with
	// other query selectors.
	ErrArgumentConflict = errors.New("conflicting query arguments")
)

// Package fortune is the deterministic fortune-cycle and calendrical
// derivation engine. Given a birth record and the externally built
// palace/star skeleton it derives ages, the twelve decadal fortune periods,
// the current yearly period, the origin palace, and the brightness
// corrections for the Sun and Moon stars.
//
// Every operation is a pure function of its inputs: the only state an Engine
// carries is its lookup-miss policy, and the static tables are read-only for
// the lifetime of the process, so concurrent use needs no locking.
package fortune

import (
	"fmt"
)

// LookupError reports a table or palace-list miss in strict mode. In the
// default mode the same misses resolve to documented fallbacks and no error
// is ever returned.
type LookupError struct {
	What string // what was being resolved, e.g. "palace name"
	Key  string // the key that missed
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("fortune: no %s for %q", e.What, e.Key)
}

// Engine evaluates fortune derivations under a fixed lookup-miss policy.
// The zero value (and New with no options) uses silent fallbacks, matching
// the behavior the display layer has always depended on.
type Engine struct {
	strict bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrictLookups makes every table or palace-list miss surface as a
// *LookupError instead of resolving to a fallback. Meant for tests and for
// flushing out malformed skeletons from the external chart engine.
func WithStrictLookups() Option {
	return func(e *Engine) { e.strict = true }
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// miss resolves the strict/fallback split in one place.
func (e *Engine) miss(what, key string) error {
	if e.strict {
		return &LookupError{What: what, Key: key}
	}
	return nil
}

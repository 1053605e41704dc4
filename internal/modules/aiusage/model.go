package aiusage

import "errors"

// ErrQuotaExhausted is returned when a scope has no AI calls remaining for
// the current month.
var ErrQuotaExhausted = errors.New("monthly ai quota exhausted")

// Scopes separate interactive regenerations from batch scans so a heavy scan
// month cannot starve the support screens.
const (
	ScopeInteractive = "interactive"
	ScopeBatch       = "batch"
)

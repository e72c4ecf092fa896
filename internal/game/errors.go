package game

import (
	"errors"
	"fmt"
)

// RulesError reports an illegal operation against the rules engine: a play
// that violates the rules, an unknown player, or an out-of-phase call. All
// engine failures are RulesErrors; anything else is a programming bug.
type RulesError struct {
	Reason string
}

func (e *RulesError) Error() string {
	return e.Reason
}

// rulesErrorf builds a RulesError from a format string.
func rulesErrorf(format string, args ...any) *RulesError {
	return &RulesError{Reason: fmt.Sprintf(format, args...)}
}

// IsRulesError reports whether err is a rules violation.
func IsRulesError(err error) bool {
	var re *RulesError
	return errors.As(err, &re)
}

package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNetwork       = errors.New("network error")
	ErrLoad          = errors.New("audio load error")
	ErrStateConflict = errors.New("state conflict")
	ErrNotFound      = errors.New("not found")
	ErrConfiguration = errors.New("configuration error")
	ErrTimeout       = errors.New("timeout")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later scope classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrNetwork
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureScope names the smallest unit a failure is confined to.
type FailureScope string

const (
	ScopeNone    FailureScope = ""
	ScopeSession FailureScope = "session"
	ScopePage    FailureScope = "page"
	ScopeRow     FailureScope = "row"
)

// Scope maps an error to the unit the rendering layer should mark as failed.
// firstPage distinguishes a session-wide fetch failure from a next-page one.
func Scope(err error, firstPage bool) FailureScope {
	switch {
	case err == nil:
		return ScopeNone
	case errors.Is(err, ErrLoad), errors.Is(err, ErrStateConflict):
		return ScopeRow
	case firstPage:
		return ScopeSession
	default:
		return ScopePage
	}
}

// Retryable reports whether the user should be offered a retry affordance.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrLoad) || errors.Is(err, ErrTimeout)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

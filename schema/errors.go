package schema

import (
	"errors"
	"fmt"
)

// Error kinds. Each structural failure in the runtime wraps exactly one of
// these sentinels so callers can classify with errors.Is without string
// matching. The message always names the offending config key, group line
// or repository query.
var (
	// ErrParse marks a malformed config record or group spec line.
	ErrParse = errors.New("parse error")

	// ErrConfig marks a structurally invalid group definition: a duplicate
	// group name or a reference to a group not yet defined.
	ErrConfig = errors.New("config error")

	// ErrUndefinedGroup marks a membership query against an unknown group.
	ErrUndefinedGroup = errors.New("undefined group")

	// ErrNotFound marks a range or commit query for a ref that was never
	// recorded in the current session.
	ErrNotFound = errors.New("not found")

	// ErrRetrieval marks a failed repository query or a missing object.
	ErrRetrieval = errors.New("retrieval error")

	// ErrEnvironment marks missing ambient context, such as an unset
	// identity or home value the hook needs.
	ErrEnvironment = errors.New("environment error")
)

// NewParseError wraps ErrParse with a message.
func NewParseError(msg string) error {
	return fmt.Errorf("%w: %s", ErrParse, msg)
}

// NewConfigError wraps ErrConfig with a message.
func NewConfigError(msg string) error {
	return fmt.Errorf("%w: %s", ErrConfig, msg)
}

// NewUndefinedGroupError wraps ErrUndefinedGroup for the named group.
func NewUndefinedGroupError(group string) error {
	return fmt.Errorf("%w: %q", ErrUndefinedGroup, group)
}

// NewNotFoundError wraps ErrNotFound for the named ref.
func NewNotFoundError(ref string) error {
	return fmt.Errorf("%w: ref %q was not recorded in this session", ErrNotFound, ref)
}

// NewRetrievalError wraps ErrRetrieval around a failed repository query.
func NewRetrievalError(query string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrRetrieval, query, cause)
}

// NewEnvironmentError wraps ErrEnvironment with a message.
func NewEnvironmentError(msg string) error {
	return fmt.Errorf("%w: %s", ErrEnvironment, msg)
}

// Package validation defines the pass/fail-with-messages contract services use
// to check input before touching storage.
package validation

import (
	"strings"
)

// Result collects human-readable problems. No messages means the value is acceptable.
type Result struct {
	messages []string
}

// Add records a problem.
func (r *Result) Add(msg string) {
	r.messages = append(r.messages, msg)
}

// OK reports whether no problem was recorded.
func (r Result) OK() bool { return len(r.messages) == 0 }

// Messages returns a copy of the recorded problems in the order they were found.
func (r Result) Messages() []string {
	return append([]string(nil), r.messages...)
}

// Err returns nil for a passing result and an *Error otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Messages: r.Messages()}
}

// Validator checks a value.
type Validator[T any] interface {
	Validate(value T) Result
}

// Func adapts a plain function to Validator.
type Func[T any] func(value T) Result

func (f Func[T]) Validate(value T) Result { return f(value) }

// Error carries the messages of a failed Result.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	if e == nil || len(e.Messages) == 0 {
		return "validation failed"
	}
	return strings.Join(e.Messages, " ")
}

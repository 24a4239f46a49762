package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	TagNotBlank = "notblank"
	TagPast     = "past"
	TagFinite   = "finite"
)

// Messages maps "Field.tag" (struct field name and failing tag) to the text
// reported for that failure.
type Messages map[string]string

// Struct validates *T using `validate` struct tags. Besides the built-in
// go-playground tags it understands notblank (non-empty after trimming), past
// (a non-zero time whose calendar date is not after the validator clock's
// today) and finite (a float that is neither NaN nor infinite).
type Struct[T any] struct {
	validate   *validator.Validate
	messages   Messages
	nilMessage string
	now        func() time.Time
}

type StructOption func(*structSettings)

type structSettings struct {
	now        func() time.Time
	nilMessage string
}

// WithClock overrides the clock used by the past tag.
func WithClock(now func() time.Time) StructOption {
	return func(s *structSettings) {
		s.now = now
	}
}

// WithNilMessage sets the message reported for a nil value.
func WithNilMessage(msg string) StructOption {
	return func(s *structSettings) {
		s.nilMessage = msg
	}
}

func NewStruct[T any](messages Messages, opts ...StructOption) *Struct[T] {
	cfg := structSettings{now: time.Now, nilMessage: "Value cannot be null."}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	s := &Struct[T]{
		validate:   validator.New(),
		messages:   messages,
		nilMessage: cfg.nilMessage,
		now:        cfg.now,
	}
	// Registration only fails for empty tags or nil funcs.
	_ = s.validate.RegisterValidation(TagNotBlank, notBlank)
	_ = s.validate.RegisterValidation(TagPast, s.past)
	_ = s.validate.RegisterValidation(TagFinite, finite)
	return s
}

// Validate checks value and returns one message per failing field, in field order.
func (s *Struct[T]) Validate(value *T) Result {
	var result Result
	if value == nil {
		result.Add(s.nilMessage)
		return result
	}
	err := s.validate.Struct(value)
	if err == nil {
		return result
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.Add(err.Error())
		return result
	}
	for _, fe := range fieldErrs {
		result.Add(s.message(fe))
	}
	return result
}

func (s *Struct[T]) message(fe validator.FieldError) string {
	if msg, ok := s.messages[fe.StructField()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := s.messages[fe.StructField()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}

func (s *Struct[T]) past(fl validator.FieldLevel) bool {
	ts, ok := fl.Field().Interface().(time.Time)
	if !ok || ts.IsZero() {
		return false
	}
	return !calendarDay(ts).After(calendarDay(s.now()))
}

// calendarDay keeps the date t shows in its own location, so a date stored as
// UTC midnight compares against the clock's local today.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func finite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return true
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

package errs

import (
	"errors"
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// Kind tags an error with its place in the failure taxonomy so boundary
// layers can map it without string matching.
type Kind string

const (
	KindConflict          Kind = "CONFLICT"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindLockContention    Kind = "LOCK_CONTENTION"
	KindTokenExpired      Kind = "TOKEN_EXPIRED"
	KindNotFound          Kind = "NOT_FOUND"
	KindStorageFault      Kind = "STORAGE_FAULT"
)

type KindError struct {
	Knd Kind
	msg string
	err error // wrapped low-level error
}

func (e KindError) Error() string {
	if e.err != nil {
		return string(e.Knd) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Knd) + ": " + e.msg
}

func (e KindError) Unwrap() error {
	return e.err
}

func NewKind(kind Kind, msg string) error {
	return KindError{Knd: kind, msg: msg}
}

func WrapKind(err error, kind Kind, msg string) error {
	if err != nil {
		err = cr.Wrap(err, msg)
	}
	return KindError{Knd: kind, msg: msg, err: err}
}

func IsKind(err error, kind Kind) bool {
	var e KindError
	if errors.As(err, &e) {
		return e.Knd == kind
	}
	return false
}

// KindOf reports the first tag found walking the chain outside-in,
// or "" when untagged.
func KindOf(err error) Kind {
	var e KindError
	if errors.As(err, &e) {
		return e.Knd
	}
	return ""
}

package errs

import (
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

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

// Define creates a sentinel that matches every marker in kinds under Is
// while staying distinct from other sentinels of the same kind.
//
// A bare Mark would not do: a marked error takes its marker's identity, so
// two sentinels marked with ErrValidation would compare equal. The outer
// stack layer gives the sentinel a mark of its own.
func Define(msg string, kinds ...error) error {
	err := cr.NewWithDepth(1, msg)
	for _, k := range kinds {
		err = cr.Mark(err, k)
	}
	return cr.WithStackDepth(err, 1)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is understands marks as well as wrapping chains.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}

// Cause returns the innermost error, which for domain sentinels is the
// message meant for the caller.
func Cause(err error) error {
	return cr.UnwrapAll(err)
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

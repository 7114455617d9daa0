// Package prompt collects typed values from the user. The presentation
// layer's half of the core contract lives here: raw input is read from
// the UI's input channel, trimmed, and type-checked before any catalog
// or engine operation sees it. A failed parse aborts the current form
// rather than re-prompting, matching the menu flow's one-shot style.
package prompt

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/kittipos/kruacost/internal/logger"
)

// ErrAborted is returned when input ends (context cancelled or the
// input channel closed) before a value was read.
var ErrAborted = errors.New("input aborted")

// PrintFunc prints the prompt label. Matches display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// Reader reads typed values from an input line channel.
type Reader struct {
	in      <-chan string
	printFn PrintFunc
	log     *logger.Logger
}

// NewReader creates a reader over the given line channel.
func NewReader(in <-chan string, printFn PrintFunc, log *logger.Logger) *Reader {
	return &Reader{in: in, printFn: printFn, log: log}
}

// Text prompts for a line and returns it trimmed. An empty result is
// valid; edit forms treat it as "keep the current value" and the
// recipe line loop treats it as "done".
func (r *Reader) Text(ctx context.Context, label string) (string, error) {
	r.printFn("%s", label)
	select {
	case <-ctx.Done():
		return "", ErrAborted
	case line, ok := <-r.in:
		if !ok {
			return "", ErrAborted
		}
		return strings.TrimSpace(line), nil
	}
}

// Int prompts for an integer. Non-numeric input is a parse error; the
// caller aborts its form and reports it.
func (r *Reader) Int(ctx context.Context, label string) (int, error) {
	raw, err := r.Text(ctx, label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.log.Debug("rejected int input %q", raw)
		return 0, errors.New("not a whole number")
	}
	return n, nil
}

// Float prompts for a number.
func (r *Reader) Float(ctx context.Context, label string) (float64, error) {
	raw, err := r.Text(ctx, label)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.log.Debug("rejected numeric input %q", raw)
		return 0, errors.New("not a number")
	}
	return f, nil
}

// OptionalInt prompts for an integer that may be left blank. A blank
// entry returns nil ("keep the current value"); bad input is an error.
func (r *Reader) OptionalInt(ctx context.Context, label string) (*int, error) {
	raw, err := r.Text(ctx, label)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.log.Debug("rejected int input %q", raw)
		return nil, errors.New("not a whole number")
	}
	return &n, nil
}

// OptionalFloat prompts for a number that may be left blank.
func (r *Reader) OptionalFloat(ctx context.Context, label string) (*float64, error) {
	raw, err := r.Text(ctx, label)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.log.Debug("rejected numeric input %q", raw)
		return nil, errors.New("not a number")
	}
	return &f, nil
}

// Confirm prompts with a y/n question. Only "y" (case-insensitive)
// counts as yes; anything else, including empty input, is no.
func (r *Reader) Confirm(ctx context.Context, label string) (bool, error) {
	raw, err := r.Text(ctx, label+" (y/n): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(raw, "y"), nil
}

package prompt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kittipos/kruacost/internal/logger"
)

func newReader(lines ...string) *Reader {
	in := make(chan string, len(lines))
	for _, l := range lines {
		in <- l
	}
	close(in)
	return NewReader(in, func(string, ...interface{}) {}, logger.New(logger.LevelOff, nil))
}

func TestTextTrims(t *testing.T) {
	r := newReader("  hello world  ")
	got, err := r.Text(context.Background(), "name: ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("got %q, want %q", got, "hello world")
	}
}

func TestTextAbortedOnClosedChannel(t *testing.T) {
	r := newReader()
	if _, err := r.Text(context.Background(), "name: "); !errors.Is(err, ErrAborted) {
		t.Fatalf("got %v, want ErrAborted", err)
	}
}

func TestTextAbortedOnCancel(t *testing.T) {
	in := make(chan string)
	r := NewReader(in, func(string, ...interface{}) {}, logger.New(logger.LevelOff, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Text(ctx, "name: "); !errors.Is(err, ErrAborted) {
		t.Fatalf("got %v, want ErrAborted", err)
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"plain", "42", 42, false},
		{"negative", "-3", -3, false},
		{"padded", "  7 ", 7, false},
		{"float rejected", "2.5", 0, true},
		{"words rejected", "three", 0, true},
		{"blank rejected", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newReader(tt.input).Int(context.Background(), "n: ")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"decimal", "12.5", 12.5, false},
		{"whole", "10", 10, false},
		{"words rejected", "ten", 0, true},
		{"blank rejected", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newReader(tt.input).Float(context.Background(), "q: ")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptionalIntBlankIsNil(t *testing.T) {
	got, err := newReader("   ").OptionalInt(context.Background(), "servings: ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("got %v, want nil", *got)
	}
}

func TestOptionalIntValue(t *testing.T) {
	got, err := newReader("6").OptionalInt(context.Background(), "servings: ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != 6 {
		t.Fatalf("got %v, want 6", got)
	}
}

func TestOptionalIntBadInput(t *testing.T) {
	if _, err := newReader("six").OptionalInt(context.Background(), "servings: "); err == nil {
		t.Fatal("expected error")
	}
}

func TestOptionalFloat(t *testing.T) {
	got, err := newReader("").OptionalFloat(context.Background(), "price: ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("got %v, want nil", *got)
	}

	got, err = newReader("3.75").OptionalFloat(context.Background(), "price: ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != 3.75 {
		t.Fatalf("got %v, want 3.75", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y", true},
		{"Y", true},
		{" y ", true},
		{"yes", false},
		{"n", false},
		{"", false},
		{"anything", false},
	}
	for _, tt := range tests {
		got, err := newReader(tt.input).Confirm(context.Background(), "Delete?")
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPromptLabelPrinted(t *testing.T) {
	var printed string
	in := make(chan string, 1)
	in <- "ok"
	r := NewReader(in, func(format string, a ...interface{}) {
		printed = fmt.Sprintf(format, a...)
	}, logger.New(logger.LevelOff, nil))
	if _, err := r.Text(context.Background(), "name: "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if printed != "name: " {
		t.Fatalf("printed %q, want %q", printed, "name: ")
	}
}

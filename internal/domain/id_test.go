package domain

import "testing"

func TestNextID(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		want     int
	}{
		{"empty collection", nil, 1},
		{"single record", []int{1}, 2},
		{"sequential", []int{1, 2, 3}, 4},
		{"gap after deletion is not reused", []int{1, 3}, 4},
		{"unordered", []int{5, 2, 9, 1}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.existing); got != tt.want {
				t.Fatalf("NextID(%v) = %d, want %d", tt.existing, got, tt.want)
			}
		})
	}
}

package helpers

import "testing"

func TestSliceWindow(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		size       int
		totalItems int
		wantStart  int
		wantEnd    int
	}{
		{"first page", 0, 25, 63, 0, 25},
		{"middle page", 1, 25, 63, 25, 50},
		{"last partial page", 2, 25, 63, 50, 63},
		{"page past the end", 3, 25, 63, 63, 63},
		{"empty list", 0, 25, 0, 0, 0},
		{"negative page clamps to zero", -2, 25, 10, 0, 10},
		{"exact multiple", 1, 10, 20, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := SliceWindow(tt.page, tt.size, tt.totalItems)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("SliceWindow() = (%d, %d), want (%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		size       int
		want       int
	}{
		{"63 items at 25 per page", 63, 25, 3},
		{"exact multiple", 50, 25, 2},
		{"single item", 1, 25, 1},
		{"empty", 0, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageCount(tt.totalItems, tt.size); got != tt.want {
				t.Errorf("PageCount(%d, %d) = %d, want %d", tt.totalItems, tt.size, got, tt.want)
			}
		})
	}
}

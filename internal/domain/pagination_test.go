package domain

import "testing"

func TestPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		p          PaginationParams
		wantOffset int
		wantLimit  int
	}{
		{"first page", PaginationParams{Page: 1, PageSize: 20}, 0, 20},
		{"third page", PaginationParams{Page: 3, PageSize: 10}, 20, 10},
		{"zero page", PaginationParams{Page: 0, PageSize: 10}, 0, 10},
		{"unset", PaginationParams{}, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Offset(); got != tt.wantOffset {
				t.Fatalf("Offset() = %d, want %d", got, tt.wantOffset)
			}
			if got := tt.p.Limit(); got != tt.wantLimit {
				t.Fatalf("Limit() = %d, want %d", got, tt.wantLimit)
			}
		})
	}
}

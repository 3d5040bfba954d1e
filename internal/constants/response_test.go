package constants

import "testing"

func TestPageTotal(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{450, 200, 3},
		{10, 0, 0},
	}

	for _, tt := range tests {
		if got := PageTotal(tt.total, tt.pageSize); got != tt.want {
			t.Errorf("PageTotal(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}

func TestBuildListResponse(t *testing.T) {
	resp := BuildListResponse([]string{"a"}, 41, 2, 20, "page=2&q=a")

	if resp[ResponseFieldPageTotal] != 3 {
		t.Errorf("Expected pageTotal 3, got %v", resp[ResponseFieldPageTotal])
	}
	if resp[ResponseFieldQuery] != "page=2&q=a" {
		t.Errorf("Expected canonical query, got %v", resp[ResponseFieldQuery])
	}
	if resp[ResponseFieldPageSize] != 20 {
		t.Errorf("Expected pageSize 20, got %v", resp[ResponseFieldPageSize])
	}
}

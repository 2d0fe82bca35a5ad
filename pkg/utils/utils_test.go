package utils

import (
	"strings"
	"testing"
)

func TestGenerateUUID(t *testing.T) {
	id := GenerateUUID()
	if len(id) != 32 {
		t.Errorf("expected uuid of length 32, got %d", len(id))
	}
	if strings.Contains(id, "-") {
		t.Errorf("expected uuid without dashes, got %s", id)
	}
	if id == GenerateUUID() {
		t.Errorf("expected unique uuids")
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		total     int
		want      [][]int
	}{
		{"empty", 10, 0, nil},
		{"single partial chunk", 10, 4, [][]int{{0, 4}}},
		{"exact chunks", 2, 4, [][]int{{0, 2}, {2, 4}}},
		{"trailing partial chunk", 3, 7, [][]int{{0, 3}, {3, 6}, {6, 7}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got [][]int
			if err := Chunk(tc.chunkSize, tc.total, func(start, end int) error {
				got = append(got, []int{start, end})
				return nil
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d chunks, got %d", len(tc.want), len(got))
			}
			for i := range got {
				if got[i][0] != tc.want[i][0] || got[i][1] != tc.want[i][1] {
					t.Errorf("chunk %d: expected %v, got %v", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestMin(t *testing.T) {
	if got := Min(3, 5); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := Min(5, 3); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

package document

import "testing"

func TestDiffStats(t *testing.T) {
	tests := []struct {
		name          string
		before, after string
		added, remove int
	}{
		{"identical", "a\nb\n", "a\nb\n", 0, 0},
		{"append", "a\n", "a\nb\n", 1, 0},
		{"delete", "a\nb\nc\n", "a\nc\n", 0, 1},
		{"replace", "a\nb\n", "a\nB\n", 1, 1},
		{"from empty", "", "x\ny\n", 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := DiffStats(tt.before, tt.after)
			if added != tt.added || removed != tt.remove {
				t.Errorf("DiffStats() = +%d -%d, want +%d -%d", added, removed, tt.added, tt.remove)
			}
		})
	}
}

func TestRenderDiff(t *testing.T) {
	got := RenderDiff("a\nb\nc\n", "a\nB\nc\n")
	want := "-b\n+B\n"
	if got != want {
		t.Errorf("RenderDiff() = %q, want %q", got, want)
	}
	if got := RenderDiff("same\n", "same\n"); got != "" {
		t.Errorf("RenderDiff(identical) = %q, want empty", got)
	}
}

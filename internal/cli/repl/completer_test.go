package repl

import "testing"

func TestCompleterComplete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"token s", []string{"token supply"}},
		{"step", []string{"step", "step advance", "step current"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		got := c.Complete(tt.prefix)
		if len(got) != len(tt.want) {
			t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Complete(%q)[%d] = %q, want %q", tt.prefix, i, got[i], tt.want[i])
			}
		}
	}
}

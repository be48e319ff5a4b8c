package models

import "testing"

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Go, SQL, Docker", []string{"Go", "SQL", "Docker"}},
		{"  Go ,, SQL ,", []string{"Go", "SQL"}},
		{"", nil},
		{" , , ", nil},
		{"single", []string{"single"}},
	}
	for _, tt := range tests {
		got := SplitSkills(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("SplitSkills(%q) = %v; want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitSkills(%q)[%d] = %q; want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestJoinSkills(t *testing.T) {
	if got := JoinSkills([]string{" Go ", "", "SQL"}); got != "Go, SQL" {
		t.Errorf("JoinSkills = %q; want %q", got, "Go, SQL")
	}
	if got := JoinSkills(nil); got != "" {
		t.Errorf("JoinSkills(nil) = %q; want empty", got)
	}
}

func TestSkills_RoundTripStable(t *testing.T) {
	joined := JoinSkills([]string{"Go", "SQL", "Docker"})
	split := SplitSkills(joined)
	if len(split) != 3 || split[0] != "Go" || split[1] != "SQL" || split[2] != "Docker" {
		t.Errorf("round trip = %v", split)
	}
}

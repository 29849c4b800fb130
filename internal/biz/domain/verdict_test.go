package domain

import "testing"

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		response string
		want     Verdict
	}{
		{"Yes", VerdictYes},
		{"yes", VerdictYes},
		{"YES.", VerdictYes},
		{"  Yes, it is about chemtrails", VerdictYes},
		{"No", VerdictNo},
		{"no!", VerdictNo},
		{"'No'", VerdictNo},
		{"Maybe", VerdictUndetermined},
		{"Yesterday I saw", VerdictUndetermined},
		{"Nope", VerdictUndetermined},
		{"", VerdictUndetermined},
		{"I think yes", VerdictUndetermined},
	}

	for _, tt := range tests {
		if got := ParseVerdict(tt.response); got != tt.want {
			t.Errorf("ParseVerdict(%q) = %s, want %s", tt.response, got, tt.want)
		}
	}
}

package screening

import (
	"testing"
)

func TestCategoryThresholds(t *testing.T) {
	cases := []struct {
		pct  float64
		want MatchCategory
	}{
		{100, CategoryStrong},
		{75, CategoryStrong},
		{74.9, CategoryModerate},
		{50, CategoryModerate},
		{49.9, CategoryWeak},
		{0, CategoryWeak},
	}
	for _, tc := range cases {
		if got := CategoryFor(tc.pct); got != tc.want {
			t.Errorf("CategoryFor(%v) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for status, want := range map[Status]bool{
		StatusPending:    false,
		StatusProcessing: false,
		StatusCompleted:  true,
		StatusFailed:     true,
	} {
		j := ScreeningJob{Status: status}
		if got := j.IsTerminal(); got != want {
			t.Errorf("IsTerminal() with %s = %v, want %v", status, got, want)
		}
	}
}

func TestProgressPercentage(t *testing.T) {
	j := ScreeningJob{TotalResumes: 4, ProcessedCount: 3}
	if got := j.ProgressPercentage(); got != 75 {
		t.Errorf("ProgressPercentage() = %d, want 75", got)
	}

	empty := ScreeningJob{}
	if got := empty.ProgressPercentage(); got != 0 {
		t.Errorf("ProgressPercentage() on empty job = %d, want 0", got)
	}
}

func TestRemainingCount(t *testing.T) {
	j := ScreeningJob{TotalResumes: 10, ProcessedCount: 7}
	if got := j.RemainingCount(); got != 3 {
		t.Errorf("RemainingCount() = %d, want 3", got)
	}

	over := ScreeningJob{TotalResumes: 2, ProcessedCount: 3}
	if got := over.RemainingCount(); got != 0 {
		t.Errorf("RemainingCount() should not go negative, got %d", got)
	}
}

package match

import (
	"testing"
)

func TestTokenizePreservesTechTokens(t *testing.T) {
	kw := Tokenize("Expert in C++, C# and Node.js development")

	for _, want := range []string{"c++", "c#", "node.js", "development", "expert"} {
		if !kw[want] {
			t.Errorf("expected token %q to be present, got %v", want, kw)
		}
	}
	if kw["in"] {
		t.Error("single-letter and short tokens should be dropped")
	}
}

func TestTokenizeSkipsStopWords(t *testing.T) {
	kw := Tokenize("strong experience with the Go language")

	if kw["experience"] || kw["with"] || kw["the"] || kw["strong"] {
		t.Errorf("stop words leaked into keyword set: %v", kw)
	}
	if !kw["go"] || !kw["language"] {
		t.Errorf("expected go and language tokens, got %v", kw)
	}
}

func TestEvaluatePartitionsRequirements(t *testing.T) {
	resume := "Senior engineer. 8 years of Go, Docker and Kubernetes. Built PostgreSQL systems."
	reqs := []string{"Go", "Kubernetes", "PostgreSQL", "Terraform", "React"}

	ev := Evaluate(resume, reqs)

	if len(ev.MatchedSkills) != 3 {
		t.Fatalf("matched = %v, want 3 entries", ev.MatchedSkills)
	}
	if len(ev.MissingSkills) != 2 {
		t.Fatalf("missing = %v, want 2 entries", ev.MissingSkills)
	}
	if ev.MatchPercentage != 60.0 {
		t.Errorf("MatchPercentage = %v, want 60.0", ev.MatchPercentage)
	}
	if len(ev.Strengths) != 3 || len(ev.Improvements) != 2 {
		t.Errorf("strengths/improvements not derived from partition: %v / %v", ev.Strengths, ev.Improvements)
	}
}

func TestEvaluateMultiTokenRequirementNeedsAllTokens(t *testing.T) {
	ev := Evaluate("Worked extensively with Docker containers", []string{"Docker Compose"})

	if len(ev.MatchedSkills) != 0 {
		t.Errorf("requirement with an absent token should not match, got %v", ev.MatchedSkills)
	}
}

func TestEvaluateEmptyRequirements(t *testing.T) {
	ev := Evaluate("any resume text", nil)

	if ev.MatchPercentage != 0 {
		t.Errorf("MatchPercentage = %v, want 0 for empty requirements", ev.MatchPercentage)
	}
	if len(ev.MatchedSkills) != 0 || len(ev.MissingSkills) != 0 {
		t.Errorf("expected empty skill lists, got %v / %v", ev.MatchedSkills, ev.MissingSkills)
	}
}

func TestRecommendationThresholds(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{80, "Strong match, recommend advancing to interview"},
		{75, "Strong match, recommend advancing to interview"},
		{60, "Moderate match, consider for further review"},
		{50, "Moderate match, consider for further review"},
		{49.9, "Weak match, likely not a fit for this role"},
		{0, "Weak match, likely not a fit for this role"},
	}
	for _, tc := range cases {
		if got := recommendation(tc.pct); got != tc.want {
			t.Errorf("recommendation(%v) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

package screeningsrv

import (
	"testing"
	"time"

	"github.com/talentrail/screening/pkg/kernel"
	"github.com/talentrail/screening/screening"
)

func scoredResult(candidate string, pct float64, createdAt time.Time) screening.ScreeningResult {
	return screening.ScreeningResult{
		ID:              candidate + "-result",
		CandidateID:     kernel.CandidateID(candidate),
		CandidateName:   candidate,
		FileName:        candidate + ".pdf",
		Status:          screening.ResultStatusCompleted,
		MatchPercentage: pct,
		CreatedAt:       createdAt,
	}
}

func erroredResult(candidate string) screening.ScreeningResult {
	return screening.ScreeningResult{
		ID:           candidate + "-result",
		CandidateID:  kernel.CandidateID(candidate),
		FileName:     candidate + ".pdf",
		Status:       screening.ResultStatusError,
		ErrorMessage: "unreadable document",
	}
}

func reportJob() *screening.ScreeningJob {
	created := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	started := created.Add(90 * time.Second)
	completed := created.Add(2 * time.Minute)
	return &screening.ScreeningJob{
		ID:             "sj-1",
		JobID:          "job-1",
		Status:         screening.StatusCompleted,
		TotalResumes:   4,
		ProcessedCount: 4,
		CreatedAt:      created,
		StartedAt:      &started,
		CompletedAt:    &completed,
	}
}

func TestBuildReportHistogramCoversEveryScore(t *testing.T) {
	now := time.Now()
	results := []screening.ScreeningResult{
		scoredResult("a", 0, now),
		scoredResult("b", 9.9, now),
		scoredResult("c", 55, now),
		scoredResult("d", 90, now),
		scoredResult("e", 100, now),
	}

	report := BuildReport(reportJob(), results, now)

	if len(report.Histogram) != screening.HistogramBinCount {
		t.Fatalf("histogram has %d bins, want %d", len(report.Histogram), screening.HistogramBinCount)
	}

	total := 0
	for _, bin := range report.Histogram {
		total += bin.Count
	}
	if total != report.TotalCandidates {
		t.Errorf("histogram counts sum to %d, want %d", total, report.TotalCandidates)
	}

	last := report.Histogram[screening.HistogramBinCount-1]
	if last.Count != 2 {
		t.Errorf("last bin count = %d, want 2 (90 and 100 both land there)", last.Count)
	}
	if last.Max != 100 {
		t.Errorf("last bin max = %d, want 100", last.Max)
	}
	if last.Percentage != 40.0 {
		t.Errorf("last bin percentage = %v, want 40 (2 of 5 scored)", last.Percentage)
	}
	if report.Histogram[0].Count != 2 {
		t.Errorf("first bin count = %d, want 2 (0 and 9.9)", report.Histogram[0].Count)
	}
}

func TestBuildReportDistribution(t *testing.T) {
	now := time.Now()
	results := []screening.ScreeningResult{
		scoredResult("strong1", 92, now),
		scoredResult("strong2", 75, now),
		scoredResult("moderate", 50, now),
		scoredResult("weak", 49.9, now),
		erroredResult("broken"),
	}

	report := BuildReport(reportJob(), results, now)

	if report.Distribution.Strong != 2 || report.Distribution.Moderate != 1 || report.Distribution.Weak != 1 {
		t.Errorf("distribution = %+v, want 2/1/1", report.Distribution)
	}
	if report.TotalCandidates != 4 {
		t.Errorf("TotalCandidates = %d, want 4 (errored row excluded)", report.TotalCandidates)
	}
	if report.ErroredResumes != 1 {
		t.Errorf("ErroredResumes = %d, want 1", report.ErroredResumes)
	}
}

func TestRankSkillsOrdersByFrequencyThenFirstSeen(t *testing.T) {
	now := time.Now()
	a := scoredResult("a", 40, now)
	a.MatchedSkills = []string{"Go", "Docker"}
	a.MissingSkills = []string{"Kafka", "Terraform"}
	b := scoredResult("b", 40, now)
	b.MatchedSkills = []string{"Go"}
	b.MissingSkills = []string{"Kafka", "GraphQL"}
	c := scoredResult("c", 40, now)
	c.MatchedSkills = []string{"Go", "Docker"}
	c.MissingSkills = []string{"Kafka", "Terraform"}

	report := BuildReport(reportJob(), []screening.ScreeningResult{a, b, c}, now)

	if len(report.TopMatchedSkills) != 2 {
		t.Fatalf("TopMatchedSkills has %d entries, want 2", len(report.TopMatchedSkills))
	}
	if report.TopMatchedSkills[0].Skill != "Go" || report.TopMatchedSkills[0].Count != 3 {
		t.Errorf("top matched skill = %+v, want Go x3", report.TopMatchedSkills[0])
	}
	if report.TopMatchedSkills[0].Percentage != 100.0 {
		t.Errorf("top matched skill percentage = %v, want 100 (matched by all 3 scored)", report.TopMatchedSkills[0].Percentage)
	}
	if report.TopMatchedSkills[1].Skill != "Docker" || report.TopMatchedSkills[1].Count != 2 {
		t.Errorf("second matched skill = %+v, want Docker x2", report.TopMatchedSkills[1])
	}

	if len(report.TopMissingSkills) != 3 {
		t.Fatalf("TopMissingSkills has %d entries, want 3", len(report.TopMissingSkills))
	}
	if report.TopMissingSkills[0].Skill != "Kafka" || report.TopMissingSkills[0].Count != 3 {
		t.Errorf("top missing skill = %+v, want Kafka x3", report.TopMissingSkills[0])
	}
	// Terraform and GraphQL appear twice and once respectively
	if report.TopMissingSkills[1].Skill != "Terraform" || report.TopMissingSkills[1].Count != 2 {
		t.Errorf("second missing skill = %+v, want Terraform x2", report.TopMissingSkills[1])
	}
	if report.TopMissingSkills[2].Skill != "GraphQL" || report.TopMissingSkills[2].Count != 1 {
		t.Errorf("third missing skill = %+v, want GraphQL x1", report.TopMissingSkills[2])
	}
}

func TestRankSkillsBreaksTiesByFirstSeen(t *testing.T) {
	now := time.Now()
	a := scoredResult("a", 40, now)
	a.MissingSkills = []string{"Rust", "Elixir"}

	report := BuildReport(reportJob(), []screening.ScreeningResult{a}, now)

	if len(report.TopMissingSkills) != 2 {
		t.Fatalf("TopMissingSkills has %d entries, want 2", len(report.TopMissingSkills))
	}
	if report.TopMissingSkills[0].Skill != "Rust" || report.TopMissingSkills[1].Skill != "Elixir" {
		t.Errorf("tied skills ordered %s, %s; want Rust then Elixir (first seen)",
			report.TopMissingSkills[0].Skill, report.TopMissingSkills[1].Skill)
	}
}

func TestRankCandidatesBreaksTiesByEarliestResult(t *testing.T) {
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	results := []screening.ScreeningResult{
		scoredResult("later", 80, base.Add(2*time.Second)),
		scoredResult("earlier", 80, base.Add(time.Second)),
		scoredResult("best", 95, base.Add(3*time.Second)),
	}

	report := BuildReport(reportJob(), results, base.Add(time.Minute))

	if len(report.TopCandidates) != 3 {
		t.Fatalf("TopCandidates has %d entries, want 3", len(report.TopCandidates))
	}
	got := []string{
		report.TopCandidates[0].CandidateName,
		report.TopCandidates[1].CandidateName,
		report.TopCandidates[2].CandidateName,
	}
	want := []string{"best", "earlier", "later"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rank %d = %s, want %s", i+1, got[i], want[i])
		}
	}
	if report.TopCandidates[0].Rank != 1 || report.TopCandidates[2].Rank != 3 {
		t.Errorf("ranks not sequential: %d..%d", report.TopCandidates[0].Rank, report.TopCandidates[2].Rank)
	}
}

func TestRankCandidatesCapsAtLimit(t *testing.T) {
	now := time.Now()
	var results []screening.ScreeningResult
	for i := 0; i < topCandidateLimit+5; i++ {
		results = append(results, scoredResult(string(rune('a'+i)), float64(i), now))
	}

	report := BuildReport(reportJob(), results, now)

	if len(report.TopCandidates) != topCandidateLimit {
		t.Errorf("TopCandidates has %d entries, want %d", len(report.TopCandidates), topCandidateLimit)
	}
}

func TestProcessingMetrics(t *testing.T) {
	job := reportJob()
	now := time.Now()

	a := scoredResult("a", 80, now)
	a.ScoringTimeMs = 100
	b := scoredResult("b", 60, now)
	b.ScoringTimeMs = 300
	broken := erroredResult("broken")

	report := BuildReport(job, []screening.ScreeningResult{a, b, broken}, now)

	// The job sat queued for 90 seconds before the first worker picked it
	// up; total duration still runs from creation to the terminal state.
	if report.Processing.TotalDurationMs != (2 * time.Minute).Milliseconds() {
		t.Errorf("TotalDurationMs = %d, want %d (measured from creation, not first dequeue)",
			report.Processing.TotalDurationMs, (2 * time.Minute).Milliseconds())
	}
	if report.Processing.AvgMsPerResume != 30000 {
		t.Errorf("AvgMsPerResume = %v, want 30000 (120000ms over 4 resumes)", report.Processing.AvgMsPerResume)
	}
	if report.Processing.AvgScoringTimeMs != 200 {
		t.Errorf("AvgScoringTimeMs = %v, want 200 (errored rows excluded)", report.Processing.AvgScoringTimeMs)
	}
	if report.Processing.MaxScoringTimeMs != 300 {
		t.Errorf("MaxScoringTimeMs = %d, want 300", report.Processing.MaxScoringTimeMs)
	}
	if report.Processing.ResumesPerMinute != 2 {
		t.Errorf("ResumesPerMinute = %v, want 2 (4 resumes over 2 minutes)", report.Processing.ResumesPerMinute)
	}
}

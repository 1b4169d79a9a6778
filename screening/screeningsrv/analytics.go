package screeningsrv

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/talentrail/screening/screening"
)

const (
	topSkillLimit         = 10
	topCandidateLimit     = 10
	candidateSkillPreview = 5
)

// shareOf returns part over whole as a percentage rounded to one decimal
func shareOf(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

// BuildReport computes the analytics report for a finished screening job.
// Pure function over the stored results, safe to recompute at any time.
func BuildReport(job *screening.ScreeningJob, results []screening.ScreeningResult, now time.Time) *screening.AnalyticsReport {
	scored := make([]screening.ScreeningResult, 0, len(results))
	errored := 0
	for _, r := range results {
		if r.IsScored() {
			scored = append(scored, r)
		} else {
			errored++
		}
	}

	report := &screening.AnalyticsReport{
		ScreeningJobID:   job.ID,
		JobID:            job.JobID,
		TotalCandidates:  len(scored),
		ErroredResumes:   errored,
		Distribution:     buildDistribution(scored),
		Histogram:        buildHistogram(scored),
		TopMatchedSkills: rankSkills(scored, func(r screening.ScreeningResult) []string { return r.MatchedSkills }),
		TopMissingSkills: rankSkills(scored, func(r screening.ScreeningResult) []string { return r.MissingSkills }),
		TopCandidates:    rankCandidates(scored),
		Processing:       buildProcessingMetrics(job, scored, now),
		GeneratedAt:      now,
	}
	return report
}

func buildDistribution(scored []screening.ScreeningResult) screening.MatchDistribution {
	var d screening.MatchDistribution
	for _, r := range scored {
		switch r.Category() {
		case screening.CategoryStrong:
			d.Strong++
		case screening.CategoryModerate:
			d.Moderate++
		default:
			d.Weak++
		}
	}
	return d
}

// buildHistogram buckets scores into ten 10-point bins. The last bin
// absorbs 100 so every scored resume lands in exactly one bin.
func buildHistogram(scored []screening.ScreeningResult) []screening.HistogramBin {
	bins := make([]screening.HistogramBin, screening.HistogramBinCount)
	for i := range bins {
		min := i * 10
		max := min + 9
		label := fmt.Sprintf("%d-%d", min, max)
		if i == screening.HistogramBinCount-1 {
			max = 100
			label = fmt.Sprintf("%d-%d", min, max)
		}
		bins[i] = screening.HistogramBin{Label: label, Min: min, Max: max}
	}

	for _, r := range scored {
		idx := int(r.MatchPercentage) / 10
		if idx >= screening.HistogramBinCount {
			idx = screening.HistogramBinCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx].Count++
	}

	for i := range bins {
		bins[i].Percentage = shareOf(bins[i].Count, len(scored))
	}
	return bins
}

// rankSkills counts skill occurrences across results and ranks them by
// frequency. Ties keep the order in which a skill was first seen.
func rankSkills(scored []screening.ScreeningResult, pick func(screening.ScreeningResult) []string) []screening.SkillFrequency {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, r := range scored {
		for _, skill := range pick(r) {
			if _, ok := counts[skill]; !ok {
				firstSeen[skill] = order
				order++
			}
			counts[skill]++
		}
	}

	ranked := make([]screening.SkillFrequency, 0, len(counts))
	for skill, count := range counts {
		ranked = append(ranked, screening.SkillFrequency{
			Skill:      skill,
			Count:      count,
			Percentage: shareOf(count, len(scored)),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Skill] < firstSeen[ranked[j].Skill]
	})

	if len(ranked) > topSkillLimit {
		ranked = ranked[:topSkillLimit]
	}
	return ranked
}

// sortByScoreThenCreated orders results by match percentage descending,
// breaking ties by earliest result creation time.
func sortByScoreThenCreated(rs []screening.ScreeningResult) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].MatchPercentage != rs[j].MatchPercentage {
			return rs[i].MatchPercentage > rs[j].MatchPercentage
		}
		return rs[i].CreatedAt.Before(rs[j].CreatedAt)
	})
}

// rankCandidates picks the top scored candidates for the report
func rankCandidates(scored []screening.ScreeningResult) []screening.CandidateRank {
	sorted := make([]screening.ScreeningResult, len(scored))
	copy(sorted, scored)
	sortByScoreThenCreated(sorted)

	if len(sorted) > topCandidateLimit {
		sorted = sorted[:topCandidateLimit]
	}

	ranks := make([]screening.CandidateRank, 0, len(sorted))
	for i, r := range sorted {
		skills := r.MatchedSkills
		if len(skills) > candidateSkillPreview {
			skills = skills[:candidateSkillPreview]
		}
		ranks = append(ranks, screening.CandidateRank{
			Rank:            i + 1,
			CandidateID:     r.CandidateID,
			CandidateName:   r.CandidateName,
			FileName:        r.FileName,
			MatchPercentage: r.MatchPercentage,
			Category:        r.Category(),
			TopSkills:       skills,
		})
	}
	return ranks
}

func buildProcessingMetrics(job *screening.ScreeningJob, scored []screening.ScreeningResult, now time.Time) screening.ProcessingMetrics {
	var metrics screening.ProcessingMetrics

	// Wall-clock duration runs from job creation, not from the first
	// dequeue, so queue wait counts toward the batch total.
	end := now
	if job.CompletedAt != nil {
		end = *job.CompletedAt
	}
	total := end.Sub(job.CreatedAt)
	if total < 0 {
		total = 0
	}
	metrics.TotalDurationMs = total.Milliseconds()
	if job.TotalResumes > 0 {
		metrics.AvgMsPerResume = float64(metrics.TotalDurationMs) / float64(job.TotalResumes)
	}

	var sum int64
	for _, r := range scored {
		sum += r.ScoringTimeMs
		if r.ScoringTimeMs > metrics.MaxScoringTimeMs {
			metrics.MaxScoringTimeMs = r.ScoringTimeMs
		}
	}
	if len(scored) > 0 {
		metrics.AvgScoringTimeMs = float64(sum) / float64(len(scored))
	}

	if minutes := total.Minutes(); minutes > 0 {
		metrics.ResumesPerMinute = float64(job.ProcessedCount) / minutes
	}
	return metrics
}

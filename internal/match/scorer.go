package match

import (
	"context"

	"github.com/talentrail/screening/pkg/kernel"
	"github.com/talentrail/screening/screening"
)

// KeywordScorer implements screening.Scorer with deterministic keyword matching
type KeywordScorer struct{}

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{}
}

// Score evaluates resume text against the posting's requirement list
func (s *KeywordScorer) Score(_ context.Context, resumeText string, requirements []kernel.JobRequirement) (*screening.MatchResult, error) {
	reqs := make([]string, 0, len(requirements))
	for _, r := range requirements {
		reqs = append(reqs, r.String())
	}

	ev := Evaluate(resumeText, reqs)

	return &screening.MatchResult{
		MatchPercentage: ev.MatchPercentage,
		MatchedSkills:   ev.MatchedSkills,
		MissingSkills:   ev.MissingSkills,
		Strengths:       ev.Strengths,
		Improvements:    ev.Improvements,
		Recommendation:  ev.Recommendation,
	}, nil
}

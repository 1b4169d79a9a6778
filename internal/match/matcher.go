package match

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// stopWords filters common English words that add noise to keyword matching.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"using": true, "used": true, "well": true, "such": true, "years": true,
	"experience": true, "knowledge": true, "proficiency": true, "strong": true,
	"ability": true, "skills": true, "familiarity": true, "required": true,
	"preferred": true, "plus": true, "must": true, "should": true,
	"in": true, "of": true, "at": true, "on": true, "to": true,
	"an": true, "as": true, "is": true, "by": true, "or": true,
	"be": true, "it": true, "we": true, "if": true, "do": true,
	"no": true, "so": true, "up": true, "us": true, "my": true,
}

// Tokenize splits text into lowercase keywords, skipping stop words.
// Preserves tech tokens like "c++", "c#", "node.js" by treating + # . as word chars.
func Tokenize(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := word.String()
		word.Reset()
		w = strings.TrimRight(w, ".") // drop trailing dots
		if len([]rune(w)) >= 2 && !stopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}

// Evaluation is the outcome of matching one resume against a requirement list
type Evaluation struct {
	MatchPercentage float64
	MatchedSkills   []string
	MissingSkills   []string
	Strengths       []string
	Improvements    []string
	Recommendation  string
}

// Evaluate scores a resume against job requirements. A requirement counts as
// matched when every significant token it contains appears in the resume.
// The percentage is matched requirements over total, rounded to one decimal.
// An empty requirement list scores zero.
func Evaluate(resumeText string, requirements []string) Evaluation {
	resumeKW := Tokenize(resumeText)

	var matched, missing []string
	for _, req := range requirements {
		tokens := Tokenize(req)
		if len(tokens) == 0 {
			continue
		}
		hit := true
		for tok := range tokens {
			if !resumeKW[tok] {
				hit = false
				break
			}
		}
		if hit {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}

	total := len(matched) + len(missing)
	var pct float64
	if total > 0 {
		pct = math.Round(float64(len(matched))/float64(total)*1000) / 10
	}

	return Evaluation{
		MatchPercentage: pct,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Strengths:       strengths(matched),
		Improvements:    improvements(missing),
		Recommendation:  recommendation(pct),
	}
}

func strengths(matched []string) []string {
	out := make([]string, 0, len(matched))
	for _, m := range matched {
		out = append(out, fmt.Sprintf("Demonstrates %s", m))
	}
	return out
}

func improvements(missing []string) []string {
	out := make([]string, 0, len(missing))
	for _, m := range missing {
		out = append(out, fmt.Sprintf("No evidence of %s", m))
	}
	return out
}

func recommendation(pct float64) string {
	switch {
	case pct >= 75:
		return "Strong match, recommend advancing to interview"
	case pct >= 50:
		return "Moderate match, consider for further review"
	default:
		return "Weak match, likely not a fit for this role"
	}
}

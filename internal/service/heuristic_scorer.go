package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/fadilmartias/profile-scorer/internal/model"
)

// HeuristicScorer scores profiles locally without any remote model. Scores
// fall in [0.5, 0.99]; label is 1 above 0.7.
type HeuristicScorer struct{}

func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

type heuristicResult struct {
	Username    string               `json:"username"`
	Score       float64              `json:"score"`
	Label       int                  `json:"label"`
	Explanation heuristicExplanation `json:"explanation"`
}

type heuristicExplanation struct {
	Features         heuristicFeatures `json:"features"`
	ImportantFactors []string          `json:"important_factors"`
}

type heuristicFeatures struct {
	WorkScore float64 `json:"work_score"`
	EduScore  float64 `json:"edu_score"`
	Degree    int     `json:"degree"`
}

var leadershipTitles = []string{"lead", "head", "director", "manager", "chief", "vp", "founder", "principal"}

var largeCompanyRanges = []string{"1001-5000", "5001-10000", "10001+", "10000+"}

func (h *HeuristicScorer) Score(ctx context.Context, input model.ModelInput) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ScoreError{Backend: "local", Message: "canceled", Cause: err}
	}

	years := 0
	for _, w := range input.WorkedAt {
		years += max(w.Years, 0)
	}
	workScore := round(math.Min(15, 5+float64(years)*0.5), 1)
	eduScore := round(math.Min(3, 0.5+0.5*float64(len(input.StudiedAt))), 1)
	degree := degreeWeight(input.StudiedAt)
	network := math.Min(1, float64(input.Connections)/500)

	blend := 0.5*(workScore-5)/10 + 0.25*(eduScore-0.5)/2.5 + 0.25*network
	score := round(0.5+0.49*blend, 2)
	label := 0
	if score > 0.7 {
		label = 1
	}

	return json.Marshal(heuristicResult{
		Username: input.Username,
		Score:    score,
		Label:    label,
		Explanation: heuristicExplanation{
			Features:         heuristicFeatures{WorkScore: workScore, EduScore: eduScore, Degree: degree},
			ImportantFactors: importantFactors(input, degree),
		},
	})
}

func degreeWeight(studied []model.StudiedAt) int {
	weight := 15
	for _, s := range studied {
		level := strings.ToLower(s.DegreeLevel)
		switch {
		case strings.Contains(level, "phd"), strings.Contains(level, "doctor"):
			weight = max(weight, 30)
		case strings.Contains(level, "master"), strings.Contains(level, "mba"):
			weight = max(weight, 25)
		case strings.Contains(level, "bachelor"):
			weight = max(weight, 20)
		}
	}
	return weight
}

func importantFactors(input model.ModelInput, degree int) []string {
	factors := []string{}
	var large, industry, leadership bool
	for _, w := range input.WorkedAt {
		for _, r := range largeCompanyRanges {
			if w.StaffCountRange == r {
				large = true
			}
		}
		if w.CompanyIndustry != "" {
			industry = true
		}
		title := strings.ToLower(w.Title)
		for _, t := range leadershipTitles {
			if strings.Contains(title, t) {
				leadership = true
			}
		}
	}
	if large {
		factors = append(factors, "Worked at large companies")
	}
	if input.Connections >= 500 {
		factors = append(factors, "Strong professional network")
	}
	if industry {
		factors = append(factors, "Relevant industry experience")
	}
	if degree >= 25 {
		factors = append(factors, "Advanced degree")
	}
	if leadership {
		factors = append(factors, "Leadership positions")
	}
	return factors
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

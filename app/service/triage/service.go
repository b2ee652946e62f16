package triage

import (
	"context"
	"strings"

	_ "embed"

	"pukaar/app/client/gemini"
	"pukaar/app/config"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

//go:embed prompt.txt
var promptTemplate string

// Condition display names, as shown to the user and keyed in session data.
const (
	ConditionPneumonia    = "Pneumonia / ARI"
	ConditionDiarrhea     = "Diarrhea"
	ConditionMalnutrition = "Malnutrition"
	ConditionSepsis       = "Neonatal Sepsis"
	ConditionJaundice     = "Neonatal Jaundice"
)

// Result holds likelihood scores (0-100) per screenable condition.
type Result struct {
	Pneumonia    float64 `json:"pneumonia_ari"`
	Diarrhea     float64 `json:"diarrhea"`
	Malnutrition float64 `json:"malnutrition"`
	Sepsis       float64 `json:"neonatal_sepsis"`
	Jaundice     float64 `json:"neonatal_jaundice"`
	LooksNormal  float64 `json:"looks_normal"`

	Screenable         bool   `json:"screenable"`
	OtherIssueDetected bool   `json:"other_issue_detected,omitempty"`
	Response           string `json:"response,omitempty"`
}

// Scores maps condition display names to their likelihoods, excluding the
// looks-normal bucket.
func (r Result) Scores() map[string]float64 {
	return map[string]float64{
		ConditionPneumonia:    r.Pneumonia,
		ConditionDiarrhea:     r.Diarrhea,
		ConditionMalnutrition: r.Malnutrition,
		ConditionSepsis:       r.Sepsis,
		ConditionJaundice:     r.Jaundice,
	}
}

// Top returns the highest-scoring condition. Ties break alphabetically so
// the choice is stable.
func (r Result) Top() (string, float64) {
	scores := r.Scores()

	names := pie.Sort(pie.Keys(scores))

	best := names[0]
	for _, name := range names[1:] {
		if scores[name] > scores[best] {
			best = name
		}
	}

	return best, scores[best]
}

type Service struct {
	client *gemini.Client
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		client: gemini.NewClient(cfg.Gemini.Triage),
	}, nil
}

// Triage scores the parent's free-text description against the five
// screenable conditions.
func (s *Service) Triage(ctx context.Context, input string) (*Result, error) {
	prompt := strings.ReplaceAll(promptTemplate, "{message}", input)

	var result Result
	if err := s.client.CompleteJSON(ctx, prompt, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

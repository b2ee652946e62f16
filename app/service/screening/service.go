package screening

import (
	"context"
	"log/slog"
	"strings"

	_ "embed"

	"pukaar/app/client/gemini"
	"pukaar/app/config"

	"github.com/samber/do"
)

//go:embed prompt.txt
var promptTemplate string

type Service struct {
	client *gemini.Client
	scorer *Scorer
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	scorer, err := NewScorer()
	if err != nil {
		return nil, err
	}

	return &Service{
		client: gemini.NewClient(cfg.Gemini.Screening),
		scorer: scorer,
	}, nil
}

// Screen runs the model assessment for a condition, falling back to the
// local weighted scorer when the model is unreachable. The local scorer also
// pre-empts the model whenever an answer carries an emergency sign.
func (s *Service) Screen(ctx context.Context, condition string, responses []string) (Result, error) {
	key, err := NormalizeKey(condition)
	if err != nil {
		return Result{}, err
	}

	local, err := s.scorer.Score(key, responses, 0)
	if err != nil {
		return Result{}, err
	}

	if local.RedFlag != nil {
		return local, nil
	}

	result, err := s.screenLLM(ctx, key, responses)
	if err != nil {
		slog.Warn("Screening model call failed, using local scorer",
			"condition", key,
			"error", err,
		)

		return local, nil
	}

	result.Condition = key

	return result, nil
}

// ScoreLocal runs only the local weighted scorer.
func (s *Service) ScoreLocal(condition string, responses []string, ageDays float64) (Result, error) {
	return s.scorer.Score(condition, responses, ageDays)
}

func (s *Service) screenLLM(ctx context.Context, key string, responses []string) (Result, error) {
	info := conditions[key]

	var symptoms strings.Builder
	for _, response := range responses {
		symptoms.WriteString("- ")
		symptoms.WriteString(response)
		symptoms.WriteString("\n")
	}

	prompt := strings.ReplaceAll(promptTemplate, "{condition}", info.Name)
	prompt = strings.ReplaceAll(prompt, "{symptoms}", symptoms.String())

	var result Result
	if err := s.client.CompleteJSON(ctx, prompt, &result); err != nil {
		return Result{}, err
	}

	return result, nil
}

package redflag

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

// Service combines the keyword detector with a conservative model pass. A
// keyword hit is final; the model only gets messages the keywords cleared.
type Service struct {
	detector *Detector
	client   *gemini.Client
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	detector, err := NewDetector()
	if err != nil {
		return nil, err
	}

	return &Service{
		detector: detector,
		client:   gemini.NewClient(cfg.Gemini.RedFlag),
	}, nil
}

func (s *Service) Detect(ctx context.Context, text string) Result {
	if result := s.detector.Detect(text); result.Detected {
		return result
	}

	result, err := s.detectLLM(ctx, text)
	if err != nil {
		// The keyword verdict stands when the model is unreachable.
		slog.Warn("Red flag model call failed, keeping keyword verdict", "error", err)
		return Result{Detected: false}
	}

	return result
}

func (s *Service) detectLLM(ctx context.Context, text string) (Result, error) {
	prompt := strings.ReplaceAll(promptTemplate, "{message}", text)

	var result Result
	if err := s.client.CompleteJSON(ctx, prompt, &result); err != nil {
		return Result{}, err
	}

	if result.Detected {
		result.Severity = SeverityHigh

		if result.RecommendedAction == "" {
			result.RecommendedAction = emergencyAction
		}
	}

	return result, nil
}

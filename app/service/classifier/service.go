package classifier

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
	keyword *KeywordClassifier
	client  *gemini.Client
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	keyword, err := NewKeywordClassifier()
	if err != nil {
		return nil, err
	}

	return &Service{
		keyword: keyword,
		client:  gemini.NewClient(cfg.Gemini.Classifier),
	}, nil
}

// Classify runs the keyword pass and asks the model only when keywords were
// inconclusive. A confident keyword verdict is cheaper and deterministic.
func (s *Service) Classify(ctx context.Context, input string) Classification {
	result := s.keyword.Classify(input)
	if result.Confidence == ConfidenceHigh {
		return result
	}

	llmResult, err := s.classifyLLM(ctx, input)
	if err != nil {
		slog.Warn("Context classifier model call failed, keeping keyword verdict", "error", err)
		return result
	}

	return llmResult
}

type llmClassification struct {
	Context    string `json:"classified_context"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

func (s *Service) classifyLLM(ctx context.Context, input string) (Classification, error) {
	prompt := strings.ReplaceAll(promptTemplate, "{message}", input)

	var raw llmClassification
	if err := s.client.CompleteJSON(ctx, prompt, &raw); err != nil {
		return Classification{}, err
	}

	return annotate(Classification{
		Context:    normalizeContext(raw.Context),
		Confidence: confidenceBand(raw.Confidence),
		Reasoning:  raw.Reasoning,
	}), nil
}

// normalizeContext folds model-invented labels into the flows the
// orchestrator actually routes. Developmental and reassurance answers are
// advice conversations.
func normalizeContext(value string) Context {
	switch Context(strings.ToLower(strings.TrimSpace(value))) {
	case ContextScreenable:
		return ContextScreenable
	case ContextNonScreenable:
		return ContextNonScreenable
	case ContextNonMedical:
		return ContextNonMedical
	case ContextFollowUp:
		return ContextFollowUp
	case ContextConsult, Context("developmental"), Context("reassurance"):
		return ContextConsult
	default:
		return ContextScreenable
	}
}

func confidenceBand(score int) Confidence {
	switch {
	case score >= 75:
		return ConfidenceHigh
	case score >= 40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

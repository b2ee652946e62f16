package advice

import (
	"context"
	"strings"

	_ "embed"

	"pukaar/app/client/gemini"
	"pukaar/app/config"

	"github.com/samber/do"
)

//go:embed prompt.txt
var promptTemplate string

// Result is the evidence-based guidance returned by the advice model.
type Result struct {
	Advice        string   `json:"advice"`
	HomeCare      string   `json:"home_care"`
	WhenToConsult string   `json:"when_to_consult"`
	Prevention    string   `json:"prevention,omitempty"`
	References    []string `json:"references,omitempty"`
}

type Service struct {
	client  *gemini.Client
	consult *ConsultModel
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	consult, err := NewConsultModel()
	if err != nil {
		return nil, err
	}

	return &Service{
		client:  gemini.NewClient(cfg.Gemini.Advice),
		consult: consult,
	}, nil
}

// Advise asks the model for guidance on a condition. The condition is free
// text: a screening condition name, "general", "parenting", "emergency" or
// "follow_up" depending on the calling flow.
func (s *Service) Advise(ctx context.Context, condition, concern string) (Result, error) {
	prompt := strings.ReplaceAll(promptTemplate, "{condition}", condition)
	prompt = strings.ReplaceAll(prompt, "{concern}", concern)

	var result Result
	if err := s.client.CompleteJSON(ctx, prompt, &result); err != nil {
		return Result{}, err
	}

	return result, nil
}

// ConsultAdvice serves local parenting guidance for non-clinical concerns.
func (s *Service) ConsultAdvice(input string) ConsultResponse {
	return s.consult.Respond(input)
}

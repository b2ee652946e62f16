package session

import (
	"time"

	"pukaar/app/service/classifier"
	"pukaar/app/service/redflag"
	"pukaar/app/service/screening"
	"pukaar/app/service/triage"
)

// FlowType labels which conversational flow a session is currently in.
type FlowType string

const (
	FlowInitial   FlowType = "initial"
	FlowTriage    FlowType = "triage"
	FlowScreening FlowType = "screening"
	FlowRedFlag   FlowType = "red_flag"
	FlowFollowUp  FlowType = "follow_up"
	FlowConsult   FlowType = "consult"
)

func (f FlowType) Valid() bool {
	switch f {
	case FlowInitial, FlowTriage, FlowScreening, FlowRedFlag, FlowFollowUp, FlowConsult:
		return true
	}

	return false
}

type Message struct {
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Session is the JSON blob persisted per conversation. It mirrors what the
// orchestrator accumulates: history, flow progress and per-agent results.
type Session struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	LastActive  time.Time `json:"last_active"`
	FlowType    FlowType  `json:"flow_type"`
	CurrentStep int       `json:"current_step"`

	History []Message `json:"conversation_history"`

	ContextClassification *classifier.Classification  `json:"context_classification,omitempty"`
	TriageResult          *triage.Result              `json:"triage_result,omitempty"`
	SelectedCondition     string                      `json:"selected_condition,omitempty"`
	ConditionScore        float64                     `json:"condition_score,omitempty"`
	ScreeningResponses    []string                    `json:"screening_responses,omitempty"`
	ScreeningData         map[string]screening.Result `json:"screening_data,omitempty"`
	RedFlags              []redflag.Result            `json:"red_flags,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

// LatestRedFlag returns the most recently recorded red flag.
func (s *Session) LatestRedFlag() (redflag.Result, bool) {
	if len(s.RedFlags) == 0 {
		return redflag.Result{}, false
	}

	return s.RedFlags[len(s.RedFlags)-1], true
}

// RecentHistory returns up to the n most recent messages.
func (s *Session) RecentHistory(n int) []Message {
	if len(s.History) <= n {
		return s.History
	}

	return s.History[len(s.History)-n:]
}

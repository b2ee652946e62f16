package flow

import (
	"context"

	"pukaar/app/service/redflag"
	"pukaar/app/service/session"

	"github.com/samber/do"
	"github.com/samber/oops"
)

type Service struct {
	sessions *session.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		sessions: do.MustInvoke[*session.Service](di),
	}, nil
}

func NewWithSessions(sessions *session.Service) *Service {
	return &Service{sessions: sessions}
}

func (s *Service) Current(ctx context.Context, sessionID string) (State, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return StateError, err
	}

	return StateOf(sess), nil
}

// Transition moves the session to target if the state machine allows it.
func (s *Service) Transition(ctx context.Context, sessionID string, target State) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	current := StateOf(sess)
	if !CanTransition(current, target) {
		return oops.
			With("current_state", current).
			With("target_state", target).
			Errorf("invalid flow transition")
	}

	flowType, step := flowStateFor(target)

	_, err = s.sessions.Update(ctx, sessionID, func(sess *session.Session) {
		sess.FlowType = flowType
		sess.CurrentStep = step
	})

	return err
}

// Action tells the caller what to do next for the session's current state.
type Action struct {
	Action    string `json:"action"`
	Message   string `json:"message"`
	Condition string `json:"condition,omitempty"`
}

func (s *Service) NextAction(ctx context.Context, sessionID string) Action {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Action{Action: "create_session", Message: "Session not found"}
	}

	switch StateOf(sess) {
	case StateInitial:
		return Action{Action: "start_triage", Message: "Please describe the symptoms or concerns"}
	case StateTriage:
		return Action{Action: "perform_triage", Message: "Analyzing symptoms..."}
	case StateConditionSelection:
		if sess.SelectedCondition != "" {
			return Action{
				Action:    "collect_responses",
				Condition: sess.SelectedCondition,
				Message:   "Please answer the following questions",
			}
		}

		return Action{Action: "select_condition", Message: "Please select a condition to screen for"}
	case StateQuestionCollection:
		return Action{Action: "analyze_responses", Message: "Analyzing responses..."}
	case StateAnalysis:
		return Action{Action: "provide_recommendation", Message: "Generating recommendations..."}
	case StateRecommendation:
		return Action{Action: "complete_screening", Message: "Screening completed"}
	case StateRedFlagDetected:
		return Action{Action: "handle_red_flag", Message: "Red flag detected! Urgent attention required."}
	case StateFollowUp:
		return Action{Action: "schedule_follow_up", Message: "Please schedule a follow-up appointment"}
	case StateCompleted:
		return Action{Action: "start_new_session", Message: "Screening completed. Start a new session?"}
	}

	return Action{Action: "handle_error", Message: "An error occurred in the screening flow"}
}

// Resume summarizes the latest red flag and closes out the session.
type Resume struct {
	RedFlag        redflag.Result `json:"red_flag"`
	Message        string         `json:"message"`
	Recommendation string         `json:"recommendation"`
}

func (s *Service) ResumeAfterRedFlag(ctx context.Context, sessionID string) (Resume, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Resume{}, err
	}

	latest, ok := sess.LatestRedFlag()
	if !ok {
		return Resume{}, oops.With("session_id", sessionID).Errorf("no red flags found in session")
	}

	if err = s.Transition(ctx, sessionID, StateCompleted); err != nil {
		return Resume{}, err
	}

	return Resume{
		RedFlag:        latest,
		Message:        "Session resumed after red flag detection",
		Recommendation: "Please seek immediate medical attention",
	}, nil
}

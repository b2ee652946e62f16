package flow

import (
	"pukaar/app/service/session"

	"github.com/samber/lo"
)

// State is a node in the screening conversation state machine. States refine
// the coarse session flow type: the screening flow spans four states keyed by
// the session's step counter.
type State string

const (
	StateInitial            State = "initial"
	StateTriage             State = "triage"
	StateConditionSelection State = "condition_selection"
	StateQuestionCollection State = "question_collection"
	StateAnalysis           State = "analysis"
	StateRecommendation     State = "recommendation"
	StateRedFlagDetected    State = "red_flag_detected"
	StateFollowUp           State = "follow_up"
	StateCompleted          State = "completed"
	StateError              State = "error"
)

var transitions = map[State][]State{
	StateInitial:            {StateTriage},
	StateTriage:             {StateConditionSelection, StateRedFlagDetected},
	StateConditionSelection: {StateQuestionCollection},
	StateQuestionCollection: {StateAnalysis, StateRedFlagDetected},
	StateAnalysis:           {StateRecommendation},
	StateRecommendation:     {StateFollowUp, StateCompleted},
	StateRedFlagDetected:    {StateCompleted},
	StateFollowUp:           {StateCompleted},
	StateCompleted:          {},
	StateError:              {StateInitial, StateTriage, StateCompleted},
}

var screeningSteps = []State{
	StateConditionSelection,
	StateQuestionCollection,
	StateAnalysis,
	StateRecommendation,
}

// StateOf maps a session's flow type and step counter onto a state.
func StateOf(sess *session.Session) State {
	switch sess.FlowType {
	case session.FlowInitial:
		return StateInitial
	case session.FlowTriage:
		return StateTriage
	case session.FlowScreening:
		if sess.CurrentStep >= 0 && sess.CurrentStep < len(screeningSteps) {
			return screeningSteps[sess.CurrentStep]
		}

		return StateError
	case session.FlowRedFlag:
		return StateRedFlagDetected
	case session.FlowFollowUp, session.FlowConsult:
		return StateFollowUp
	}

	return StateError
}

func CanTransition(from, to State) bool {
	return lo.Contains(transitions[from], to)
}

// flowStateFor maps a state back onto the session's flow type and step.
func flowStateFor(state State) (session.FlowType, int) {
	switch state {
	case StateTriage:
		return session.FlowTriage, 0
	case StateRedFlagDetected:
		return session.FlowRedFlag, 0
	case StateFollowUp:
		return session.FlowFollowUp, 0
	}

	for step, s := range screeningSteps {
		if s == state {
			return session.FlowScreening, step
		}
	}

	return session.FlowInitial, 0
}

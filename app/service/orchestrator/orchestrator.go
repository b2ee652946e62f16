package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pukaar/app/service/advice"
	"pukaar/app/service/classifier"
	"pukaar/app/service/redflag"
	"pukaar/app/service/screening"
	"pukaar/app/service/session"
	"pukaar/app/service/triage"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

// Metadata carries structured hints alongside the free-text message.
type Metadata struct {
	Condition string   `json:"condition,omitempty"`
	Responses []string `json:"responses,omitempty"`
}

// Reply is the orchestrator's answer to one message: the text to show the
// parent plus whatever structured results the flow produced.
type Reply struct {
	SessionID      string           `json:"session_id"`
	FlowType       session.FlowType `json:"flow_type"`
	CurrentStep    int              `json:"current_step"`
	Response       string           `json:"response"`
	ProcessingTime float64          `json:"processing_time"`

	Classification    *classifier.Classification `json:"classification,omitempty"`
	TriageData        *triage.Result             `json:"triage_data,omitempty"`
	SelectedCondition string                     `json:"selected_condition,omitempty"`
	ConditionScore    float64                    `json:"condition_score,omitempty"`
	Questions         []screening.Question       `json:"questions,omitempty"`
	ScreeningData     *screening.Result          `json:"screening_data,omitempty"`
	AdviceData        *advice.Result             `json:"advice_data,omitempty"`
	ConsultAdvice     *advice.ConsultResponse    `json:"consult_advice,omitempty"`
	RedFlag           *redflag.Result            `json:"red_flag,omitempty"`
	EmergencyLevel    redflag.Severity           `json:"emergency_level,omitempty"`

	Error        bool   `json:"error,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func errorReply(message, response string) *Reply {
	return &Reply{
		Error:        true,
		ErrorMessage: message,
		Response:     response,
	}
}

// Service routes each message to the agent matching the session's flow,
// with red flag detection running over every message regardless of flow.
type Service struct {
	sessions   *session.Service
	classifier *classifier.Service
	triage     *triage.Service
	redFlags   *redflag.Service
	screening  *screening.Service
	advice     *advice.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		sessions:   do.MustInvoke[*session.Service](di),
		classifier: do.MustInvoke[*classifier.Service](di),
		triage:     do.MustInvoke[*triage.Service](di),
		redFlags:   do.MustInvoke[*redflag.Service](di),
		screening:  do.MustInvoke[*screening.Service](di),
		advice:     do.MustInvoke[*advice.Service](di),
	}, nil
}

// ProcessMessage runs one turn of the conversation. A missing or expired
// session id silently gets a fresh session. Red flag detection runs
// concurrently with the flow handler and overrides its reply on a hit.
func (s *Service) ProcessMessage(ctx context.Context, sessionID, input string, meta Metadata) (*Reply, error) {
	start := time.Now()

	sess, err := s.ensureSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sessionID = sess.ID

	if err = s.sessions.AppendMessage(ctx, sessionID, "user", input, nil); err != nil {
		return nil, err
	}

	var flagResult redflag.Result

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		flagResult = s.redFlags.Detect(groupCtx, input)
		return nil
	})

	var reply *Reply

	switch sess.FlowType {
	case session.FlowTriage:
		reply = s.handleTriage(ctx, sessionID, input)
	case session.FlowScreening:
		reply = s.handleScreening(ctx, sessionID, input, meta)
	case session.FlowRedFlag:
		reply = s.handleRedFlagFlow(ctx, sessionID, input)
	case session.FlowFollowUp:
		reply = s.handleFollowUp(ctx, sessionID, input)
	case session.FlowConsult:
		reply = s.handleConsult(ctx, sessionID, input)
	default:
		reply = s.handleInitial(ctx, sessionID, input)
	}

	_ = group.Wait()

	if flagResult.Detected {
		reply = s.handleRedFlagDetected(ctx, sessionID, flagResult)
	}

	if reply.Response != "" {
		if err = s.sessions.AppendMessage(ctx, sessionID, "system", reply.Response, nil); err != nil {
			slog.Warn("Failed to record system response", "session_id", sessionID, "error", err)
		}
	}

	if sess, err = s.sessions.Get(ctx, sessionID); err == nil {
		reply.FlowType = sess.FlowType
		reply.CurrentStep = sess.CurrentStep
	}

	reply.SessionID = sessionID
	reply.ProcessingTime = time.Since(start).Seconds()

	return reply, nil
}

func (s *Service) ensureSession(ctx context.Context, sessionID string) (*session.Session, error) {
	if sessionID != "" {
		sess, err := s.sessions.Get(ctx, sessionID)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return nil, err
		}
	}

	sess, err := s.sessions.Create(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("Created new session", "session_id", sess.ID)

	return sess, nil
}

func (s *Service) handleInitial(ctx context.Context, sessionID, input string) *Reply {
	classification := s.classifier.Classify(ctx, input)

	_, err := s.sessions.Update(ctx, sessionID, func(sess *session.Session) {
		sess.ContextClassification = &classification
	})
	if err != nil {
		return errorReply("Failed to classify context",
			"I'm having trouble understanding your concern. Could you please provide more details?")
	}

	switch classification.Context {
	case classifier.ContextScreenable:
		if err = s.sessions.SetFlow(ctx, sessionID, session.FlowTriage); err != nil {
			return errorReply(err.Error(),
				"I'm having trouble processing your request. Please try again.")
		}

		reply := s.handleTriage(ctx, sessionID, input)
		reply.Classification = &classification

		return reply

	case classifier.ContextNonScreenable:
		result, err := s.advice.Advise(ctx, "general", input)
		if err != nil {
			return errorReply("Failed to get advice",
				"I recommend consulting with a healthcare professional about this concern.")
		}

		return &Reply{
			Classification: &classification,
			AdviceData:     &result,
			Response:       result.Advice + "\n\n" + result.WhenToConsult,
		}

	case classifier.ContextFollowUp:
		if err = s.sessions.SetFlow(ctx, sessionID, session.FlowFollowUp); err != nil {
			return errorReply(err.Error(),
				"For follow-up concerns, I recommend consulting with your healthcare provider.")
		}

		reply := s.handleFollowUp(ctx, sessionID, input)
		reply.Classification = &classification

		return reply

	case classifier.ContextConsult:
		if err = s.sessions.SetFlow(ctx, sessionID, session.FlowConsult); err != nil {
			return errorReply(err.Error(),
				"I'm having trouble processing your request. Please try again.")
		}

		reply := s.handleConsult(ctx, sessionID, input)
		reply.Classification = &classification

		return reply

	default: // non_medical
		result, err := s.advice.Advise(ctx, "parenting", input)
		if err != nil {
			// The local parenting model always has an answer.
			consult := s.advice.ConsultAdvice(input)

			return &Reply{
				Classification: &classification,
				ConsultAdvice:  &consult,
				Response:       consultResponseText(consult),
			}
		}

		response := result.Advice
		if response == "" {
			response = "This appears to be a general parenting question. I can provide general guidance, but for specific concerns, please consult with a healthcare professional."
		}

		return &Reply{
			Classification: &classification,
			AdviceData:     &result,
			Response:       response,
		}
	}
}

func (s *Service) handleTriage(ctx context.Context, sessionID, input string) *Reply {
	result, err := s.triage.Triage(ctx, input)
	if err != nil {
		return errorReply("Failed to perform triage",
			"I'm having trouble analyzing your concern. Could you please provide more specific details about the symptoms?")
	}

	if _, err = s.sessions.Update(ctx, sessionID, func(sess *session.Session) {
		sess.TriageResult = result
	}); err != nil {
		return errorReply(err.Error(),
			"I'm having trouble analyzing your concern. Please try again with more details about the symptoms.")
	}

	if !result.Screenable {
		response := result.Response
		if response == "" {
			response = "Based on your description, I recommend consulting with a healthcare professional."
		}

		return &Reply{
			TriageData: result,
			Response:   response,
		}
	}

	condition, score := result.Top()

	if err = s.sessions.SetFlow(ctx, sessionID, session.FlowScreening); err != nil {
		return errorReply(err.Error(),
			"I'm having trouble analyzing your concern. Please try again with more details about the symptoms.")
	}

	if _, err = s.sessions.Update(ctx, sessionID, func(sess *session.Session) {
		sess.SelectedCondition = condition
		sess.ConditionScore = score
	}); err != nil {
		return errorReply(err.Error(),
			"I'm having trouble analyzing your concern. Please try again with more details about the symptoms.")
	}

	response := result.Response
	if response == "" {
		response = "Based on your description, I'd like to ask a few more questions to better understand the situation."
	}

	return &Reply{
		TriageData:        result,
		SelectedCondition: condition,
		ConditionScore:    score,
		Response:          response,
	}
}

func (s *Service) handleScreening(ctx context.Context, sessionID, input string, meta Metadata) *Reply {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return errorReply(err.Error(),
			"I'm having trouble processing your screening information. Please try again.")
	}

	selected := sess.SelectedCondition
	if selected == "" {
		selected = meta.Condition
	}
	if selected == "" {
		return errorReply("No condition selected for screening",
			"I'm not sure which condition we're discussing. Could you please provide more details about the symptoms?")
	}

	switch sess.CurrentStep {
	case 0: // condition selection done at triage, announce the questions
		if err = s.sessions.AdvanceStep(ctx, sessionID); err != nil {
			return errorReply(err.Error(),
				"I'm having trouble processing your screening information. Please try again.")
		}

		reply := &Reply{
			SelectedCondition: selected,
			Response:          fmt.Sprintf("I'd like to ask you some questions about %s. Could you provide more details about the symptoms?", selected),
		}

		if info, err := screening.Info(selected); err == nil {
			reply.Questions = info.Questions
		}

		return reply

	case 1: // collect answers and analyze
		responses := meta.Responses
		if len(responses) == 0 {
			responses = []string{input}
		}

		if _, err = s.sessions.Update(ctx, sessionID, func(sess *session.Session) {
			sess.ScreeningResponses = responses
		}); err != nil {
			return errorReply(err.Error(),
				"I'm having trouble processing your screening information. Please try again.")
		}

		if err = s.sessions.AdvanceStep(ctx, sessionID); err != nil {
			return errorReply(err.Error(),
				"I'm having trouble processing your screening information. Please try again.")
		}

		result, err := s.screening.Screen(ctx, selected, responses)
		if err != nil {
			return errorReply("Failed to analyze screening responses",
				"I'm having trouble analyzing your responses. Could you please provide more details?")
		}

		if err = s.sessions.SetScreeningData(ctx, sessionID, selected, result); err != nil {
			return errorReply(err.Error(),
				"I'm having trouble processing your screening information. Please try again.")
		}

		if err = s.sessions.AdvanceStep(ctx, sessionID); err != nil {
			return errorReply(err.Error(),
				"I'm having trouble processing your screening information. Please try again.")
		}

		return &Reply{
			ScreeningData:     &result,
			SelectedCondition: selected,
			Response:          screeningResponseText(selected, result),
		}

	default: // assessment done, serve follow-up advice on it
		result, ok := sess.ScreeningData[selected]
		if !ok {
			return errorReply("No screening data available",
				"I don't have enough information to provide specific guidance. Could you please describe the symptoms again?")
		}

		adviceResult, err := s.advice.Advise(ctx, selected, input)
		if err != nil {
			response := fmt.Sprintf("For %s, I recommend:\n\n- %s\n- %s",
				selected,
				orDefault(result.Recommendations.Action, "Consult with a healthcare professional"),
				orDefault(result.Recommendations.Monitoring, "Monitor symptoms closely"))

			return &Reply{
				ScreeningData:     &result,
				SelectedCondition: selected,
				Response:          response,
			}
		}

		response := fmt.Sprintf("Regarding %s:\n\n%s\n\nHome care: %s\n\nWhen to consult a doctor: %s",
			selected, adviceResult.Advice, adviceResult.HomeCare, adviceResult.WhenToConsult)

		return &Reply{
			ScreeningData:     &result,
			AdviceData:        &adviceResult,
			SelectedCondition: selected,
			Response:          response,
		}
	}
}

func (s *Service) handleRedFlagFlow(ctx context.Context, sessionID, input string) *Reply {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return errorReply(err.Error(),
			"This appears to be an urgent situation. Please seek immediate medical attention.")
	}

	latest, ok := sess.LatestRedFlag()
	if !ok {
		// Nothing recorded, drop back into triage.
		if err = s.sessions.SetFlow(ctx, sessionID, session.FlowTriage); err != nil {
			return errorReply(err.Error(),
				"I'm having trouble processing your request. Please try again.")
		}

		return s.handleTriage(ctx, sessionID, input)
	}

	adviceResult, err := s.advice.Advise(ctx, "emergency", input)
	if err != nil {
		return &Reply{
			RedFlag:  &latest,
			Response: urgentResponseText(latest) + "\n\nRecommendation: " + latest.RecommendedAction,
		}
	}

	response := urgentResponseText(latest) +
		"\n\nRecommendation: " + latest.RecommendedAction +
		"\n\nWhile seeking help: " + adviceResult.HomeCare

	return &Reply{
		RedFlag:    &latest,
		AdviceData: &adviceResult,
		Response:   response,
	}
}

func (s *Service) handleFollowUp(ctx context.Context, sessionID, input string) *Reply {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return errorReply("Session not found",
			"Session not found. Please start a new session.")
	}

	prompt := followUpPrompt(sess, input)

	condition := sess.SelectedCondition
	if condition == "" {
		condition = "follow_up"
	}

	adviceResult, err := s.advice.Advise(ctx, condition, prompt)
	if err != nil {
		return errorReply("Failed to get follow-up advice",
			"For follow-up concerns, I recommend consulting with your healthcare provider.")
	}

	response := fmt.Sprintf("%s\n\nFor ongoing care: %s\n\nWhen to consult again: %s",
		adviceResult.Advice, adviceResult.HomeCare, adviceResult.WhenToConsult)

	return &Reply{
		AdviceData: &adviceResult,
		Response:   response,
	}
}

func (s *Service) handleConsult(ctx context.Context, sessionID, input string) *Reply {
	consult := s.advice.ConsultAdvice(input)

	return &Reply{
		ConsultAdvice: &consult,
		Response:      consultResponseText(consult),
	}
}

func (s *Service) handleRedFlagDetected(ctx context.Context, sessionID string, flag redflag.Result) *Reply {
	if err := s.sessions.AddRedFlag(ctx, sessionID, flag); err != nil {
		slog.Warn("Failed to record red flag", "session_id", sessionID, "error", err)
	}

	if err := s.sessions.SetFlow(ctx, sessionID, session.FlowRedFlag); err != nil {
		slog.Warn("Failed to switch to red flag flow", "session_id", sessionID, "error", err)
	}

	response := urgentResponseText(flag) + "\n\nRecommendation: " + flag.RecommendedAction

	switch flag.Severity {
	case redflag.SeverityHigh:
		response += "\n\nPlease seek immediate emergency care."
	case redflag.SeverityMedium:
		response += "\n\nPlease contact your healthcare provider right away."
	default:
		response += "\n\nPlease consult with a healthcare provider as soon as possible."
	}

	return &Reply{
		RedFlag:        &flag,
		EmergencyLevel: flag.Severity,
		Response:       response,
	}
}

func urgentResponseText(flag redflag.Result) string {
	trigger := flag.Trigger
	if trigger == "" {
		return "URGENT: This appears to be an emergency situation."
	}

	return "URGENT: The reported sign \"" + trigger + "\" can indicate a medical emergency."
}

func screeningResponseText(condition string, result screening.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Based on your description about %s, here's my assessment:\n\n", condition)
	fmt.Fprintf(&sb, "%s\n\n", result.Assessment)
	fmt.Fprintf(&sb, "Risk Level: %s\n", capitalize(string(result.RiskLevel)))
	fmt.Fprintf(&sb, "Recommended Action: %s\n", result.Recommendations.Action)
	fmt.Fprintf(&sb, "Timeframe: %s\n\n", result.Recommendations.Timeframe)
	fmt.Fprintf(&sb, "Things to monitor: %s\n", result.Recommendations.Monitoring)
	fmt.Fprintf(&sb, "Warning signs: %s", result.Recommendations.WarningSigns)

	return sb.String()
}

func consultResponseText(consult advice.ConsultResponse) string {
	var sb strings.Builder

	sb.WriteString(consult.Response.Acknowledgment)
	sb.WriteString("\n")

	for _, line := range consult.Response.GentleAdvice {
		sb.WriteString("\n- ")
		sb.WriteString(line)
	}
	for _, line := range consult.Response.BehavioralTips {
		sb.WriteString("\n- ")
		sb.WriteString(line)
	}

	sb.WriteString("\n\n")
	sb.WriteString(consult.Response.ConsultationOffer)
	sb.WriteString("\n\n")
	sb.WriteString(consult.Response.Disclaimer)

	return sb.String()
}

// followUpPrompt packs the session context around the parent's question so
// the advice model answers with full history.
func followUpPrompt(sess *session.Session, input string) string {
	var lines []string

	if sess.SelectedCondition != "" {
		lines = append(lines, "- Main condition: "+sess.SelectedCondition)
	}
	if sess.TriageResult != nil {
		lines = append(lines, fmt.Sprintf("- Triage result: %+v", *sess.TriageResult))
	}
	if len(sess.ScreeningData) > 0 {
		lines = append(lines, fmt.Sprintf("- Screening data: %+v", sess.ScreeningData))
	}
	if len(sess.RedFlags) > 0 {
		lines = append(lines, fmt.Sprintf("- Red flags: %+v", sess.RedFlags))
	}

	var history []string
	for _, msg := range sess.RecentHistory(5) {
		history = append(history, msg.Role+": "+msg.Content)
	}

	lines = append(lines,
		"- Previous conversation:\n"+strings.Join(history, "\n"),
		"- Parent follow-up question: "+input,
		"Instructions: Provide clear, safe, evidence-based advice. If the follow-up question suggests a new red flag, escalate and recommend immediate medical attention.",
	)

	return strings.Join(lines, "\n")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

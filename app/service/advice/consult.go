package advice

import (
	"pukaar/app/util/textmatch"
)

// ConsultResponse is the parenting guidance produced for non-clinical
// concerns: gentle reassurance, actionable tips and an offer to connect the
// parent with the right specialist.
type ConsultResponse struct {
	Topic      string          `json:"topic_identified"`
	ExpertType string          `json:"expert_type"`
	Response   ConsultGuidance `json:"response"`
}

type ConsultGuidance struct {
	Acknowledgment    string   `json:"acknowledgment"`
	GentleAdvice      []string `json:"gentle_advice"`
	BehavioralTips    []string `json:"behavioral_tips"`
	ConsultationOffer string   `json:"consultation_offer"`
	Disclaimer        string   `json:"disclaimer"`
}

const consultDisclaimer = "This guidance is for general parenting support and should not replace professional medical advice."

var topicOrder = []string{TopicFeeding, TopicSleep, TopicBehavior, TopicDevelopment, TopicGeneral}

// ConsultModel maps a parent's concern onto a parenting topic and serves
// canned guidance for it. It needs no model call and never fails.
type ConsultModel struct {
	matchers map[string]*textmatch.Matcher
}

func NewConsultModel() (*ConsultModel, error) {
	matchers := make(map[string]*textmatch.Matcher, len(topics))

	for topic, info := range topics {
		matcher, err := textmatch.New(info.keywords)
		if err != nil {
			return nil, err
		}

		matchers[topic] = matcher
	}

	return &ConsultModel{matchers: matchers}, nil
}

// IdentifyTopic scores each topic by keyword hits and returns the best one,
// or "general" when nothing matches. Earlier topics win ties.
func (m *ConsultModel) IdentifyTopic(input string) string {
	best := TopicGeneral
	bestScore := 0

	for _, topic := range topicOrder {
		score := len(m.matchers[topic].Matches(input))
		if score > bestScore {
			best = topic
			bestScore = score
		}
	}

	return best
}

func (m *ConsultModel) Respond(input string) ConsultResponse {
	topic := m.IdentifyTopic(input)
	expert := topics[topic].expert

	template, ok := guidanceTemplates[topic]
	if !ok {
		template = generalGuidance
	}

	return ConsultResponse{
		Topic:      topic,
		ExpertType: expert,
		Response: ConsultGuidance{
			Acknowledgment:    "I understand you're concerned about your baby's " + topic + ". This is a common parenting challenge.",
			GentleAdvice:      template.gentleAdvice[:2],
			BehavioralTips:    template.behavioralTips[:2],
			ConsultationOffer: "Would you like to consult a " + expert + "? We can help you book an appointment.",
			Disclaimer:        consultDisclaimer,
		},
	}
}

package advice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsultModel_IdentifyTopic(t *testing.T) {
	model, err := NewConsultModel()
	require.NoError(t, err)

	cases := []struct {
		input string
		topic string
	}{
		{"My baby won't sleep through the night", TopicSleep},
		{"She is refusing food and fights the bottle", TopicFeeding},
		{"He has tantrums and cries all the time", TopicBehavior},
		{"My baby isn't crawling yet, is that a milestones problem?", TopicDevelopment},
		{"I need some parenting guidance", TopicGeneral},
		{"Totally unrelated message", TopicGeneral},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.topic, model.IdentifyTopic(tc.input))
		})
	}
}

func TestConsultModel_Respond(t *testing.T) {
	req := require.New(t)

	model, err := NewConsultModel()
	req.NoError(err)

	response := model.Respond("My baby cries at bedtime and won't nap")

	req.Equal(TopicSleep, response.Topic)
	req.Equal("pediatric sleep specialist", response.ExpertType)
	req.Contains(response.Response.Acknowledgment, "sleep")
	req.Len(response.Response.GentleAdvice, 2)
	req.Len(response.Response.BehavioralTips, 2)
	req.Contains(response.Response.ConsultationOffer, "pediatric sleep specialist")
	req.NotEmpty(response.Response.Disclaimer)
}

func TestConsultModel_GeneralFallbackGuidance(t *testing.T) {
	req := require.New(t)

	model, err := NewConsultModel()
	req.NoError(err)

	response := model.Respond("Totally unrelated message")

	req.Equal(TopicGeneral, response.Topic)
	req.Equal("pediatrician", response.ExpertType)
	req.Len(response.Response.GentleAdvice, 2)
	req.Len(response.Response.BehavioralTips, 2)
}

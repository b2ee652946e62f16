package redflag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetector_HighSeverityGroups(t *testing.T) {
	detector, err := NewDetector()
	require.NoError(t, err)

	cases := []struct {
		name     string
		text     string
		flagType string
	}{
		{"seizure", "my baby had a seizure this morning", "convulsions_seizures"},
		{"unconscious", "he is unconscious and won't respond", "unconsciousness"},
		{"blue lips", "I noticed blue lips while she was sleeping", "cyanosis"},
		{"chest indrawing", "I can see chest indrawing when she breathes", "chest_indrawing"},
		{"grunting", "the baby is making grunting sounds", "grunting"},
		{"no urination", "no wet diaper for hours now", "extended_no_urination"},
		{"bloody stools", "there is blood in stool today", "bloody_stools"},
		{"vomits everything", "he is vomiting everything I feed him", "vomiting_everything"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			result := detector.Detect(tc.text)

			req.True(result.Detected)
			req.Equal(tc.flagType, result.FlagType)
			req.Equal(SeverityHigh, result.Severity)
			req.NotEmpty(result.Trigger)
			req.Equal("Rush to emergency immediately", result.RecommendedAction)
		})
	}
}

func TestDetector_EmergencyLanguageWithConcerningSymptom(t *testing.T) {
	req := require.New(t)

	detector, err := NewDetector()
	req.NoError(err)

	// Emotional language plus a concerning (not by itself dangerous) symptom.
	result := detector.Detect("I'm so scared, her breathing seems off")

	req.True(result.Detected)
	req.Equal(SeverityMedium, result.Severity)
	req.Equal("emergency_language_breathing", result.FlagType)
}

func TestDetector_EmergencyLanguageAloneIsNotAFlag(t *testing.T) {
	req := require.New(t)

	detector, err := NewDetector()
	req.NoError(err)

	result := detector.Detect("I'm so worried about the baby's sleep schedule")

	req.False(result.Detected)
}

func TestDetector_NormalMessages(t *testing.T) {
	detector, err := NewDetector()
	require.NoError(t, err)

	for _, text := range []string{
		"my baby is feeding well and smiling",
		"when should we start solid foods?",
		"she slept through the night yesterday",
		"",
	} {
		result := detector.Detect(text)
		require.False(t, result.Detected, "unexpected flag for %q", text)
	}
}

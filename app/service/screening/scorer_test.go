package screening

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScorer_RedFlagShortCircuits(t *testing.T) {
	req := require.New(t)

	scorer, err := NewScorer()
	req.NoError(err)

	result, err := scorer.Score("Pneumonia / ARI", []string{
		"yes",
		"she had a seizure during the night",
	}, 0)
	req.NoError(err)

	req.Equal(KeyPneumonia, result.Condition)
	req.Equal(RiskHigh, result.RiskLevel)
	req.Equal(UrgencyImmediate, result.Urgency)
	req.Equal("local", result.Algorithm)
	req.NotNil(result.RedFlag)
	req.Equal("convulsions_seizures", result.RedFlag.FlagType)
	req.Contains(result.Assessment, "seizure")
}

func TestScorer_HighRiskNeonatalPneumonia(t *testing.T) {
	req := require.New(t)

	scorer, err := NewScorer()
	req.NoError(err)

	result, err := scorer.Score(KeyPneumonia, []string{
		"yes, she is taking about 75 breaths per minute",
		"yes, it is clearly visible",
		"yes, often",
		"yes she coughs",
		"75",
		"no",
		"yes",
	}, 10)
	req.NoError(err)

	req.Equal(RiskHigh, result.RiskLevel)
	req.Equal(UrgencyImmediate, result.Urgency)
	req.Nil(result.RedFlag)
	req.Greater(result.Score, 70.0)
	req.Equal("Seek immediate medical attention", result.Recommendations.Action)
	req.NotEmpty(result.Recommendations.WarningSigns)
}

func TestScorer_NoSymptomsIsMinimal(t *testing.T) {
	req := require.New(t)

	scorer, err := NewScorer()
	req.NoError(err)

	result, err := scorer.Score(KeyPneumonia, []string{
		"no", "no", "no", "no", "around 40", "no", "no",
	}, 120)
	req.NoError(err)

	req.Equal(RiskMinimal, result.RiskLevel)
	req.Equal(UrgencyMonitor, result.Urgency)
	req.Zero(result.Score)
	req.Contains(result.Assessment, "No concerning signs")
}

func TestScorer_UnknownCondition(t *testing.T) {
	req := require.New(t)

	scorer, err := NewScorer()
	req.NoError(err)

	_, err = scorer.Score("flu", []string{"yes"}, 0)
	req.Error(err)
	req.True(errors.Is(err, ErrUnknownCondition))
}

func TestExtractNumbers(t *testing.T) {
	req := require.New(t)

	values := extractNumbers("She is breathing 62 times a minute. The baby is 10 days old and has 8 stools per day.")

	req.Equal(62.0, values["respiratory_rate"])
	req.Equal(10.0, values["age_days"])
	req.Equal(8.0, values["stool_frequency"])
}

func TestAgeGroupOf(t *testing.T) {
	cases := []struct {
		days       float64
		group      string
		multiplier float64
	}{
		{0, "neonatal", 1.5},
		{28, "neonatal", 1.5},
		{29, "young_infant", 1.3},
		{90, "young_infant", 1.3},
		{91, "older_infant", 1.0},
		{365, "older_infant", 1.0},
		{1000, "older_infant", 1.0},
	}

	for _, tc := range cases {
		group, multiplier := ageGroupOf(tc.days)
		require.Equal(t, tc.group, group, "days=%v", tc.days)
		require.Equal(t, tc.multiplier, multiplier, "days=%v", tc.days)
	}
}

func TestInteractionMultiplier(t *testing.T) {
	req := require.New(t)

	// Fast breathing with visible indrawing compounds the risk.
	req.InDelta(1.3, interactionMultiplier(KeyPneumonia, map[string]string{
		"respiratory_rate": "high",
		"chest_indrawing":  "moderate",
	}), 0.001)

	// Two interactions multiply.
	req.InDelta(1.3*1.5, interactionMultiplier(KeyPneumonia, map[string]string{
		"respiratory_rate": "very_high",
		"chest_indrawing":  "moderate",
		"cyanosis":         "mild",
	}), 0.001)

	req.InDelta(1.5, interactionMultiplier(KeySepsis, map[string]string{
		"temperature":   "hypothermia",
		"consciousness": "lethargic",
	}), 0.001)

	req.InDelta(1.0, interactionMultiplier(KeyDiarrhea, map[string]string{
		"stool_frequency": "increased",
	}), 0.001)
}

func TestClassifySeverity_Sepsis(t *testing.T) {
	req := require.New(t)

	symptoms := classifySeverity(KeySepsis, []string{
		"she has a high fever of 39",
		"refusing to feed",
		"very sleepy",
		"no",
	}, nil)

	req.Equal("high_fever", symptoms["temperature"])
	req.Equal("refusing", symptoms["feeding_status"])
	req.Equal("lethargic", symptoms["consciousness"])
	req.Equal("normal", symptoms["irritability"])
}

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pneumonia_ari", KeyPneumonia},
		{"Pneumonia / ARI", KeyPneumonia},
		{"Neonatal Jaundice", KeyJaundice},
		{"neonatal sepsis", KeySepsis},
		{"Diarrhea", KeyDiarrhea},
		{"malnutrition", KeyMalnutrition},
	}

	for _, tc := range cases {
		got, err := NormalizeKey(tc.in)
		require.NoError(t, err, "in=%q", tc.in)
		require.Equal(t, tc.want, got, "in=%q", tc.in)
	}

	_, err := NormalizeKey("common cold")
	require.Error(t, err)
}

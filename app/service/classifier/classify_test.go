package classifier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeywordClassifier_Contexts(t *testing.T) {
	classifier, err := NewKeywordClassifier()
	require.NoError(t, err)

	cases := []struct {
		name       string
		input      string
		context    Context
		confidence Confidence
	}{
		{
			name:       "emergency outranks everything",
			input:      "this is an emergency, she swallowed something",
			context:    ContextNonScreenable,
			confidence: ConfidenceHigh,
		},
		{
			name:       "screenable symptoms",
			input:      "my baby has a cough and fast breathing",
			context:    ContextScreenable,
			confidence: ConfidenceHigh,
		},
		{
			name:       "follow up after treatment",
			input:      "the antibiotics did not help, she is still sick",
			context:    ContextFollowUp,
			confidence: ConfidenceHigh,
		},
		{
			name:       "advice question",
			input:      "should I give vitamin D drops daily",
			context:    ContextConsult,
			confidence: ConfidenceHigh,
		},
		{
			name:       "question without screenable symptom",
			input:      "when do babies start teething usually",
			context:    ContextConsult,
			confidence: ConfidenceMedium,
		},
		{
			name:       "non-screenable medical",
			input:      "she has a diaper rash and eczema",
			context:    ContextNonScreenable,
			confidence: ConfidenceHigh,
		},
		{
			name:       "non-medical parenting",
			input:      "looking for tips on bedtime and naps",
			context:    ContextNonMedical,
			confidence: ConfidenceHigh,
		},
		{
			name:       "unclear defaults to screening",
			input:      "hmm something seems off today",
			context:    ContextScreenable,
			confidence: ConfidenceLow,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			result := classifier.Classify(tc.input)

			req.Equal(tc.context, result.Context)
			req.Equal(tc.confidence, result.Confidence)
			req.NotEmpty(result.Reasoning)
			req.NotEmpty(result.NextAction)
			req.NotEmpty(result.ExpertType)
		})
	}
}

func TestKeywordClassifier_DetectedConditions(t *testing.T) {
	req := require.New(t)

	classifier, err := NewKeywordClassifier()
	req.NoError(err)

	result := classifier.Classify("my baby has a cough and fast breathing")

	req.Equal(ContextScreenable, result.Context)
	req.Equal([]string{"pneumonia_ari"}, result.DetectedConditions)
	req.Contains(result.Reasoning, "pneumonia ari")
}

func TestKeywordClassifier_MultipleConditions(t *testing.T) {
	req := require.New(t)

	classifier, err := NewKeywordClassifier()
	req.NoError(err)

	result := classifier.Classify("cough with loose stool and yellow skin")

	req.Equal(ContextScreenable, result.Context)
	// Condition names come back sorted.
	req.Equal([]string{"diarrhea", "neonatal_jaundice", "pneumonia_ari"}, result.DetectedConditions)
}

func TestKeywordClassifier_DevelopmentScreensMalnutrition(t *testing.T) {
	req := require.New(t)

	classifier, err := NewKeywordClassifier()
	req.NoError(err)

	// "development" appears in both the malnutrition and the parenting
	// inventories; the screenable match wins.
	result := classifier.Classify("her development seems slower than other babies")

	req.Equal(ContextScreenable, result.Context)
	req.Equal([]string{"malnutrition"}, result.DetectedConditions)
}

func TestNormalizeContext(t *testing.T) {
	cases := []struct {
		raw  string
		want Context
	}{
		{"medical_screenable", ContextScreenable},
		{"medical_non_screenable", ContextNonScreenable},
		{"non_medical", ContextNonMedical},
		{"follow_up", ContextFollowUp},
		{"consult", ContextConsult},
		{"developmental", ContextConsult},
		{"reassurance", ContextConsult},
		{"  Consult  ", ContextConsult},
		{"made_up_label", ContextScreenable},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, normalizeContext(tc.raw), "raw=%q", tc.raw)
	}
}

func TestConfidenceBand(t *testing.T) {
	req := require.New(t)

	req.Equal(ConfidenceHigh, confidenceBand(90))
	req.Equal(ConfidenceHigh, confidenceBand(75))
	req.Equal(ConfidenceMedium, confidenceBand(74))
	req.Equal(ConfidenceMedium, confidenceBand(40))
	req.Equal(ConfidenceLow, confidenceBand(39))
	req.Equal(ConfidenceLow, confidenceBand(0))
}

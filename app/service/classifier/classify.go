package classifier

import (
	"sort"
	"strings"

	"pukaar/app/util/textmatch"

	"github.com/samber/lo"
)

// Context labels what kind of conversation the message opens.
type Context string

const (
	ContextScreenable    Context = "medical_screenable"
	ContextNonScreenable Context = "medical_non_screenable"
	ContextNonMedical    Context = "non_medical"
	ContextFollowUp      Context = "follow_up"
	ContextConsult       Context = "consult"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type Classification struct {
	Context            Context    `json:"classified_context"`
	Confidence         Confidence `json:"confidence"`
	Reasoning          string     `json:"reasoning"`
	DetectedConditions []string   `json:"detected_conditions,omitempty"`
	NextAction         string     `json:"next_action,omitempty"`
	ExpertType         string     `json:"expert_type,omitempty"`
}

// KeywordClassifier routes messages by keyword inventory alone. It is the
// first pass and the full answer when the model is unreachable.
type KeywordClassifier struct {
	conditions     map[string]*textmatch.Matcher
	nonScreenable  *textmatch.Matcher
	nonMedical     *textmatch.Matcher
	emergency      *textmatch.Matcher
	followUp       *textmatch.Matcher
	consult        *textmatch.Matcher
	conditionNames []string
}

func NewKeywordClassifier() (*KeywordClassifier, error) {
	conditions := make(map[string]*textmatch.Matcher, len(screenableConditions))
	names := make([]string, 0, len(screenableConditions))

	for condition, keywords := range screenableConditions {
		matcher, err := textmatch.New(keywords)
		if err != nil {
			return nil, err
		}

		conditions[condition] = matcher
		names = append(names, condition)
	}

	sort.Strings(names)

	nonScreenable, err := textmatch.New(nonScreenableMedical)
	if err != nil {
		return nil, err
	}

	nonMedical, err := textmatch.New(nonMedicalConcerns)
	if err != nil {
		return nil, err
	}

	emergency, err := textmatch.New(emergencyIndicators)
	if err != nil {
		return nil, err
	}

	followUp, err := textmatch.New(followUpKeywords)
	if err != nil {
		return nil, err
	}

	consult, err := textmatch.New(consultKeywords)
	if err != nil {
		return nil, err
	}

	return &KeywordClassifier{
		conditions:     conditions,
		nonScreenable:  nonScreenable,
		nonMedical:     nonMedical,
		emergency:      emergency,
		followUp:       followUp,
		consult:        consult,
		conditionNames: names,
	}, nil
}

func (c *KeywordClassifier) Classify(input string) Classification {
	// Emergency indicators outrank everything else.
	if c.emergency.MatchesAny(input) {
		return annotate(Classification{
			Context:    ContextNonScreenable,
			Confidence: ConfidenceHigh,
			Reasoning:  "Contains emergency indicators requiring immediate medical attention",
		})
	}

	screenable := lo.Filter(c.conditionNames, func(name string, _ int) bool {
		return c.conditions[name].MatchesAny(input)
	})

	if c.followUp.MatchesAny(input) {
		return annotate(Classification{
			Context:    ContextFollowUp,
			Confidence: ConfidenceHigh,
			Reasoning:  "Detected follow-up intent",
		})
	}

	if c.consult.MatchesAny(input) {
		return annotate(Classification{
			Context:    ContextConsult,
			Confidence: ConfidenceHigh,
			Reasoning:  "Detected consult/advice intent",
		})
	}

	// A question with no screenable symptom reads as an advice request.
	if startsWithQuestion(input) && len(screenable) == 0 {
		return annotate(Classification{
			Context:    ContextConsult,
			Confidence: ConfidenceMedium,
			Reasoning:  "Message is a question and not a clear screenable symptom",
		})
	}

	if len(screenable) > 0 {
		readable := lo.Map(screenable, func(name string, _ int) string {
			return strings.ReplaceAll(name, "_", " ")
		})

		return annotate(Classification{
			Context:            ContextScreenable,
			Confidence:         ConfidenceHigh,
			Reasoning:          "Mentions " + strings.Join(readable, ", ") + " which can be screened using our system",
			DetectedConditions: screenable,
		})
	}

	if matches := c.nonScreenable.Matches(input); len(matches) > 0 {
		if len(matches) > 3 {
			matches = matches[:3]
		}

		return annotate(Classification{
			Context:            ContextNonScreenable,
			Confidence:         ConfidenceHigh,
			Reasoning:          "Medical concerns (" + strings.Join(matches, ", ") + ") outside our screening scope",
			DetectedConditions: matches,
		})
	}

	if matches := c.nonMedical.Matches(input); len(matches) > 0 {
		if len(matches) > 3 {
			matches = matches[:3]
		}

		return annotate(Classification{
			Context:    ContextNonMedical,
			Confidence: ConfidenceHigh,
			Reasoning:  "Non-medical parenting concerns (" + strings.Join(matches, ", ") + ")",
		})
	}

	// Unclear input defaults to screening for safety.
	return annotate(Classification{
		Context:    ContextScreenable,
		Confidence: ConfidenceLow,
		Reasoning:  "Unclear symptoms - defaulting to medical screening for safety",
	})
}

func startsWithQuestion(input string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(input))

	for _, opener := range questionOpeners {
		if strings.HasPrefix(trimmed, opener) {
			return true
		}
	}

	return false
}

func annotate(c Classification) Classification {
	switch c.Context {
	case ContextScreenable:
		c.NextAction = "Proceed with medical screening using our triage system"
		c.ExpertType = "Medical screening assistant"
	case ContextNonScreenable:
		c.NextAction = "Recommend consultation with appropriate medical specialist"
		c.ExpertType = "Medical specialist referral"
	case ContextNonMedical:
		c.NextAction = "Provide parenting guidance and behavioral support"
		c.ExpertType = "Parenting consultant"
	case ContextConsult, ContextFollowUp:
		c.NextAction = "Provide evidence-based guidance"
		c.ExpertType = "Pediatric advice assistant"
	}

	return c
}

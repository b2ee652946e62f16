package redflag

import (
	"pukaar/app/util/textmatch"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Result is the red flag verdict for a single message.
type Result struct {
	Detected          bool     `json:"red_flag_detected"`
	Trigger           string   `json:"trigger,omitempty"`
	FlagType          string   `json:"flag_type,omitempty"`
	Severity          Severity `json:"severity,omitempty"`
	RecommendedAction string   `json:"recommended_action,omitempty"`
}

const emergencyAction = "Rush to emergency immediately"

// Detector runs the keyword pass. It has no external dependencies and is the
// safety net when the model is unreachable.
type Detector struct {
	groups            []compiledGroup
	emergencyLanguage *textmatch.Matcher
	concerning        *textmatch.Matcher
}

type compiledGroup struct {
	name    string
	matcher *textmatch.Matcher
}

func NewDetector() (*Detector, error) {
	groups := make([]compiledGroup, 0, len(flagGroups))

	for _, group := range flagGroups {
		matcher, err := textmatch.New(group.patterns)
		if err != nil {
			return nil, err
		}

		groups = append(groups, compiledGroup{
			name:    group.name,
			matcher: matcher,
		})
	}

	emergency, err := textmatch.New(emergencyLanguage)
	if err != nil {
		return nil, err
	}

	concerning, err := textmatch.New(concerningSymptoms)
	if err != nil {
		return nil, err
	}

	return &Detector{
		groups:            groups,
		emergencyLanguage: emergency,
		concerning:        concerning,
	}, nil
}

// Detect reports the highest-severity red flag found in text.
func (d *Detector) Detect(text string) Result {
	for _, group := range d.groups {
		trigger, ok := group.matcher.FirstMatch(text)
		if !ok {
			continue
		}

		return Result{
			Detected:          true,
			Trigger:           trigger,
			FlagType:          group.name,
			Severity:          SeverityHigh,
			RecommendedAction: emergencyAction,
		}
	}

	// Emotional or time-pressure language plus a concerning symptom is
	// treated as a medium-severity flag.
	if d.emergencyLanguage.MatchesAny(text) {
		if symptom, ok := d.concerning.FirstMatch(text); ok {
			return Result{
				Detected:          true,
				Trigger:           "Emergency language with " + symptom + " concern",
				FlagType:          "emergency_language_" + symptom,
				Severity:          SeverityMedium,
				RecommendedAction: emergencyAction,
			}
		}
	}

	return Result{Detected: false}
}

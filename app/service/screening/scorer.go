package screening

import (
	"regexp"
	"strconv"
	"strings"

	"pukaar/app/service/redflag"
)

// Scorer is the local weighted screening model. It grades symptom severity
// from questionnaire answers, applies age and symptom-interaction
// multipliers and maps the resulting score onto age-banded risk thresholds.
type Scorer struct {
	detector *redflag.Detector
}

func NewScorer() (*Scorer, error) {
	detector, err := redflag.NewDetector()
	if err != nil {
		return nil, err
	}

	return &Scorer{detector: detector}, nil
}

// Score assesses a condition from questionnaire answers. ageDays of zero
// means unknown. Any answer containing an emergency sign short-circuits into
// a red flag result.
func (s *Scorer) Score(condition string, responses []string, ageDays float64) (Result, error) {
	key, err := NormalizeKey(condition)
	if err != nil {
		return Result{}, err
	}

	for _, response := range responses {
		if flag := s.detector.Detect(response); flag.Detected {
			return Result{
				Condition:  key,
				RiskLevel:  RiskHigh,
				Urgency:    UrgencyImmediate,
				Assessment: "Emergency sign reported: " + flag.Trigger,
				Algorithm:  "local",
				RedFlag:    &flag,
				Recommendations: Recommendations{
					Action:       flag.RecommendedAction,
					Timeframe:    "Immediately",
					Priority:     "Emergency",
					WarningSigns: flag.Trigger,
				},
			}, nil
		}
	}

	numbers := extractNumbers(strings.Join(responses, "\n"))

	if ageDays == 0 {
		if extracted, ok := numbers["age_days"]; ok {
			ageDays = extracted
		} else {
			ageDays = defaultAgeDays
		}
	}

	symptoms := classifySeverity(key, responses, numbers)

	var total, maxPossible float64

	weights := symptomWeights[key]
	for symptom, severity := range symptoms {
		table, ok := weights[symptom]
		if !ok {
			continue
		}

		total += table[severity]

		var max float64
		for _, w := range table {
			if w > max {
				max = w
			}
		}
		maxPossible += max
	}

	group, ageMultiplier := ageGroupOf(ageDays)
	final := total * ageMultiplier * interactionMultiplier(key, symptoms)

	var score float64
	if maxPossible > 0 {
		score = final / maxPossible * 100
	}
	if score > 100 {
		score = 100
	}

	thresholds := dynamicThresholds[key][group]

	var riskLevel RiskLevel
	var urgency Urgency

	switch {
	case score >= thresholds.high:
		riskLevel, urgency = RiskHigh, UrgencyImmediate
	case score >= thresholds.medium:
		riskLevel, urgency = RiskMedium, UrgencySoon
	case score >= thresholds.low:
		riskLevel, urgency = RiskLow, UrgencyRoutine
	default:
		riskLevel, urgency = RiskMinimal, UrgencyMonitor
	}

	return Result{
		Condition:       key,
		RiskLevel:       riskLevel,
		Urgency:         urgency,
		Assessment:      assessmentText(key, symptoms, score),
		Score:           score,
		Algorithm:       "local",
		Recommendations: recommendationsFor(key, urgency),
	}, nil
}

func assessmentText(condition string, symptoms map[string]string, score float64) string {
	info := conditions[condition]

	var notable []string
	for symptom, severity := range symptoms {
		switch severity {
		case "normal", "none", "alert", "gaining", "0_3":
			continue
		}

		notable = append(notable, strings.ReplaceAll(symptom, "_", " ")+": "+strings.ReplaceAll(severity, "_", " "))
	}

	if len(notable) == 0 {
		return "No concerning signs reported for " + info.Name + "."
	}

	return "Reported signs for " + info.Name + " (" +
		strconv.FormatFloat(score, 'f', 0, 64) + "% weighted score): " +
		strings.Join(notable, "; ") + "."
}

var (
	respiratoryRatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*breaths?\s*per\s*minute`),
		regexp.MustCompile(`(\d+)\s*bpm`),
		regexp.MustCompile(`breathing\s*(\d+)\s*times`),
		regexp.MustCompile(`(\d+)\s*breaths`),
	}
	ageDaysPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*days?\s*old`),
		regexp.MustCompile(`age\s*(\d+)\s*days`),
		regexp.MustCompile(`(\d+)\s*days?\s*of\s*age`),
	}
	stoolFrequencyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*stools?\s*per\s*day`),
		regexp.MustCompile(`(\d+)\s*times\s*per\s*day`),
		regexp.MustCompile(`(\d+)\s*bowel\s*movements`),
	}
)

// extractNumbers pulls structured values out of free-text answers.
func extractNumbers(text string) map[string]float64 {
	lower := strings.ToLower(text)
	values := make(map[string]float64)

	extract := func(key string, patterns []*regexp.Regexp) {
		for _, pattern := range patterns {
			match := pattern.FindStringSubmatch(lower)
			if match == nil {
				continue
			}

			if value, err := strconv.ParseFloat(match[1], 64); err == nil {
				values[key] = value
				return
			}
		}
	}

	extract("respiratory_rate", respiratoryRatePatterns)
	extract("age_days", ageDaysPatterns)
	extract("stool_frequency", stoolFrequencyPatterns)

	return values
}

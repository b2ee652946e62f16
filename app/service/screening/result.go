package screening

import "pukaar/app/service/redflag"

type RiskLevel string

const (
	RiskHigh    RiskLevel = "high"
	RiskMedium  RiskLevel = "medium"
	RiskLow     RiskLevel = "low"
	RiskMinimal RiskLevel = "minimal"
)

type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencySoon      Urgency = "soon"
	UrgencyRoutine   Urgency = "routine"
	UrgencyMonitor   Urgency = "monitor"
)

// Result is a screening assessment, produced either by the model or by the
// local weighted scorer.
type Result struct {
	Condition  string    `json:"condition"`
	RiskLevel  RiskLevel `json:"risk_level"`
	Urgency    Urgency   `json:"urgency"`
	Assessment string    `json:"assessment"`

	// Score and Algorithm are set by the local scorer only.
	Score     float64 `json:"score,omitempty"`
	Algorithm string  `json:"algorithm,omitempty"`

	Recommendations Recommendations `json:"recommendations"`

	// RedFlag short-circuits the assessment when an answer contains an
	// emergency sign.
	RedFlag *redflag.Result `json:"red_flag,omitempty"`
}

type Recommendations struct {
	Action          string `json:"action"`
	Timeframe       string `json:"timeframe"`
	Priority        string `json:"priority,omitempty"`
	Monitoring      string `json:"monitoring"`
	WarningSigns    string `json:"warning_signs"`
	ComfortMeasures string `json:"comfort_measures,omitempty"`
}

var urgencyRecommendations = map[Urgency]Recommendations{
	UrgencyImmediate: {
		Action:    "Seek immediate medical attention",
		Timeframe: "Within 1-2 hours",
		Priority:  "Emergency",
	},
	UrgencySoon: {
		Action:    "Consult pediatrician soon",
		Timeframe: "Within 24 hours",
		Priority:  "High",
	},
	UrgencyRoutine: {
		Action:    "Schedule routine check-up",
		Timeframe: "Within 1 week",
		Priority:  "Medium",
	},
	UrgencyMonitor: {
		Action:    "Monitor symptoms",
		Timeframe: "Continue monitoring",
		Priority:  "Low",
	},
}

var conditionGuidance = map[string]Recommendations{
	KeyPneumonia: {
		Monitoring:      "Monitor breathing rate and effort",
		WarningSigns:    "Increased breathing difficulty, blue lips, refusal to feed",
		ComfortMeasures: "Keep upright position, humidified air if available",
	},
	KeyDiarrhea: {
		Monitoring:      "Monitor hydration status and stool frequency",
		WarningSigns:    "Decreased urine output, sunken eyes, lethargy",
		ComfortMeasures: "Continue feeding, offer oral rehydration if age-appropriate",
	},
	KeyMalnutrition: {
		Monitoring:      "Monitor feeding patterns and weight",
		WarningSigns:    "Further feeding refusal, weight loss, lethargy",
		ComfortMeasures: "Encourage frequent small feeds, maintain feeding schedule",
	},
	KeySepsis: {
		Monitoring:      "Monitor temperature, feeding, and consciousness",
		WarningSigns:    "High fever, poor feeding, lethargy, irritability",
		ComfortMeasures: "Maintain normal temperature, continue feeding if possible",
	},
	KeyJaundice: {
		Monitoring:      "Monitor jaundice extent and feeding",
		WarningSigns:    "Jaundice spreading to legs, poor feeding, pale stools",
		ComfortMeasures: "Ensure adequate feeding, expose to natural light (not direct sun)",
	},
}

func recommendationsFor(condition string, urgency Urgency) Recommendations {
	result := urgencyRecommendations[urgency]

	if guidance, ok := conditionGuidance[condition]; ok {
		result.Monitoring = guidance.Monitoring
		result.WarningSigns = guidance.WarningSigns
		result.ComfortMeasures = guidance.ComfortMeasures
	}

	return result
}

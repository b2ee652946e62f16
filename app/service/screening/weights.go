package screening

// Evidence-based symptom weights per condition. The weight of the observed
// severity accumulates toward the risk score; the maximum per symptom bounds
// the denominator.
var symptomWeights = map[string]map[string]map[string]float64{
	KeyPneumonia: {
		"respiratory_rate": {"normal": 0, "elevated": 15, "high": 25, "very_high": 35},
		"chest_indrawing":  {"none": 0, "mild": 20, "moderate": 30, "severe": 40},
		"grunting":         {"none": 0, "occasional": 15, "frequent": 25, "continuous": 35},
		"cyanosis":         {"none": 0, "mild": 30, "severe": 50},
		"feeding_status":   {"normal": 0, "reduced": 10, "poor": 20, "refusing": 30},
	},
	KeyDiarrhea: {
		"stool_frequency":   {"normal": 0, "increased": 10, "high": 20, "very_high": 30},
		"stool_consistency": {"normal": 0, "loose": 15, "watery": 25, "very_watery": 35},
		"dehydration_signs": {"none": 0, "mild": 20, "moderate": 35, "severe": 50},
		"vomiting":          {"none": 0, "occasional": 10, "frequent": 20, "continuous": 30},
	},
	KeyMalnutrition: {
		"feeding_pattern": {"normal": 0, "reduced": 15, "poor": 25, "refusing": 35},
		"weight_change":   {"gaining": 0, "stable": 10, "slow_gain": 20, "losing": 30},
		"activity_level":  {"normal": 0, "reduced": 10, "lethargic": 20, "very_lethargic": 30},
		"visible_signs":   {"none": 0, "mild": 15, "moderate": 25, "severe": 35},
	},
	KeySepsis: {
		"temperature":    {"normal": 0, "elevated": 20, "high_fever": 35, "hypothermia": 40},
		"feeding_status": {"normal": 0, "reduced": 15, "poor": 25, "refusing": 35},
		"consciousness":  {"alert": 0, "drowsy": 20, "lethargic": 30, "unconscious": 50},
		"irritability":   {"normal": 0, "irritable": 15, "very_irritable": 25, "inconsolable": 35},
	},
	KeyJaundice: {
		"jaundice_extent": {"none": 0, "face_only": 10, "upper_body": 20, "full_body": 30, "below_knees": 40},
		"age_days":        {"0_3": 0, "4_7": 10, "8_14": 20, "15_plus": 30},
		"feeding_status":  {"normal": 0, "reduced": 15, "poor": 25, "refusing": 35},
		"stool_color":     {"normal": 0, "pale": 20, "white": 30, "clay_colored": 35},
	},
}

type ageBand struct {
	group      string
	minDays    float64
	maxDays    float64
	multiplier float64
}

// Younger infants carry higher risk for the same observations.
var ageBands = []ageBand{
	{"neonatal", 0, 28, 1.5},
	{"young_infant", 29, 90, 1.3},
	{"older_infant", 91, 365, 1.0},
}

const defaultAgeDays = 30

type riskThresholds struct {
	low    float64
	medium float64
	high   float64
}

// Score thresholds per condition and age group. A score at or above high is
// high risk, and so on down.
var dynamicThresholds = map[string]map[string]riskThresholds{
	KeyPneumonia: {
		"neonatal":     {30, 50, 70},
		"young_infant": {25, 45, 65},
		"older_infant": {20, 40, 60},
	},
	KeyDiarrhea: {
		"neonatal":     {25, 45, 65},
		"young_infant": {20, 40, 60},
		"older_infant": {15, 35, 55},
	},
	KeyMalnutrition: {
		"neonatal":     {20, 40, 60},
		"young_infant": {25, 45, 65},
		"older_infant": {30, 50, 70},
	},
	KeySepsis: {
		"neonatal":     {15, 35, 55},
		"young_infant": {20, 40, 60},
		"older_infant": {25, 45, 65},
	},
	KeyJaundice: {
		"neonatal":     {20, 40, 60},
		"young_infant": {25, 45, 65},
		"older_infant": {30, 50, 70},
	},
}

func ageGroupOf(ageDays float64) (string, float64) {
	for _, band := range ageBands {
		if ageDays >= band.minDays && ageDays <= band.maxDays {
			return band.group, band.multiplier
		}
	}

	return "older_infant", 1.0
}

// interactionMultiplier amplifies the score when dangerous symptom
// combinations occur together.
func interactionMultiplier(condition string, symptoms map[string]string) float64 {
	multiplier := 1.0

	in := func(symptom string, values ...string) bool {
		current := symptoms[symptom]
		for _, v := range values {
			if current == v {
				return true
			}
		}

		return false
	}

	switch condition {
	case KeyPneumonia:
		if in("respiratory_rate", "high", "very_high") && in("chest_indrawing", "moderate", "severe") {
			multiplier *= 1.3
		}
		if in("respiratory_rate", "very_high") && in("cyanosis", "mild", "severe") {
			multiplier *= 1.5
		}
		if in("chest_indrawing", "severe") && in("grunting", "frequent", "continuous") {
			multiplier *= 1.4
		}

	case KeyDiarrhea:
		if in("stool_frequency", "very_high") && in("dehydration_signs", "moderate", "severe") {
			multiplier *= 1.3
		}
		if in("stool_consistency", "very_watery") && in("vomiting", "frequent", "continuous") {
			multiplier *= 1.4
		}

	case KeySepsis:
		if in("temperature", "high_fever", "hypothermia") && in("consciousness", "lethargic", "unconscious") {
			multiplier *= 1.5
		}

	case KeyJaundice:
		if in("jaundice_extent", "below_knees") && in("stool_color", "pale", "white", "clay_colored") {
			multiplier *= 1.4
		}
	}

	return multiplier
}

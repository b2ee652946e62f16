package screening

import (
	"errors"
	"strings"

	"github.com/samber/oops"
)

var ErrUnknownCondition = errors.New("unknown condition")

const (
	KeyPneumonia    = "pneumonia_ari"
	KeyDiarrhea     = "diarrhea"
	KeyMalnutrition = "malnutrition"
	KeySepsis       = "neonatal_sepsis"
	KeyJaundice     = "neonatal_jaundice"
)

type QuestionType string

const (
	QuestionYesNo       QuestionType = "yes_no"
	QuestionDescriptive QuestionType = "descriptive"
)

type Question struct {
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
}

type Condition struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Importance  string     `json:"importance"`
	Questions   []Question `json:"questions"`
}

var conditions = map[string]Condition{
	KeyPneumonia: {
		Key:         KeyPneumonia,
		Name:        "Pneumonia/Acute Respiratory Infection",
		Description: "A serious lung infection that can cause breathing difficulties and is a leading cause of infant mortality worldwide.",
		Importance:  "Early detection is crucial as respiratory distress can rapidly worsen in infants.",
		Questions: []Question{
			{"Is the baby breathing faster than normal?", QuestionYesNo},
			{"Can you see the baby's ribs or chest pulling in when breathing?", QuestionYesNo},
			{"Is the baby making grunting sounds while breathing?", QuestionYesNo},
			{"Does the baby have a cough?", QuestionYesNo},
			{"How many breaths per minute is the baby taking? (Count for 1 minute)", QuestionDescriptive},
			{"Is the baby's nose flaring when breathing?", QuestionYesNo},
			{"Does the baby seem to be working hard to breathe?", QuestionYesNo},
		},
	},
	KeyDiarrhea: {
		Key:         KeyDiarrhea,
		Name:        "Diarrhea",
		Description: "Frequent loose or watery stools that can lead to dehydration, a serious complication in infants.",
		Importance:  "Dehydration can develop quickly and become life-threatening in young infants.",
		Questions: []Question{
			{"How many loose or watery stools has the baby had in the last 24 hours?", QuestionDescriptive},
			{"Is the baby's stool watery or runny?", QuestionYesNo},
			{"Has the baby been vomiting?", QuestionYesNo},
			{"Is the baby drinking or feeding normally?", QuestionYesNo},
			{"How many wet diapers has the baby had in the last 6 hours?", QuestionDescriptive},
			{"Are the baby's eyes sunken?", QuestionYesNo},
			{"Does the baby seem thirsty or dehydrated?", QuestionYesNo},
		},
	},
	KeyMalnutrition: {
		Key:         KeyMalnutrition,
		Name:        "Malnutrition",
		Description: "Inadequate nutrition that can affect growth, development, and immune function.",
		Importance:  "Early detection can prevent long-term developmental issues and complications.",
		Questions: []Question{
			{"Has the baby been feeding less than usual?", QuestionYesNo},
			{"How many feeds has the baby taken in the last 24 hours?", QuestionDescriptive},
			{"Does the baby seem less active or energetic?", QuestionYesNo},
			{"Has the baby lost weight recently?", QuestionYesNo},
			{"Are the baby's ribs or bones more visible than before?", QuestionYesNo},
			{"Is the baby's skin loose or wrinkled?", QuestionYesNo},
			{"How long does the baby typically feed for?", QuestionDescriptive},
		},
	},
	KeySepsis: {
		Key:         KeySepsis,
		Name:        "Neonatal Sepsis",
		Description: "A serious bloodstream infection that can affect newborns and young infants.",
		Importance:  "Sepsis can progress rapidly and requires immediate medical attention.",
		Questions: []Question{
			{"Does the baby have a fever (temperature above 38°C)?", QuestionYesNo},
			{"Is the baby feeding poorly or refusing feeds?", QuestionYesNo},
			{"Is the baby unusually sleepy or difficult to wake?", QuestionYesNo},
			{"Does the baby seem irritable or inconsolable?", QuestionYesNo},
			{"Is the baby's skin color normal?", QuestionYesNo},
			{"Is the baby breathing normally?", QuestionYesNo},
			{"Has the baby's behavior changed suddenly?", QuestionYesNo},
		},
	},
	KeyJaundice: {
		Key:         KeyJaundice,
		Name:        "Neonatal Jaundice",
		Description: "Yellowing of the skin and eyes due to high bilirubin levels, common in newborns.",
		Importance:  "Severe jaundice can cause brain damage if not treated promptly.",
		Questions: []Question{
			{"Is the baby's skin or eyes yellow?", QuestionYesNo},
			{"How old is the baby in days?", QuestionDescriptive},
			{"Is the yellow color spreading to the baby's arms and legs?", QuestionYesNo},
			{"What color is the baby's stool?", QuestionDescriptive},
			{"Is the baby feeding normally?", QuestionYesNo},
			{"Is the baby sleepy or difficult to wake?", QuestionYesNo},
			{"Has the yellow color appeared suddenly or gradually?", QuestionDescriptive},
		},
	},
}

// Display names used by the triage agent map back to catalog keys, so either
// form is accepted on the wire.
var aliases = map[string]string{
	"pneumonia / ari":                        KeyPneumonia,
	"pneumonia":                              KeyPneumonia,
	"pneumonia/acute respiratory infection":  KeyPneumonia,
	"ari":                                    KeyPneumonia,
	"diarrhea":                               KeyDiarrhea,
	"malnutrition":                           KeyMalnutrition,
	"neonatal sepsis":                        KeySepsis,
	"sepsis":                                 KeySepsis,
	"neonatal jaundice":                      KeyJaundice,
	"jaundice":                               KeyJaundice,
}

// NormalizeKey resolves a condition key or display name to a catalog key.
func NormalizeKey(condition string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(condition))

	if _, ok := conditions[normalized]; ok {
		return normalized, nil
	}

	if key, ok := aliases[normalized]; ok {
		return key, nil
	}

	underscored := strings.ReplaceAll(normalized, " ", "_")
	if _, ok := conditions[underscored]; ok {
		return underscored, nil
	}

	return "", oops.With("condition", condition).Wrap(ErrUnknownCondition)
}

// Info returns the catalog entry for a condition key or display name.
func Info(condition string) (Condition, error) {
	key, err := NormalizeKey(condition)
	if err != nil {
		return Condition{}, err
	}

	return conditions[key], nil
}

// Conditions lists all catalog entries.
func Conditions() []Condition {
	result := make([]Condition, 0, len(conditions))
	for _, key := range []string{KeyPneumonia, KeyDiarrhea, KeyMalnutrition, KeySepsis, KeyJaundice} {
		result = append(result, conditions[key])
	}

	return result
}

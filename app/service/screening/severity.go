package screening

import "strings"

type tier struct {
	severity string
	keywords []string
}

// gradeAnswer returns the severity of the first tier whose keywords appear
// in the answer, otherwise fallback. Tiers are ordered most severe first.
func gradeAnswer(answer string, tiers []tier, fallback string) string {
	lower := strings.ToLower(answer)

	for _, t := range tiers {
		for _, keyword := range t.keywords {
			if strings.Contains(lower, keyword) {
				return t.severity
			}
		}
	}

	return fallback
}

func affirmative(answer string) bool {
	lower := strings.ToLower(strings.TrimSpace(answer))

	for _, word := range []string{"yes", "true", "1", "positive", "yeah", "yep"} {
		if lower == word || strings.HasPrefix(lower, word+" ") || strings.HasPrefix(lower, word+",") {
			return true
		}
	}

	return false
}

func negative(answer string) bool {
	lower := strings.ToLower(strings.TrimSpace(answer))

	for _, word := range []string{"no", "not", "none", "never"} {
		if lower == word || strings.HasPrefix(lower, word+" ") || strings.HasPrefix(lower, word+",") {
			return true
		}
	}

	return false
}

func answerAt(responses []string, index int) string {
	if index < 0 || index >= len(responses) {
		return ""
	}

	return responses[index]
}

// classifySeverity grades each scored symptom from the questionnaire
// answers, using extracted numeric values when present. Answer indexes
// follow the condition's question order.
func classifySeverity(condition string, responses []string, numbers map[string]float64) map[string]string {
	symptoms := make(map[string]string)
	joined := strings.ToLower(strings.Join(responses, "\n"))

	switch condition {
	case KeyPneumonia:
		if rate, ok := numbers["respiratory_rate"]; ok {
			switch {
			case rate > 70:
				symptoms["respiratory_rate"] = "very_high"
			case rate > 60:
				symptoms["respiratory_rate"] = "high"
			case rate > 50:
				symptoms["respiratory_rate"] = "elevated"
			default:
				symptoms["respiratory_rate"] = "normal"
			}
		} else {
			fallback := "normal"
			if affirmative(answerAt(responses, 0)) {
				fallback = "elevated"
			}

			symptoms["respiratory_rate"] = gradeAnswer(answerAt(responses, 0)+" "+answerAt(responses, 4), []tier{
				{"very_high", []string{"very fast", "extremely fast", ">70", "70+"}},
				{"high", []string{"fast", "rapid", ">60", "60+"}},
				{"elevated", []string{"slightly fast", "elevated"}},
			}, fallback)
		}

		fallback := "none"
		if affirmative(answerAt(responses, 1)) {
			fallback = "moderate"
		}
		symptoms["chest_indrawing"] = gradeAnswer(answerAt(responses, 1), []tier{
			{"severe", []string{"severe", "very bad", "extreme", "terrible"}},
			{"moderate", []string{"moderate", "bad", "clearly visible"}},
			{"mild", []string{"mild", "slight", "a little"}},
		}, fallback)

		fallback = "none"
		if affirmative(answerAt(responses, 2)) {
			fallback = "occasional"
		}
		symptoms["grunting"] = gradeAnswer(answerAt(responses, 2), []tier{
			{"continuous", []string{"continuous", "all the time", "constantly"}},
			{"frequent", []string{"frequent", "often", "regularly"}},
			{"occasional", []string{"occasional", "sometimes", "now and then"}},
		}, fallback)

		symptoms["cyanosis"] = gradeAnswer(joined, []tier{
			{"severe", []string{"very blue", "extremely blue", "purple"}},
			{"mild", []string{"blue", "bluish", "cyanosis"}},
		}, "none")

		symptoms["feeding_status"] = gradeAnswer(joined, []tier{
			{"refusing", []string{"refusing", "won't eat", "not eating", "no feeding"}},
			{"poor", []string{"poor feeding", "feeding poorly", "very little"}},
			{"reduced", []string{"feeding less", "eating less", "reduced feeding"}},
		}, "normal")

	case KeyDiarrhea:
		if freq, ok := numbers["stool_frequency"]; ok {
			switch {
			case freq > 10:
				symptoms["stool_frequency"] = "very_high"
			case freq > 8:
				symptoms["stool_frequency"] = "high"
			case freq > 5:
				symptoms["stool_frequency"] = "increased"
			default:
				symptoms["stool_frequency"] = "normal"
			}
		} else {
			symptoms["stool_frequency"] = gradeAnswer(answerAt(responses, 0), []tier{
				{"very_high", []string{"very frequent", ">10", "10+", "many times"}},
				{"high", []string{"frequent", ">8", "8+", "often"}},
				{"increased", []string{"increased", "more than usual"}},
			}, "normal")
		}

		fallback := "normal"
		if affirmative(answerAt(responses, 1)) {
			fallback = "watery"
		}
		symptoms["stool_consistency"] = gradeAnswer(answerAt(responses, 1), []tier{
			{"very_watery", []string{"very watery", "like water", "extremely runny"}},
			{"watery", []string{"watery", "runny", "liquid"}},
			{"loose", []string{"loose", "soft"}},
		}, fallback)

		hydration := strings.Join([]string{
			answerAt(responses, 4), answerAt(responses, 5), answerAt(responses, 6),
		}, " ")

		fallback = "none"
		if affirmative(answerAt(responses, 5)) {
			fallback = "moderate"
		}
		symptoms["dehydration_signs"] = gradeAnswer(hydration, []tier{
			{"severe", []string{"severe", "very bad", "extreme", "sunken eyes", "no tears", "no urine", "no wet"}},
			{"moderate", []string{"moderate", "bad", "dry mouth", "thirsty"}},
			{"mild", []string{"mild", "slight", "a little"}},
		}, fallback)

		fallback = "none"
		if affirmative(answerAt(responses, 2)) {
			fallback = "occasional"
		}
		symptoms["vomiting"] = gradeAnswer(answerAt(responses, 2), []tier{
			{"continuous", []string{"continuous", "all the time", "constantly", "everything"}},
			{"frequent", []string{"frequent", "often", "regularly"}},
			{"occasional", []string{"occasional", "sometimes", "now and then"}},
		}, fallback)

	case KeyMalnutrition:
		fallback := "normal"
		if affirmative(answerAt(responses, 0)) {
			fallback = "reduced"
		}
		symptoms["feeding_pattern"] = gradeAnswer(answerAt(responses, 0), []tier{
			{"refusing", []string{"refusing", "won't eat", "not eating"}},
			{"poor", []string{"poor", "very little", "barely"}},
			{"reduced", []string{"reduced", "less", "decreased"}},
		}, fallback)

		fallback = "gaining"
		if affirmative(answerAt(responses, 3)) {
			fallback = "losing"
		}
		symptoms["weight_change"] = gradeAnswer(answerAt(responses, 3), []tier{
			{"losing", []string{"losing", "lost weight", "weight loss"}},
			{"slow_gain", []string{"slow", "barely gaining"}},
			{"stable", []string{"stable", "same", "no change"}},
		}, fallback)

		fallback = "normal"
		if affirmative(answerAt(responses, 2)) {
			fallback = "reduced"
		}
		symptoms["activity_level"] = gradeAnswer(answerAt(responses, 2), []tier{
			{"very_lethargic", []string{"very lethargic", "extremely tired", "no energy at all"}},
			{"lethargic", []string{"lethargic", "no energy", "listless"}},
			{"reduced", []string{"less active", "reduced", "tired"}},
		}, fallback)

		visible := answerAt(responses, 4) + " " + answerAt(responses, 5)
		fallback = "none"
		if affirmative(answerAt(responses, 4)) || affirmative(answerAt(responses, 5)) {
			fallback = "mild"
		}
		symptoms["visible_signs"] = gradeAnswer(visible, []tier{
			{"severe", []string{"severe", "very visible", "extreme"}},
			{"moderate", []string{"moderate", "clearly", "obvious"}},
			{"mild", []string{"mild", "slight", "a little"}},
		}, fallback)

	case KeySepsis:
		fallback := "normal"
		if affirmative(answerAt(responses, 0)) {
			fallback = "high_fever"
		}
		symptoms["temperature"] = gradeAnswer(answerAt(responses, 0), []tier{
			{"hypothermia", []string{"cold", "hypothermia", "low temperature"}},
			{"high_fever", []string{"high fever", "38.5", "39", "40", "burning"}},
			{"elevated", []string{"slightly warm", "mild fever", "warm"}},
		}, fallback)

		fallback = "normal"
		if affirmative(answerAt(responses, 1)) {
			fallback = "poor"
		}
		symptoms["feeding_status"] = gradeAnswer(answerAt(responses, 1), []tier{
			{"refusing", []string{"refusing", "won't eat", "not feeding"}},
			{"poor", []string{"poor", "very little", "barely"}},
			{"reduced", []string{"reduced", "less", "decreased"}},
		}, fallback)

		fallback = "alert"
		if affirmative(answerAt(responses, 2)) {
			fallback = "drowsy"
		}
		symptoms["consciousness"] = gradeAnswer(answerAt(responses, 2), []tier{
			{"unconscious", []string{"unconscious", "won't wake", "not responding"}},
			{"lethargic", []string{"lethargic", "very sleepy", "hard to wake", "difficult to wake"}},
			{"drowsy", []string{"drowsy", "sleepy"}},
		}, fallback)

		fallback = "normal"
		if affirmative(answerAt(responses, 3)) {
			fallback = "irritable"
		}
		symptoms["irritability"] = gradeAnswer(answerAt(responses, 3), []tier{
			{"inconsolable", []string{"inconsolable", "cannot be consoled", "nothing helps"}},
			{"very_irritable", []string{"very irritable", "extremely irritable", "constantly crying"}},
			{"irritable", []string{"irritable", "fussy", "cranky"}},
		}, fallback)

	case KeyJaundice:
		extent := answerAt(responses, 0) + " " + answerAt(responses, 2)
		fallback := "none"
		if affirmative(answerAt(responses, 0)) {
			fallback = "face_only"
		}
		if affirmative(answerAt(responses, 2)) {
			fallback = "full_body"
		}
		symptoms["jaundice_extent"] = gradeAnswer(extent, []tier{
			{"below_knees", []string{"below knees", "legs", "feet", "soles"}},
			{"full_body", []string{"full body", "whole body", "all over", "arms and legs"}},
			{"upper_body", []string{"chest", "upper body", "tummy", "belly"}},
			{"face_only", []string{"face", "eyes only"}},
		}, fallback)

		if age, ok := numbers["age_days"]; ok {
			switch {
			case age <= 3:
				symptoms["age_days"] = "0_3"
			case age <= 7:
				symptoms["age_days"] = "4_7"
			case age <= 14:
				symptoms["age_days"] = "8_14"
			default:
				symptoms["age_days"] = "15_plus"
			}
		}

		fallback = "normal"
		if negative(answerAt(responses, 4)) {
			fallback = "reduced"
		}
		symptoms["feeding_status"] = gradeAnswer(answerAt(responses, 4), []tier{
			{"refusing", []string{"refusing", "won't eat", "not feeding"}},
			{"poor", []string{"poor", "very little", "barely"}},
			{"reduced", []string{"reduced", "less", "decreased"}},
		}, fallback)

		symptoms["stool_color"] = gradeAnswer(answerAt(responses, 3), []tier{
			{"clay_colored", []string{"clay"}},
			{"white", []string{"white"}},
			{"pale", []string{"pale", "grey", "gray", "light colored"}},
		}, "normal")
	}

	return symptoms
}

package classifier

// Keyword inventories for the pre-classifier. The screenable lists mirror the
// five conditions the screening service knows how to handle.
var screenableConditions = map[string][]string{
	"pneumonia_ari": {
		"cough", "breathing", "chest", "respiratory", "pneumonia", "lung", "airway",
		"fast breathing", "rapid breathing", "breathing fast", "breathing difficulty",
		"chest indrawing", "chest retraction", "grunting", "wheezing", "stridor",
		"blue lips", "cyanosis", "shortness of breath", "respiratory distress",
	},
	"diarrhea": {
		"diarrhea", "loose stool", "watery stool", "runny poop", "frequent bowel movements",
		"stool", "poop", "bowel", "dehydration", "sunken eyes", "dry mouth",
		"no urination", "no wet diapers", "thirsty", "vomiting", "nausea",
	},
	"malnutrition": {
		"not eating", "refusing food", "feeding problems", "weight loss", "underweight",
		"poor appetite", "feeding issues", "not feeding", "malnutrition", "nutrition",
		"growth", "development", "weight", "thin", "skinny", "ribs showing",
	},
	"neonatal_sepsis": {
		"fever", "temperature", "hot", "infection", "sepsis", "bacterial infection",
		"bloodstream infection", "high fever", "very hot", "burning up",
		"poor feeding", "lethargy", "irritable", "not responding", "unconscious",
	},
	"neonatal_jaundice": {
		"yellow", "jaundice", "yellow skin", "yellow eyes", "bilirubin", "liver",
		"pale stool", "white stool", "grey stool", "clay colored", "acholic stool",
		"yellowing", "yellow below knees", "yellow extremities",
	},
}

var nonScreenableMedical = []string{
	"teething", "reflux", "colic", "gas", "constipation", "eczema", "rash", "allergy",
	"ear infection", "eye infection", "thrush", "diaper rash", "cradle cap",
	"birthmark", "mole", "skin condition", "dental", "oral", "throat", "ear",
	"eye", "vision", "hearing", "heart", "cardiac", "blood", "anemia", "diabetes",
	"thyroid", "genetic", "chromosomal", "birth defect", "congenital", "surgery",
	"post-operative", "medication", "drug", "vaccine", "immunization", "shot",
}

var nonMedicalConcerns = []string{
	"sleep", "bedtime", "naps", "sleep training", "crying", "tantrums", "behavior",
	"temperament", "development", "milestones", "crawling", "walking", "talking",
	"speech", "motor skills", "learning", "play", "toys", "activities", "routine",
	"schedule", "discipline", "parenting", "bonding", "attachment", "social",
	"interaction", "communication", "language", "reading", "books", "music",
	"feeding schedule", "feeding routine", "bottle", "breastfeeding", "formula",
	"solid food", "weaning", "pacifier", "thumb sucking", "comfort", "soothing",
}

// "ER" stays out of this list: matching ignores case and spacing, so the
// bare digram would fire inside words like "fever" or "watery".
var emergencyIndicators = []string{
	"emergency", "urgent", "serious", "critical", "immediate", "rush", "ambulance",
	"hospital", "emergency room", "unconscious", "not breathing", "choking",
	"seizure", "convulsion", "bleeding", "broken", "fracture", "burn", "poison",
	"overdose", "accident", "injury", "trauma", "head injury", "fall",
}

var followUpKeywords = []string{
	"follow up", "checkup", "come back", "not improved", "still sick", "after treatment",
	"antibiotics", "medicine", "treatment", "persistent", "not better", "not resolved",
	"not gone", "keeps happening", "did not improve", "symptoms remain", "after medication",
	"after antibiotics", "not responding", "not working", "not effective",
}

var consultKeywords = []string{
	"should i", "is it safe", "can i give", "what should i do", "advice", "consult",
	"is it ok", "is it okay", "can my child", "can i use", "how can i", "what can i do",
	"tips for", "prevent", "manage", "care for", "when should i", "is it normal",
	"is it necessary", "is it recommended", "is it possible", "is it allowed", "is it harmful",
	"is it beneficial", "is it required", "is it important", "is it urgent", "is it dangerous",
}

var questionOpeners = []string{
	"how ", "what ", "when ", "should ", "is ", "can ", "could ", "would ",
	"do ", "does ", "did ",
}

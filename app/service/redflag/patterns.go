package redflag

// Red flag pattern groups follow IMNCI, WHO IMCI, IAP and AIIMS pediatric
// emergency protocols. Matching is conservative: parents use imprecise
// language, so phrasing variants are listed generously.
var flagGroups = []flagGroup{
	// Neurological emergencies
	{
		name: "convulsions_seizures",
		patterns: []string{
			"convulsion", "seizure", "fits", "jerking", "twitching", "shaking",
			"uncontrolled movement", "spasms", "tremors", "stiff", "rigid",
		},
	},
	{
		name: "unconsciousness",
		patterns: []string{
			"unconscious", "passed out", "not responding", "no response", "blacked out",
			"fainted", "collapsed", "not moving", "limp", "floppy",
		},
	},
	{
		name: "altered_consciousness",
		patterns: []string{
			"very sleepy", "extremely drowsy", "hard to wake", "won't wake up",
			"difficult to wake", "not alert", "confused", "disoriented",
		},
	},

	// Respiratory emergencies
	{
		name: "respiratory_distress",
		patterns: []string{
			"fast breathing", "rapid breathing", "breathing fast", ">60 breaths", "60+ breaths",
			"breathing difficulty", "struggling to breathe", "shortness of breath",
			"breathing problems", "respiratory distress",
		},
	},
	{
		name: "chest_indrawing",
		patterns: []string{
			"chest indrawing", "chest sinking", "chest retraction", "ribs showing",
			"chest pulling in", "chest caving", "sternal retraction",
		},
	},
	{
		name: "grunting",
		patterns: []string{
			"grunting", "grunting sounds", "noisy breathing", "wheezing", "stridor",
		},
	},
	{
		name: "cyanosis",
		patterns: []string{
			"blue lips", "blue face", "blue skin", "cyanosis", "blue extremities",
			"blue fingers", "blue toes", "bluish", "purple", "discolored",
		},
	},

	// Feeding and hydration
	{
		name: "feeding_refusal",
		patterns: []string{
			"not feeding", "refusing food", "no interest in feeding", "won't eat", "not eating",
			"refusing breast", "refusing bottle", "no appetite", "not drinking",
			"refusing to feed", "feeding problems", "feeding issues",
		},
	},
	{
		name: "dehydration",
		patterns: []string{
			"sunken eyes", "no urination", "no pee", "dehydrated", "dry mouth",
			"no wet diapers", "dry diapers", "no tears", "crying without tears",
			"very thirsty", "excessive thirst",
		},
	},

	// Temperature abnormalities
	{
		name: "high_fever",
		patterns: []string{
			"fever >38.5", "temperature >38.5", "high fever", "very hot", "burning up",
			"feverish", "hot to touch", "very high temperature", "fever above 38.5",
		},
	},
	{
		name: "hypothermia",
		patterns: []string{
			"low temperature", "hypothermia", "feels cold", "very cold",
			"cold to touch", "chilled", "shivering", "cold extremities",
		},
	},

	// Jaundice danger signs
	{
		name: "jaundice_danger",
		patterns: []string{
			"yellow below knees", "white stool", "grey stool", "pale stool",
			"yellow skin", "yellow eyes", "jaundice", "yellowing", "pale poop",
			"clay colored stool", "acholic stool",
		},
	},

	// Swelling and edema
	{
		name: "severe_swelling",
		patterns: []string{
			"swollen feet", "swollen face", "swollen body", "severe swelling",
			"puffy", "edema", "fluid retention", "swollen all over", "bloated",
		},
	},

	// Gastrointestinal emergencies
	{
		name: "bloody_stools",
		patterns: []string{
			"bloody stool", "blood in stool", "bloody poop", "blood in poop",
			"red stool", "black stool", "tarry stool", "bloody diarrhea",
		},
	},
	{
		name: "vomiting_everything",
		patterns: []string{
			"vomiting everything", "throwing up everything", "can't keep anything down",
			"projectile vomiting", "severe vomiting", "vomiting repeatedly",
			"vomiting all the time", "continuous vomiting",
		},
	},

	// General distress
	{
		name: "weak_cry",
		patterns: []string{
			"weak cry", "no cry", "absent cry", "barely crying", "feeble cry",
			"soft cry", "quiet cry", "silent cry",
		},
	},
	{
		name: "lethargy",
		patterns: []string{
			"lethargic", "very tired", "exhausted", "no energy",
			"listless", "not active", "very quiet", "unusually quiet",
		},
	},

	// Time-based concerns
	{
		name: "extended_feeding_refusal",
		patterns: []string{
			"not eating for hours", "hasn't fed for hours", "refusing food for hours",
			"no feeding for 6 hours", "hasn't eaten for 6 hours", "feeding refusal for hours",
		},
	},
	{
		name: "extended_no_urination",
		patterns: []string{
			"no pee for hours", "no wet diaper for hours", "hasn't peed for hours",
			"no urination for 6 hours", "dry diapers for hours",
		},
	},
}

// Emergency language on its own is not a red flag, but paired with a
// concerning symptom it yields a medium-severity detection.
var emergencyLanguage = []string{
	"emergency", "urgent", "serious", "worried", "scared", "panicked",
	"terrible", "awful", "very bad", "extremely", "severely",
	"just happened", "suddenly", "all of a sudden", "quickly", "rapidly",
	"getting worse", "worsening", "deteriorating",
}

var concerningSymptoms = []string{
	"breathing", "feeding", "temperature", "color", "movement",
	"consciousness", "crying", "sleeping", "eating", "drinking",
}

type flagGroup struct {
	name     string
	patterns []string
}

package advice

const (
	TopicFeeding     = "feeding"
	TopicSleep       = "sleep"
	TopicBehavior    = "behavior"
	TopicDevelopment = "development"
	TopicGeneral     = "general"
)

type topicInfo struct {
	expert   string
	keywords []string
}

var topics = map[string]topicInfo{
	TopicFeeding: {
		expert: "lactation consultant or pediatric nutritionist",
		keywords: []string{
			"feeding", "breastfeeding", "bottle", "eating", "food", "milk",
			"formula", "latch", "nipple", "appetite", "refusing food",
			"feeding schedule",
		},
	},
	TopicSleep: {
		expert: "pediatric sleep specialist",
		keywords: []string{
			"sleep", "bedtime", "waking up", "naps", "crying at night",
			"sleep training", "co-sleeping", "crib", "bedtime routine",
			"night wakings", "sleep schedule",
		},
	},
	TopicBehavior: {
		expert: "child development specialist or pediatric psychologist",
		keywords: []string{
			"crying", "tantrums", "behavior", "temperament", "development",
			"milestones", "social", "interaction", "play", "learning",
			"attention", "hyperactive",
		},
	},
	TopicDevelopment: {
		expert: "pediatric developmental specialist",
		keywords: []string{
			"milestones", "crawling", "walking", "talking", "speech",
			"motor skills", "cognitive", "learning", "development",
			"growth", "progress",
		},
	},
	TopicGeneral: {
		expert: "pediatrician",
		keywords: []string{
			"general", "overall", "routine", "care", "parenting", "advice",
			"guidance",
		},
	},
}

type guidanceTemplate struct {
	gentleAdvice   []string
	behavioralTips []string
}

var guidanceTemplates = map[string]guidanceTemplate{
	TopicFeeding: {
		gentleAdvice: []string{
			"It's common for babies to have feeding preferences and patterns that change over time.",
			"Try to maintain a calm, relaxed environment during feeding times.",
			"Babies often go through phases where their feeding habits change - this is usually normal.",
			"Consider keeping a feeding diary to track patterns and identify what works best.",
			"Remember that every baby is unique and may have different feeding needs.",
		},
		behavioralTips: []string{
			"Establish a consistent feeding routine with regular times.",
			"Create a quiet, distraction-free environment for feeding.",
			"Pay attention to your baby's hunger cues and feeding signals.",
			"Be patient and avoid forcing feeding - let your baby set the pace.",
			"Try different feeding positions to find what's most comfortable.",
		},
	},
	TopicSleep: {
		gentleAdvice: []string{
			"Sleep patterns in babies can vary greatly and change frequently.",
			"It's normal for babies to wake up during the night - this is part of healthy development.",
			"Babies often need time to develop their own sleep rhythms.",
			"Sleep challenges are very common and usually temporary.",
			"Every family's sleep situation is different - find what works for you.",
		},
		behavioralTips: []string{
			"Establish a consistent bedtime routine with calming activities.",
			"Create a sleep-friendly environment (dark, quiet, comfortable temperature).",
			"Try to put your baby down when drowsy but still awake.",
			"Be consistent with nap times and bedtime.",
			"Consider using white noise or gentle music to help with sleep.",
		},
	},
	TopicBehavior: {
		gentleAdvice: []string{
			"Babies communicate through their behavior - crying and fussing are normal ways to express needs.",
			"Every baby has a unique temperament and personality.",
			"Behavioral changes often coincide with developmental milestones.",
			"It's normal for babies to have periods of increased fussiness.",
			"Your baby's behavior is not a reflection of your parenting skills.",
		},
		behavioralTips: []string{
			"Respond consistently to your baby's cues and signals.",
			"Provide plenty of positive attention and interaction.",
			"Create a predictable daily routine.",
			"Use gentle, positive reinforcement for desired behaviors.",
			"Take breaks when you need them - self-care is important.",
		},
	},
	TopicDevelopment: {
		gentleAdvice: []string{
			"Every baby develops at their own pace - there's a wide range of normal.",
			"Developmental milestones are guidelines, not strict deadlines.",
			"Babies often focus on one area of development at a time.",
			"It's normal for development to happen in spurts and pauses.",
			"Your baby's unique personality will influence how they reach milestones.",
		},
		behavioralTips: []string{
			"Provide plenty of opportunities for exploration and play.",
			"Talk, sing, and read to your baby regularly.",
			"Encourage tummy time and movement activities.",
			"Offer age-appropriate toys and activities.",
			"Celebrate your baby's progress, no matter how small.",
		},
	},
}

var generalGuidance = guidanceTemplate{
	gentleAdvice: []string{
		"It's completely normal to have questions and concerns about your baby's development.",
		"Every baby is unique and may have different needs and patterns.",
		"Trust your instincts as a parent - you know your baby best.",
		"Many parenting challenges are temporary and resolve with time.",
		"It's okay to seek support and guidance when you need it.",
	},
	behavioralTips: []string{
		"Maintain consistent routines and schedules.",
		"Provide plenty of love, attention, and positive interaction.",
		"Create a safe, nurturing environment for your baby.",
		"Take care of yourself so you can be the best parent possible.",
		"Don't hesitate to reach out for professional support when needed.",
	},
}

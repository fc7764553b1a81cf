package model

// Intent is the closed set of chat message intents.
type Intent string

// Known intents.
const (
	IntentGreeting       Intent = "greeting"
	IntentRecommendation Intent = "recommendation"
	IntentOccasion       Intent = "occasion"
	IntentFlowerType     Intent = "flower_type"
	IntentPrice          Intent = "price"
	IntentCare           Intent = "care"
	IntentMeaning        Intent = "meaning"
	IntentOrder          Intent = "order"
	IntentHelp           Intent = "help"
	IntentGeneral        Intent = "general"
)

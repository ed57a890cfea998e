package testutils

// TestTexts are sample texts with the entities Gazetteer finds in them.
var TestTexts = []string{
	"Barack Obama was the 44th President of the United States.",
	"Angela Merkel met Emmanuel Macron in Paris before flying back to Berlin.",
	"Apple and Microsoft both reported earnings on Thursday.",
	"Zoë Saldaña was born in Passaic, New Jersey.",
	"The weather was nice.",
}

// Gazetteer maps entity texts to the label the fake analysis service gives
// them.
var Gazetteer = map[string]string{
	"Barack Obama":    "PER",
	"Angela Merkel":   "PER",
	"Emmanuel Macron": "PER",
	"Zoë Saldaña":     "PER",
	"United States":   "GPE",
	"Paris":           "GPE",
	"Berlin":          "GPE",
	"Passaic":         "GPE",
	"New Jersey":      "GPE",
	"Apple":           "ORG",
	"Microsoft":       "ORG",
	"Thursday":        "DATE",
}

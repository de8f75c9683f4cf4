package dreams

import "strings"

// defaultFollowUpPhrases are the cues that a message asks about the
// previous interpretation instead of narrating a new dream.
var defaultFollowUpPhrases = []string{
	"почему",
	"что значит",
	"можешь объяснить",
	"расскажи подробнее",
	"что это значит",
	"как это понимать",
	"уточни",
	"расскажи",
	"поясни",
}

// Classifier detects follow-up questions by case-insensitive substring
// match over a fixed phrase set. It is a deliberate heuristic: false
// positives and negatives are accepted.
type Classifier struct {
	phrases []string
}

func NewClassifier(phrases ...string) *Classifier {
	if len(phrases) == 0 {
		phrases = defaultFollowUpPhrases
	}
	return &Classifier{phrases: phrases}
}

func (c *Classifier) IsFollowUp(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range c.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

package interview

import "strings"

// maxRepeatTokens gates the detector to short utterances so a long
// substantive answer that happens to contain "sorry" is not misclassified.
const maxRepeatTokens = 15

var repeatPhrases = []string{
	"repeat", "say that again", "again please", "one more time",
	"rephrase", "can you rephrase", "could you rephrase",
	"didn't catch", "didn't hear", "didn't understand",
	"what was the question", "what's the question", "what is the question",
	"sorry what", "pardon", "excuse me",
	"can you repeat", "could you repeat", "please repeat",
	"say again", "come again", "i'm sorry",
	"didn't get that", "missed that", "what did you say",
	"can you clarify", "could you clarify",
}

// IsRepeatRequest reports whether the candidate is asking to have the
// question repeated or rephrased. Substring match, not whole-word.
func IsRepeatRequest(utterance string) bool {
	lower := strings.ToLower(strings.TrimSpace(utterance))

	if len(strings.Fields(lower)) > maxRepeatTokens {
		return false
	}
	for _, phrase := range repeatPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

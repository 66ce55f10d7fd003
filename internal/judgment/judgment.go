// Package judgment compares a user's chosen option with the canned AI judgment.
//
// Alignment is a literal, case-insensitive substring check. It produces false
// negatives whenever the judgment text does not contain the option word, e.g.
// "Sentence" against "A conviction should be pursued...".
package judgment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/models"
)

// ErrInvalidOption is returned when a submitted choice is not one of
// models.Options.
var ErrInvalidOption = errors.New("invalid judgment option")

const (
	AlignedMessage    = "✅ Your decision aligns with an unbiased legal interpretation."
	MisalignedMessage = "❌ Your judgment differs from a neutral legal interpretation. " +
		"Consider how bias might influence decisions."
)

// IsAligned reports whether userChoice occurs, ignoring case, anywhere in
// aiJudgment. An empty choice always matches.
func IsAligned(userChoice, aiJudgment string) bool {
	return strings.Contains(strings.ToLower(aiJudgment), strings.ToLower(userChoice))
}

// Evaluate returns the verdict shown to the user for choice.
func Evaluate(choice models.Option, aiJudgment string) models.Verdict {
	if IsAligned(string(choice), aiJudgment) {
		return models.Verdict{Aligned: true, Message: AlignedMessage}
	}
	return models.Verdict{Aligned: false, Message: MisalignedMessage}
}

// ParseOption maps a submitted label to an Option, ignoring case and
// surrounding whitespace.
func ParseOption(s string) (models.Option, error) {
	s = strings.TrimSpace(s)
	for _, opt := range models.Options {
		if strings.EqualFold(s, string(opt)) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOption, s)
}

package models

// CaseRecord is one fixed entry of the case catalog. Records are values and
// never change after the catalog is built.
type CaseRecord struct {
	Title       string `json:"title" yaml:"title"`
	Facts       string `json:"facts" yaml:"facts"`
	BiasNote    string `json:"biasNote" yaml:"bias_note"`
	HumanPrompt string `json:"humanPrompt" yaml:"human_prompt"`
	AIJudgment  string `json:"aiJudgment" yaml:"ai_judgment"`
	RealOutcome string `json:"realOutcome" yaml:"real_outcome"`
	AIOpinion   string `json:"aiOpinion" yaml:"ai_opinion"`
}

// MissingField returns the yaml name of the first empty field, or "" when
// every field is populated.
func (c CaseRecord) MissingField() string {
	fields := []struct {
		name  string
		value string
	}{
		{"title", c.Title},
		{"facts", c.Facts},
		{"bias_note", c.BiasNote},
		{"human_prompt", c.HumanPrompt},
		{"ai_judgment", c.AIJudgment},
		{"real_outcome", c.RealOutcome},
		{"ai_opinion", c.AIOpinion},
	}
	for _, f := range fields {
		if f.value == "" {
			return f.name
		}
	}
	return ""
}

// Option is one of the judgment categories a user can pick.
type Option string

const (
	OptionRelease  Option = "Release"
	OptionSentence Option = "Sentence"
	OptionDismiss  Option = "Dismiss"
	OptionWarning  Option = "Warning/Education"
)

// Options lists the judgment categories in display order.
var Options = []Option{
	OptionRelease,
	OptionSentence,
	OptionDismiss,
	OptionWarning,
}

func (o Option) IsValid() bool {
	for _, opt := range Options {
		if o == opt {
			return true
		}
	}
	return false
}

// Timeline is the fixed sequence of stages shown for every case.
var Timeline = []string{
	"Arrest",
	"Evidence Review",
	"Human Judgment",
	"AI Judgment",
}

// EducationalNote closes every revealed case.
const EducationalNote = "Real legal decisions are often influenced by systemic factors. " +
	"This simulation shows how AI might approach justice based on fairness, equity, " +
	"and consistency, a valuable perspective for rethinking justice systems."

// NarrationWarning is shown when the AI judgment could not be narrated.
const NarrationWarning = "Voice playback failed."

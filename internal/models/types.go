package models

// State is the per-session interaction state. It is passed into every
// evaluation and returned from every transition; nothing stores it globally.
type State struct {
	SelectedCaseTitle string `json:"selectedCaseTitle"`
	UserChoice        Option `json:"userChoice,omitempty"`
	HasJudged         bool   `json:"hasJudged"`
}

// Verdict is the outcome of comparing a user's option with the AI judgment.
type Verdict struct {
	Aligned bool   `json:"aligned"`
	Message string `json:"message"`
}

// View is everything a front end needs to render one state. Reveal fields
// are only populated once the user has judged.
type View struct {
	State    State      `json:"state"`
	Case     CaseRecord `json:"case"`
	Timeline []string   `json:"timeline"`
	Options  []Option   `json:"options"`

	Revealed        bool     `json:"revealed"`
	Verdict         *Verdict `json:"verdict,omitempty"`
	EducationalNote string   `json:"educationalNote,omitempty"`

	// Audio is MP3 data for the AI judgment; nil when narration is disabled
	// or failed.
	Audio            []byte `json:"audio,omitempty"`
	NarrationWarning string `json:"narrationWarning,omitempty"`
}

// JudgeRequest is the payload for POST /api/judge.
type JudgeRequest struct {
	Title  string `json:"title"`
	Choice string `json:"choice"`
}

// CaseListResponse is the response for GET /api/cases.
type CaseListResponse struct {
	Titles []string `json:"titles"`
}

// OptionListResponse is the response for GET /api/options.
type OptionListResponse struct {
	Options []Option `json:"options"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Cases     int    `json:"cases"`
	Narration string `json:"narration"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

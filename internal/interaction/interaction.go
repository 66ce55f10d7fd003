// Package interaction turns an explicit per-session State into the View a
// front end renders. State is always passed in and returned; nothing here
// remembers a session between calls.
package interaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/catalog"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/judgment"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/models"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/narration"
)

// Select moves to the case titled title and clears any previous judgment.
func Select(_ models.State, title string) models.State {
	return models.State{SelectedCaseTitle: title}
}

// Judge records the user's choice for the selected case. Only the fixed
// options can be submitted, so an empty choice is rejected rather than
// trivially matching every judgment.
func Judge(s models.State, choice string) (models.State, error) {
	opt, err := judgment.ParseOption(choice)
	if err != nil {
		return s, err
	}
	s.UserChoice = opt
	s.HasJudged = true
	return s, nil
}

// Evaluator resolves states against the catalog and narrates revealed
// judgments.
type Evaluator struct {
	catalog  *catalog.Catalog
	narrator narration.Synthesizer
	logger   *slog.Logger
}

// NewEvaluator creates an Evaluator. narrator may be nil to disable audio.
func NewEvaluator(cat *catalog.Catalog, narrator narration.Synthesizer, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{catalog: cat, narrator: narrator, logger: logger}
}

func (e *Evaluator) Catalog() *catalog.Catalog {
	return e.catalog
}

// NarrationProvider names the configured narrator, or "none".
func (e *Evaluator) NarrationProvider() string {
	if e.narrator == nil {
		return narration.ProviderNone
	}
	return e.narrator.Name()
}

// View resolves s without narrating. An empty title selects the first case;
// an unknown title fails with catalog.ErrNotFound.
func (e *Evaluator) View(s models.State) (*models.View, error) {
	if s.SelectedCaseTitle == "" {
		s.SelectedCaseTitle = e.catalog.First().Title
	}

	rec, err := e.catalog.GetByTitle(s.SelectedCaseTitle)
	if err != nil {
		return nil, err
	}

	view := &models.View{
		State:    s,
		Case:     rec,
		Timeline: append([]string(nil), models.Timeline...),
		Options:  append([]models.Option(nil), models.Options...),
	}
	if !s.HasJudged {
		return view, nil
	}

	if !s.UserChoice.IsValid() {
		return nil, fmt.Errorf("%w: %q", judgment.ErrInvalidOption, s.UserChoice)
	}

	verdict := judgment.Evaluate(s.UserChoice, rec.AIJudgment)
	view.Revealed = true
	view.Verdict = &verdict
	view.EducationalNote = models.EducationalNote
	return view, nil
}

// Evaluate resolves s and, once judged, narrates the AI judgment. Narration
// failures never fail the call: the view carries a warning and no audio.
func (e *Evaluator) Evaluate(ctx context.Context, s models.State) (*models.View, error) {
	view, err := e.View(s)
	if err != nil {
		return nil, err
	}
	if !view.Revealed || e.narrator == nil {
		return view, nil
	}

	audio, err := e.narrator.Synthesize(ctx, view.Case.AIJudgment)
	if err != nil {
		e.logger.Warn("narration failed",
			"provider", e.narrator.Name(),
			"case", view.Case.Title,
			"error", err,
		)
		view.NarrationWarning = models.NarrationWarning
		return view, nil
	}
	view.Audio = audio
	return view, nil
}

// Narrate returns audio for the AI judgment of the case titled title. Unlike
// Evaluate it reports failures, wrapped as narration.Failure, so transports
// can choose a status code.
func (e *Evaluator) Narrate(ctx context.Context, title string) ([]byte, error) {
	rec, err := e.catalog.GetByTitle(title)
	if err != nil {
		return nil, err
	}
	if e.narrator == nil {
		return nil, ErrNarrationDisabled
	}
	return e.narrator.Synthesize(ctx, rec.AIJudgment)
}

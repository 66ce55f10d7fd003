// Package narration turns text into speech audio through an external service.
//
// Every error returned by a Synthesizer built here is a *Failure, so callers
// can degrade (skip playback, show a warning) with a single errors.Is check.
package narration

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNarration matches every *Failure.
var ErrNarration = errors.New("narration failed")

// DefaultTimeout bounds a single synthesis call.
const DefaultTimeout = 5 * time.Second

// Synthesizer converts text to MP3 audio. Implementations hold no
// per-request state; each call is independent.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Name() string
}

// Failure is a speech synthesis error. Callers recover from it and continue
// without audio.
type Failure struct {
	Provider string
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("narration (%s): %v", f.Provider, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func (f *Failure) Is(target error) bool { return target == ErrNarration }

func fail(provider string, err error) error {
	var f *Failure
	if errors.As(err, &f) {
		return err
	}
	return &Failure{Provider: provider, Err: err}
}

var errEmptyText = errors.New("empty text")

// WithTimeout bounds every call to s by d. The call is abandoned when the
// deadline passes even if s ignores its context.
func WithTimeout(s Synthesizer, d time.Duration) Synthesizer {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &timeoutSynthesizer{next: s, timeout: d}
}

type timeoutSynthesizer struct {
	next    Synthesizer
	timeout time.Duration
}

type synthResult struct {
	audio []byte
	err   error
}

func (t *timeoutSynthesizer) Name() string { return t.next.Name() }

func (t *timeoutSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan synthResult, 1)
	go func() {
		audio, err := t.next.Synthesize(ctx, text)
		done <- synthResult{audio: audio, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fail(t.Name(), fmt.Errorf("timed out after %s: %w", t.timeout, res.err))
			}
			return nil, fail(t.Name(), res.err)
		}
		return res.audio, nil
	case <-ctx.Done():
		return nil, fail(t.Name(), fmt.Errorf("timed out after %s: %w", t.timeout, ctx.Err()))
	}
}

// Provider names accepted by New.
const (
	ProviderGTTS   = "gtts"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Options configures the providers. Only the fields of the selected provider
// are read.
type Options struct {
	Timeout time.Duration

	GTTSBaseURL string
	Language    string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIVoice   string
}

// New builds the synthesizer for provider, wrapped with a timeout. It
// returns nil for ProviderNone.
func New(provider string, opts Options) (Synthesizer, error) {
	var s Synthesizer
	switch provider {
	case ProviderNone:
		return nil, nil
	case ProviderGTTS:
		s = NewGoogleTranslateClient(opts.GTTSBaseURL, opts.Language)
	case ProviderOpenAI:
		if opts.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai narration requires an API key")
		}
		s = NewOpenAIClient(opts.OpenAIAPIKey, opts.OpenAIBaseURL, opts.OpenAIVoice)
	default:
		return nil, fmt.Errorf("unknown narration provider %q", provider)
	}
	return WithTimeout(s, opts.Timeout), nil
}

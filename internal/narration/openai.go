package narration

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient synthesizes speech with the OpenAI audio API.
type OpenAIClient struct {
	client *openai.Client
	voice  openai.SpeechVoice
}

// NewOpenAIClient creates a client. baseURL may be empty to use the public
// endpoint; voice defaults to alloy.
func NewOpenAIClient(apiKey, baseURL, voice string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		voice:  openai.SpeechVoice(voice),
	}
}

func (c *OpenAIClient) Name() string { return ProviderOpenAI }

// Synthesize returns MP3 audio for text.
func (c *OpenAIClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fail(c.Name(), errEmptyText)
	}

	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fail(c.Name(), fmt.Errorf("create speech: %w", err))
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fail(c.Name(), fmt.Errorf("read speech: %w", err))
	}
	if len(audio) == 0 {
		return nil, fail(c.Name(), fmt.Errorf("empty audio response"))
	}
	return audio, nil
}

package narration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// maxChunkLen is the longest text the translate endpoint accepts per request.
const maxChunkLen = 100

// GoogleTranslateClient synthesizes speech with the Google Translate TTS
// endpoint, the service behind the gTTS library.
type GoogleTranslateClient struct {
	baseURL    string
	lang       string
	httpClient *http.Client
}

func NewGoogleTranslateClient(baseURL, lang string) *GoogleTranslateClient {
	if baseURL == "" {
		baseURL = "https://translate.google.com"
	}
	if lang == "" {
		lang = "en"
	}
	return &GoogleTranslateClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		lang:    lang,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *GoogleTranslateClient) Name() string { return ProviderGTTS }

// Synthesize requests each chunk of text in order and concatenates the MP3
// segments, which players treat as one stream.
func (c *GoogleTranslateClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	chunks := splitText(text, maxChunkLen)
	if len(chunks) == 0 {
		return nil, fail(c.Name(), errEmptyText)
	}

	var audio []byte
	for i, chunk := range chunks {
		seg, err := c.fetch(ctx, chunk, i, len(chunks))
		if err != nil {
			return nil, fail(c.Name(), fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err))
		}
		audio = append(audio, seg...)
	}
	return audio, nil
}

func (c *GoogleTranslateClient) fetch(ctx context.Context, chunk string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", c.lang)
	q.Set("q", chunk)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translate tts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translate tts: status %d", resp.StatusCode)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("translate tts: empty body")
	}
	return body, nil
}

// splitText breaks text into chunks of at most limit runes, cutting at spaces
// where possible. Words longer than limit are split mid-word.
func splitText(text string, limit int) []string {
	var chunks []string
	var cur []rune

	flush := func() {
		if s := strings.TrimSpace(string(cur)); s != "" {
			chunks = append(chunks, s)
		}
		cur = cur[:0]
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > limit {
			flush()
			chunks = append(chunks, string(w[:limit]))
			w = w[limit:]
		}
		if len(cur) > 0 && len(cur)+1+len(w) > limit {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	flush()

	return chunks
}

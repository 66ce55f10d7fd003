package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/catalog"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/interaction"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/judgment"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/models"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/narration"
)

const subwayTitle = "Case of the Subway Incident - Jamal Thompson"

// fakeTTSServer mimics the translate_tts endpoint. With fail set it answers
// every request with a 503.
func fakeTTSServer(t *testing.T, fail bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testServerOpts struct {
	provider string
	failTTS  bool
	apiKey   string
	// records replaces the built-in catalog when set.
	records []models.CaseRecord
}

func setupTestServer(t *testing.T, opts testServerOpts) *httptest.Server {
	t.Helper()

	cat, err := catalog.Default()
	if len(opts.records) > 0 {
		cat, err = catalog.New(opts.records...)
	}
	require.NoError(t, err)

	if opts.provider == "" {
		opts.provider = narration.ProviderGTTS
	}
	narrator, err := narration.New(opts.provider, narration.Options{
		Timeout:     2 * time.Second,
		GTTSBaseURL: fakeTTSServer(t, opts.failTTS).URL,
		Language:    "en",
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	eval := interaction.NewEvaluator(cat, narrator, logger)

	srv := httptest.NewServer(NewRouter(eval, opts.apiKey, []string{"*"}, logger))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, rawURL string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func postJudge(t *testing.T, srv *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/judge", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func getPage(t *testing.T, srv *httptest.Server, q url.Values) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + "/?" + q.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestHealth(t *testing.T) {
	srv := setupTestServer(t, testServerOpts{})

	var health models.HealthResponse
	resp := getJSON(t, srv.URL+"/health", &health)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 5, health.Cases)
	assert.Equal(t, "gtts", health.Narration)
	assert.Len(t, resp.Header.Get("X-Request-ID"), 8)
}

func TestCaseEndpoints(t *testing.T) {
	srv := setupTestServer(t, testServerOpts{})

	t.Run("list titles", func(t *testing.T) {
		var list models.CaseListResponse
		resp := getJSON(t, srv.URL+"/api/cases", &list)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, list.Titles, 5)
		assert.Equal(t, subwayTitle, list.Titles[0])
	})

	t.Run("get by escaped title", func(t *testing.T) {
		var rec models.CaseRecord
		resp := getJSON(t, srv.URL+"/api/cases/"+url.PathEscape("Ruchika Girhotra Case - S.P.S. Rathore"), &rec)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Abuse of power and delayed justice.", rec.BiasNote)
	})

	t.Run("unknown title", func(t *testing.T) {
		var errResp models.ErrorResponse
		resp := getJSON(t, srv.URL+"/api/cases/nonexistent-title", &errResp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, errResp.Error, "case not found")
	})

	t.Run("options", func(t *testing.T) {
		var opts models.OptionListResponse
		getJSON(t, srv.URL+"/api/options", &opts)
		assert.Equal(t, models.Options, opts.Options)
	})
}

func testRecord(title string) models.CaseRecord {
	return models.CaseRecord{
		Title:       title,
		Facts:       "facts",
		BiasNote:    "bias of " + title,
		HumanPrompt: "prompt",
		AIJudgment:  "Release.",
		RealOutcome: "outcome",
		AIOpinion:   "opinion",
	}
}

func TestGetCaseTitleEscaping(t *testing.T) {
	titles := []string{"100% Innocent", "Case A/B", "Plain Title"}
	records := make([]models.CaseRecord, len(titles))
	for i, title := range titles {
		records[i] = testRecord(title)
	}
	srv := setupTestServer(t, testServerOpts{records: records})

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			var rec models.CaseRecord
			resp := getJSON(t, srv.URL+"/api/cases/"+url.PathEscape(title), &rec)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, title, rec.Title)
		})
	}
}

func TestJudgeEndpoint(t *testing.T) {
	srv := setupTestServer(t, testServerOpts{})

	t.Run("aligned with narration", func(t *testing.T) {
		resp, data := postJudge(t, srv, `{"title":"`+subwayTitle+`","choice":"Release"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

		var view models.View
		require.NoError(t, json.Unmarshal(data, &view))
		assert.True(t, view.Revealed)
		require.NotNil(t, view.Verdict)
		assert.True(t, view.Verdict.Aligned)
		assert.Equal(t, judgment.AlignedMessage, view.Verdict.Message)
		assert.Equal(t, []byte("ID3"), view.Audio)
		assert.Equal(t, "The teen was charged and spent 3 days in juvenile detention.", view.Case.RealOutcome)
	})

	t.Run("misaligned", func(t *testing.T) {
		resp, data := postJudge(t, srv, `{"title":"`+subwayTitle+`","choice":"Sentence"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var view models.View
		require.NoError(t, json.Unmarshal(data, &view))
		assert.False(t, view.Verdict.Aligned)
	})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid choice", `{"title":"` + subwayTitle + `","choice":"Acquit"}`, http.StatusBadRequest},
		{"empty choice", `{"title":"` + subwayTitle + `","choice":""}`, http.StatusBadRequest},
		{"unknown title", `{"title":"nonexistent-title","choice":"Release"}`, http.StatusNotFound},
		{"missing title", `{"choice":"Release"}`, http.StatusBadRequest},
		{"malformed body", `{"title":`, http.StatusBadRequest},
		{"unknown field", `{"title":"x","choice":"Release","extra":1}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := postJudge(t, srv, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestJudgeEndpointNarrationFailure(t *testing.T) {
	srv := setupTestServer(t, testServerOpts{failTTS: true})

	resp, data := postJudge(t, srv, `{"title":"`+subwayTitle+`","choice":"Release"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view models.View
	require.NoError(t, json.Unmarshal(data, &view))
	assert.True(t, view.Revealed)
	assert.Nil(t, view.Audio)
	assert.Equal(t, models.NarrationWarning, view.NarrationWarning)
}

func TestNarrationEndpoint(t *testing.T) {
	q := "?case=" + url.QueryEscape(subwayTitle)

	t.Run("streams audio", func(t *testing.T) {
		srv := setupTestServer(t, testServerOpts{})
		resp, err := http.Get(srv.URL + "/api/narration" + q)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))
		body, _ := io.ReadAll(resp.Body)
		assert.True(t, bytes.HasPrefix(body, []byte("ID3")))
	})

	tests := []struct {
		name   string
		opts   testServerOpts
		query  string
		status int
	}{
		{"service failure", testServerOpts{failTTS: true}, q, http.StatusBadGateway},
		{"disabled", testServerOpts{provider: narration.ProviderNone}, q, http.StatusServiceUnavailable},
		{"unknown case", testServerOpts{}, "?case=nope", http.StatusNotFound},
		{"missing case", testServerOpts{}, "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := setupTestServer(t, tt.opts)
			resp := getJSON(t, srv.URL+"/api/narration"+tt.query, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestPage(t *testing.T) {
	srv := setupTestServer(t, testServerOpts{})

	t.Run("initial view", func(t *testing.T) {
		status, body := getPage(t, srv, url.Values{})
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, subwayTitle)
		assert.Contains(t, body, "Racial bias in assumption of guilt.")
		assert.Contains(t, body, "Arrest → Evidence Review → Human Judgment → AI Judgment")
		assert.Contains(t, body, `value="Warning/Education"`)
		assert.NotContains(t, body, "Recommendation")
	})

	t.Run("selecting a case shows it unjudged", func(t *testing.T) {
		status, body := getPage(t, srv, url.Values{"case": {"Case of Protest Arrest - Anjali Rao"}})
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Should she face consequences for the protest?")
		assert.NotContains(t, body, "Real Outcome")
	})

	t.Run("judged view", func(t *testing.T) {
		status, body := getPage(t, srv, url.Values{"case": {subwayTitle}, "choice": {"Release"}})
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "The individual should be released with a formal apology and compensation.")
		assert.Contains(t, body, judgment.AlignedMessage)
		assert.Contains(t, body, "data:audio/mp3;base64,SUQz")
		assert.Contains(t, body, "Real Outcome")
		assert.Contains(t, body, "Educational Note")
		assert.NotContains(t, body, models.NarrationWarning)
	})

	t.Run("invalid choice", func(t *testing.T) {
		status, _ := getPage(t, srv, url.Values{"case": {subwayTitle}, "choice": {""}})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown case", func(t *testing.T) {
		status, _ := getPage(t, srv, url.Values{"case": {"nonexistent-title"}})
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestPageNarrationFailureShowsWarning(t *testing.T) {
	srv := setupTestServer(t, testServerOpts{failTTS: true})

	status, body := getPage(t, srv, url.Values{"case": {subwayTitle}, "choice": {"Sentence"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, models.NarrationWarning)
	assert.Contains(t, body, "differs from a neutral legal interpretation")
	assert.NotContains(t, body, "<audio")
}

func TestBearerAuth(t *testing.T) {
	srv := setupTestServer(t, testServerOpts{apiKey: "secret"})

	resp := getJSON(t, srv.URL+"/api/cases", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/cases", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The page and health check stay public.
	resp = getJSON(t, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	status, _ := getPage(t, srv, url.Values{})
	assert.Equal(t, http.StatusOK, status)
}

func TestCORSPreflight(t *testing.T) {
	srv := setupTestServer(t, testServerOpts{apiKey: "secret"})

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/judge", nil)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStateFromQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    models.State
		wantErr bool
	}{
		{"empty", "", models.State{}, false},
		{"case only", "case=A", models.State{SelectedCaseTitle: "A"}, false},
		{"submitted", "case=A&choice=dismiss", models.State{SelectedCaseTitle: "A", UserChoice: models.OptionDismiss, HasJudged: true}, false},
		{"submitted empty", "case=A&choice=", models.State{SelectedCaseTitle: "A"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, err := StateFromQuery(r)
			if tt.wantErr {
				assert.ErrorIs(t, err, judgment.ErrInvalidOption)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

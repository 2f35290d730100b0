package generator

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/heyvito/httpie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/appforge-ci/deployer/attachments"
	"github.com/appforge-ci/deployer/request"
)

func makeServer(t *testing.T, responses ...*httpie.Response) *httpie.Server {
	zap.ReplaceGlobals(zap.NewNop())
	srv := httpie.New(responses...)
	t.Cleanup(srv.Stop)
	return srv
}

func makeRequest() *request.DeploymentRequest {
	return &request.DeploymentRequest{
		Task:  "census",
		Brief: "Build a census dashboard",
		Checks: []request.Check{
			{Description: "shows a table"},
			{JS: "document.querySelector('table') !== null"},
			{JS: "window.total > 0"},
		},
		Round: 1,
	}
}

func completionBody(t *testing.T, content string) string {
	data, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	require.NoError(t, err)
	return string(data)
}

func TestGenerate(t *testing.T) {
	doc := "<!DOCTYPE html>\n<html><body>census</body></html>"

	srv := makeServer(t, httpie.WithCustom("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "Build a census dashboard")
		assert.Contains(t, req.Messages[1].Content, "shows a table")

		w.WriteHeader(200)
		_, _ = w.Write([]byte(completionBody(t, "```html\n"+doc+"\n```")))
	}))

	cli := New(Opts{BaseURL: srv.URL + "/v1", APIKey: "key", Model: "gpt-4o"})
	out := cli.Generate(makeRequest(), nil)
	assert.Equal(t, doc, out)
}

func TestGenerateFallsBack(t *testing.T) {
	calls := 0
	srv := makeServer(t, httpie.WithCustom("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(500)
		_, _ = w.Write([]byte("backend down"))
	}))

	cli := New(Opts{BaseURL: srv.URL + "/v1", APIKey: "key", Model: "gpt-4o"})
	out := cli.Generate(makeRequest(), nil)

	// Primary call plus one direct retry, then the canned document.
	assert.Equal(t, 2, calls)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Fallback Application")
	assert.Contains(t, out, "backend down")
}

func TestBuildPrompt(t *testing.T) {
	atts := []attachments.Attachment{
		{Name: "data.csv", MediaType: "text/csv", Content: []byte("a,b")},
	}

	prompt := buildPrompt(makeRequest(), atts)
	assert.Contains(t, prompt, "BRIEF: Build a census dashboard")
	assert.Contains(t, prompt, "- shows a table")
	assert.Contains(t, prompt, "Ensure proper DOM elements: document.querySelector('table') !== null")
	assert.Contains(t, prompt, "JavaScript validation: window.total > 0")
	assert.Contains(t, prompt, "ATTACHMENTS PROVIDED (1 files)")
	assert.Contains(t, prompt, "data.csv (text/csv)")
}

func TestStripFences(t *testing.T) {
	doc := "<!DOCTYPE html><html></html>"
	assert.Equal(t, doc, StripFences(doc))
	assert.Equal(t, doc, StripFences("```html\n"+doc+"\n```"))
	assert.Equal(t, doc, StripFences("```\n"+doc+"\n```"))
}

func TestFallbackDocumentEscapes(t *testing.T) {
	out := FallbackDocument(`boom <script>alert(1)</script>`)
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "boom")
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}

func TestPing(t *testing.T) {
	t.Run("no key", func(t *testing.T) {
		cli := New(Opts{BaseURL: "http://localhost:1", Model: "gpt-4o"})
		assert.Error(t, cli.Ping())
	})

	t.Run("reachable", func(t *testing.T) {
		srv := makeServer(t, httpie.WithCustom("/v1/models", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(200)
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		cli := New(Opts{BaseURL: srv.URL + "/v1", APIKey: "key", Model: "gpt-4o"})
		assert.NoError(t, cli.Ping())
	})
}

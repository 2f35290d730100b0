// Package generator produces a self-contained single-page application for a
// task brief by calling a chat-completions backend, falling back to a canned
// document when the backend is unreachable.
package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/levigross/grequests"
	"go.uber.org/zap"

	"github.com/appforge-ci/deployer/attachments"
	"github.com/appforge-ci/deployer/request"
)

const systemPrompt = "You are an expert web developer who creates complete, functional, " +
	"production-ready web applications. You always generate valid, working HTML with inline " +
	"CSS and JavaScript. Generate ONLY the HTML code without any markdown formatting or explanations."

const userAgent = "appforge-deployer/1.0"

type Client interface {
	// Generate always returns a publishable document. Backend failures
	// degrade to a fallback page embedding the failure reason.
	Generate(req *request.DeploymentRequest, atts []attachments.Attachment) string
	Ping() error
}

type ServiceError struct {
	HTTPStatus int
	Body       []byte
}

func (e ServiceError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.HTTPStatus, e.Body)
}

type Opts struct {
	BaseURL string
	APIKey  string
	Model   string
}

func New(opts Opts) Client {
	return &openAI{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		model:   opts.Model,
		session: grequests.NewSession(nil),
		log:     zap.L().With(zap.String("facility", "generator")),
	}
}

type openAI struct {
	baseURL string
	apiKey  string
	model   string
	session *grequests.Session
	log     *zap.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens"`
	Temperature      float64       `json:"temperature"`
	PresencePenalty  float64       `json:"presence_penalty"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (o *openAI) Generate(req *request.DeploymentRequest, atts []attachments.Attachment) string {
	prompt := buildPrompt(req, atts)

	code, err := o.complete(o.session, prompt)
	if err == nil {
		o.log.Info("Generated application code", zap.String("task", req.Task), zap.Int("chars", len(code)))
		return code
	}
	o.log.Error("Generation failed, retrying over direct transport", zap.Error(err))

	// Second pass goes straight through the package-level client instead of
	// the pooled session, matching the backend's recommended recovery path.
	code, err = o.complete(nil, prompt)
	if err == nil {
		o.log.Info("Direct generation call succeeded", zap.Int("chars", len(code)))
		return code
	}
	o.log.Error("Direct generation call failed, using fallback document", zap.Error(err))

	return FallbackDocument(err.Error())
}

func (o *openAI) complete(session *grequests.Session, prompt string) (string, error) {
	opts := &grequests.RequestOptions{
		JSON: chatRequest{
			Model: o.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: prompt},
			},
			MaxTokens:        4000,
			Temperature:      0.1,
			PresencePenalty:  0.1,
			FrequencyPenalty: 0.1,
		},
		Headers: map[string]string{
			"Authorization": "Bearer " + o.apiKey,
			"User-Agent":    userAgent,
		},
		RequestTimeout: 120 * time.Second,
	}

	url := o.baseURL + "/chat/completions"
	var resp *grequests.Response
	var err error
	if session != nil {
		resp, err = session.Post(url, opts)
	} else {
		resp, err = grequests.Post(url, opts)
	}
	if err != nil {
		return "", err
	}
	if !resp.Ok {
		return "", ServiceError{HTTPStatus: resp.StatusCode, Body: resp.Bytes()}
	}

	var parsed chatResponse
	if err = resp.JSON(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response carries no choices")
	}

	return StripFences(strings.TrimSpace(parsed.Choices[0].Message.Content)), nil
}

func (o *openAI) Ping() error {
	if o.apiKey == "" {
		return fmt.Errorf("no API key configured")
	}
	resp, err := grequests.Get(o.baseURL+"/models", &grequests.RequestOptions{
		Headers:        map[string]string{"Authorization": "Bearer " + o.apiKey},
		RequestTimeout: 10 * time.Second,
	})
	if err != nil {
		return err
	}
	if !resp.Ok {
		return ServiceError{HTTPStatus: resp.StatusCode, Body: resp.Bytes()}
	}
	return nil
}

// StripFences removes surrounding markdown code-fence markup that models
// occasionally wrap around the document.
func StripFences(code string) string {
	if !strings.HasPrefix(code, "```") {
		return code
	}
	if strings.HasPrefix(code, "```html") {
		code = strings.TrimPrefix(code, "```html")
	} else {
		code = strings.TrimPrefix(code, "```")
	}
	code = strings.TrimSuffix(strings.TrimSpace(code), "```")
	return strings.TrimSpace(code)
}

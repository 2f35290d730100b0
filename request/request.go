package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Check is a single acceptance criterion. At least one of JS or Description
// is set after normalization.
type Check struct {
	JS          string `json:"js,omitempty"`
	Description string `json:"description,omitempty"`
}

// RawAttachment is an undecoded attachment reference as submitted by the
// caller. URL is expected to be a data-URI; decoding happens later.
type RawAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DeploymentRequest is a fully-defaulted, validated task submission. It is
// built once per inbound call and not mutated afterwards.
type DeploymentRequest struct {
	Task          string          `json:"task"`
	Brief         string          `json:"brief"`
	Checks        []Check         `json:"checks"`
	Attachments   []RawAttachment `json:"attachments"`
	Email         string          `json:"email"`
	Round         int             `json:"round"`
	Nonce         string          `json:"nonce"`
	EvaluationURL string          `json:"evaluation_url"`
	Secret        string          `json:"secret"`
}

// Defaults carries the configured values substituted into requests that omit
// them.
type Defaults struct {
	Secret        string
	Email         string
	EvaluationURL string
}

const (
	DefaultEmail = "student@example.com"
	DefaultCheck = "document.title.length > 0"
)

type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing essential field: %s", e.Field)
}

type InvalidCheckError struct {
	Index  int
	Reason string
}

func (e InvalidCheckError) Error() string {
	return fmt.Sprintf("check at index %d %s", e.Index, e.Reason)
}

type MalformedError struct {
	Reason string
}

func (e MalformedError) Error() string { return e.Reason }

var round2Patterns = []string{"round2", "round-2", "round_2", "r2-", "-r2", "r2_"}
var round1Patterns = []string{"round1", "round-1", "round_1", "r1-", "-r1", "r1_"}

// Normalize turns an arbitrary decoded JSON object into a DeploymentRequest,
// applying defaults and repairs in a fixed order. It performs no network or
// disk access.
func Normalize(data map[string]interface{}, defaults Defaults) (*DeploymentRequest, error) {
	log := zap.L().With(zap.String("facility", "request"))

	// A nested task object carries the brief, checks and attachments; hoist
	// them and keep the nested id as the task identifier.
	if nested, ok := data["task"].(map[string]interface{}); ok {
		for _, field := range []string{"brief", "checks", "attachments"} {
			if v, ok := nested[field]; ok {
				data[field] = v
			}
		}
		if v, ok := nested["evaluation_url"]; ok {
			data["evaluation_url"] = v
		}
		data["task"] = nested["id"]
	}

	req := &DeploymentRequest{
		Task:          stringField(data, "task"),
		Brief:         stringField(data, "brief"),
		Email:         stringField(data, "email"),
		Nonce:         stringField(data, "nonce"),
		EvaluationURL: stringField(data, "evaluation_url"),
		Secret:        stringField(data, "secret"),
	}

	if req.Email == "" {
		req.Email = defaults.Email
	}
	if req.Nonce == "" {
		req.Nonce = uuid.NewString()
	}
	if req.EvaluationURL == "" {
		req.EvaluationURL = defaults.EvaluationURL
	}

	if req.Task == "" {
		return nil, MissingFieldError{Field: "task"}
	}
	if req.Brief == "" {
		return nil, MissingFieldError{Field: "brief"}
	}
	if _, ok := data["checks"]; !ok || data["checks"] == nil {
		return nil, MissingFieldError{Field: "checks"}
	}

	// A missing secret is substituted with the configured one. This is a
	// convenience default; the actual comparison against a supplied secret
	// happens at the HTTP boundary before normalization runs.
	if req.Secret == "" {
		req.Secret = defaults.Secret
		log.Info("Added default secret", zap.String("task", req.Task))
	}

	req.Round = normalizeRound(data, req.Task, log)

	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		log.Info("Fixed invalid email, using default", zap.String("email", req.Email))
		req.Email = DefaultEmail
	}

	checks, err := normalizeChecks(data["checks"])
	if err != nil {
		return nil, err
	}
	req.Checks = checks

	req.Attachments = collectAttachments(data["attachments"])

	return req, nil
}

// normalizeRound prefers an explicit round field, coercing numeric strings,
// and falls back to substring detection on the task id. Anything outside
// {1, 2} clamps to 1.
func normalizeRound(data map[string]interface{}, task string, log *zap.Logger) int {
	round, known := 0, false

	switch v := data["round"].(type) {
	case float64:
		round, known = int(v), true
	case int:
		round, known = v, true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			round, known = n, true
			log.Info("Converted round to integer", zap.Int("round", n))
		} else {
			log.Warn("Invalid round value, detecting from task name", zap.String("round", v))
		}
	}

	if !known {
		name := strings.ToLower(task)
		switch {
		case containsAny(name, round2Patterns):
			round = 2
			log.Info("Detected round 2 from task name", zap.String("task", task))
		case containsAny(name, round1Patterns):
			round = 1
			log.Info("Detected round 1 from task name", zap.String("task", task))
		default:
			round = 1
		}
	}

	if round != 1 && round != 2 {
		log.Warn("Invalid round, defaulting to 1", zap.Int("round", round))
		round = 1
	}
	return round
}

func normalizeChecks(raw interface{}) ([]Check, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, MalformedError{Reason: "checks must be an array"}
	}

	if len(list) == 0 {
		list = []interface{}{DefaultCheck}
	}

	checks := make([]Check, 0, len(list))
	for i, item := range list {
		switch v := item.(type) {
		case string:
			checks = append(checks, Check{
				Description: v,
				JS:          DefaultCheck + " // " + v,
			})
		case map[string]interface{}:
			c := Check{JS: stringField(v, "js"), Description: stringField(v, "description")}
			if c.JS == "" && c.Description == "" {
				return nil, InvalidCheckError{Index: i, Reason: "must have either 'js' or 'description' property"}
			}
			checks = append(checks, c)
		default:
			return nil, InvalidCheckError{Index: i, Reason: "must be a string or object"}
		}
	}
	return checks, nil
}

func collectAttachments(raw interface{}) []RawAttachment {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	atts := make([]RawAttachment, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		atts = append(atts, RawAttachment{
			Name: stringField(obj, "name"),
			URL:  stringField(obj, "url"),
		})
	}
	return atts
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

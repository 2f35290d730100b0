package server

import "github.com/appforge-ci/deployer/ledger"

// Error codes surfaced in JSON error responses.
const (
	CodeJSONParse          = "JSON_PARSE_ERROR"
	CodeEmptyRequest       = "EMPTY_REQUEST"
	CodeInvalidSecret      = "INVALID_SECRET"
	CodeMissingField       = "MISSING_FIELD"
	CodeInvalidCheck       = "INVALID_CHECK"
	CodeRequestTooLarge    = "REQUEST_TOO_LARGE"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeValidationSuccess  = "VALIDATION_SUCCESS"
	CodeHostingUnavailable = "HOSTING_UNAVAILABLE"
	CodeExternalAPIError   = "EXTERNAL_API_ERROR"
	CodeDeploymentError    = "DEPLOYMENT_ERROR"
	CodeNotFound           = "NOT_FOUND"
)

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Code   string `json:"code"`
}

type indexResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Timestamp string            `json:"timestamp"`
}

type validatedData struct {
	Task             string `json:"task"`
	Round            int    `json:"round"`
	Email            string `json:"email"`
	ChecksCount      int    `json:"checks_count"`
	AttachmentsCount int    `json:"attachments_count"`
}

type validateResponse struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	Code          string        `json:"code"`
	ValidatedData validatedData `json:"validated_data"`
}

type deployResponse struct {
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	ProcessingTime float64 `json:"processing_time"`
	RepoName       string  `json:"repo_name"`
	RepoURL        string  `json:"repo_url"`
	PagesURL       string  `json:"pages_url"`
	CommitSHA      string  `json:"commit_sha"`
	Round          int     `json:"round"`
	Updated        bool    `json:"updated"`
	Notified       bool    `json:"notified"`
}

type statusResponse struct {
	Status         string        `json:"status"`
	TaskID         string        `json:"task_id"`
	Email          string        `json:"email"`
	DeploymentInfo *ledger.Entry `json:"deployment_info,omitempty"`
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

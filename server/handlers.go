package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/appforge-ci/deployer/attachments"
	"github.com/appforge-ci/deployer/hosting"
	"github.com/appforge-ci/deployer/ledger"
	"github.com/appforge-ci/deployer/notifier"
	"github.com/appforge-ci/deployer/request"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, CodeNotFound, "Endpoint not found")
		return
	}

	s.writeJSON(w, http.StatusOK, indexResponse{
		Status:  "success",
		Message: "AppForge Deployment Service",
		Version: Version,
		Endpoints: map[string]string{
			"deploy":   "/api/deploy (POST)",
			"validate": "/api/validate (POST)",
			"status":   "/status/<task_id> (GET)",
			"health":   "/health (GET)",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// maxBodyBytes caps inbound payloads. Attachments travel inline as data
// URLs, so the limit has to leave room for them.
const maxBodyBytes = 16 << 20

// parseBody decodes the request body and runs the early shared-secret
// check. A supplied, non-empty secret must match; an absent secret passes
// and picks up the configured default during normalization.
func (s *Server) parseBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, CodeValidationError, "Method not allowed")
		return nil, false
	}

	var data map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&data); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, http.StatusRequestEntityTooLarge, CodeRequestTooLarge, "Request body exceeds the maximum allowed size")
			return nil, false
		}
		s.writeError(w, http.StatusBadRequest, CodeJSONParse, "Invalid JSON format in request body")
		return nil, false
	}
	if len(data) == 0 {
		s.writeError(w, http.StatusBadRequest, CodeEmptyRequest, "Request must contain valid JSON data")
		return nil, false
	}

	if secret, ok := data["secret"].(string); ok && secret != "" && secret != s.opts.Secret {
		s.log.Warn("Invalid secret provided", zap.String("task", taskLabel(data)))
		s.writeError(w, http.StatusUnauthorized, CodeInvalidSecret, "Invalid secret provided")
		return nil, false
	}

	return data, true
}

func (s *Server) normalize(w http.ResponseWriter, data map[string]interface{}) (*request.DeploymentRequest, bool) {
	req, err := request.Normalize(data, s.opts.Defaults)
	if err == nil {
		return req, true
	}

	s.log.Warn("Request validation failed", zap.Error(err))

	var missing request.MissingFieldError
	var invalidCheck request.InvalidCheckError
	switch {
	case errors.As(err, &missing):
		s.writeError(w, http.StatusBadRequest, CodeMissingField, err.Error())
	case errors.As(err, &invalidCheck):
		s.writeError(w, http.StatusUnprocessableEntity, CodeInvalidCheck, err.Error())
	default:
		s.writeError(w, http.StatusUnprocessableEntity, CodeValidationError, err.Error())
	}
	return nil, false
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	data, ok := s.parseBody(w, r)
	if !ok {
		return
	}
	req, ok := s.normalize(w, data)
	if !ok {
		return
	}
	s.writeValidated(w, req)
}

func (s *Server) writeValidated(w http.ResponseWriter, req *request.DeploymentRequest) {
	s.writeJSON(w, http.StatusOK, validateResponse{
		Status:  "success",
		Message: "Request validation passed",
		Code:    CodeValidationSuccess,
		ValidatedData: validatedData{
			Task:             req.Task,
			Round:            req.Round,
			Email:            req.Email,
			ChecksCount:      len(req.Checks),
			AttachmentsCount: len(req.Attachments),
		},
	})
}

func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	data, ok := s.parseBody(w, r)
	if !ok {
		return
	}

	s.log.Info("Received deployment request", zap.String("task", taskLabel(data)))

	req, ok := s.normalize(w, data)
	if !ok {
		return
	}

	if r.URL.Query().Get("validate_only") == "true" {
		s.log.Info("Validation-only mode", zap.String("task", req.Task))
		s.writeValidated(w, req)
		return
	}

	if s.opts.Hosting == nil {
		s.log.Error("Hosting client not available")
		s.writeError(w, http.StatusInternalServerError, CodeHostingUnavailable,
			"Repository hosting integration not available. Check the configured token.")
		return
	}

	atts := attachments.Decode(req.Attachments)
	site := s.opts.Generator.Generate(req, atts)

	key, action := s.opts.Ledger.Resolve(req.Email, req.Task, req.Round)
	s.log.Info("Resolved deployment",
		zap.String("deployment_key", key),
		zap.Int("round", req.Round),
		zap.Bool("update", action.Kind == ledger.ActionUpdate))

	result, err := s.publish(req, action, site, atts)
	if err != nil {
		deploymentsTotal.WithLabelValues("failed").Inc()
		s.log.Error("Deployment failed", zap.String("task", req.Task), zap.Error(err))

		var svcErr hosting.ServiceError
		if errors.As(err, &svcErr) {
			s.writeError(w, http.StatusBadGateway, CodeExternalAPIError, "External service error: "+err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, CodeDeploymentError, "Deployment failed: "+err.Error())
		return
	}

	// The ledger is written only after the publisher fully succeeded.
	if result.Updated {
		s.opts.Ledger.RecordUpdate(key, result.RepoName)
		deploymentsTotal.WithLabelValues("updated").Inc()
	} else {
		s.opts.Ledger.RecordCreate(key, result.RepoName)
		deploymentsTotal.WithLabelValues("created").Inc()
	}

	notified := s.opts.Notifier.Notify(req.EvaluationURL, notifier.Payload{
		Email:     req.Email,
		Task:      req.Task,
		Round:     req.Round,
		Nonce:     req.Nonce,
		RepoURL:   result.RepoURL,
		CommitSHA: result.CommitSHA,
		PagesURL:  result.PagesURL,
		Updated:   result.Updated,
	})
	if notified {
		notificationsTotal.WithLabelValues("ok").Inc()
	} else {
		notificationsTotal.WithLabelValues("failed").Inc()
	}

	processing := time.Since(startTime)
	s.log.Info("Deployment completed",
		zap.String("task", req.Task),
		zap.Duration("duration", processing))

	s.writeJSON(w, http.StatusOK, deployResponse{
		Status:         "success",
		Message:        "Deployment completed successfully",
		ProcessingTime: processing.Seconds(),
		RepoName:       result.RepoName,
		RepoURL:        result.RepoURL,
		PagesURL:       result.PagesURL,
		CommitSHA:      result.CommitSHA,
		Round:          req.Round,
		Updated:        result.Updated,
		Notified:       notified,
	})
}

// publish runs the resolved action against the hosting service. An update
// whose repository vanished degrades to a fresh creation.
func (s *Server) publish(req *request.DeploymentRequest, action ledger.Action, site string, atts []attachments.Attachment) (*hosting.Result, error) {
	if action.Kind == ledger.ActionUpdate {
		result, err := s.opts.Hosting.Update(action.RepoName, req.Task, ledger.BaseTaskID(req.Task), site, atts)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, hosting.ErrRepoNotFound) {
			return nil, err
		}
		s.log.Warn("Recorded repository is gone, creating a new one",
			zap.String("repo_name", action.RepoName))
	}

	return s.opts.Hosting.Create(req.Task, req.Email, site, atts)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, CodeValidationError, "Method not allowed")
		return
	}

	taskID := strings.TrimPrefix(r.URL.Path, "/status/")
	email := r.URL.Query().Get("email")
	key := email + "-" + taskID

	entry, ok := s.opts.Ledger.Get(key)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, statusResponse{
			Status: "not_found",
			TaskID: taskID,
			Email:  email,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{
		Status:         "found",
		TaskID:         taskID,
		Email:          email,
		DeploymentInfo: &entry,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"hosting":   "unavailable",
		"generator": "unavailable",
	}

	if s.opts.Hosting != nil && s.opts.Hosting.Ping() == nil {
		services["hosting"] = "ok"
	}
	if s.opts.Generator != nil && s.opts.Generator.Ping() == nil {
		services["generator"] = "ok"
	}

	status := "healthy"
	for _, v := range services {
		if v != "ok" {
			status = "degraded"
			break
		}
	}

	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
		Version:   Version,
	})
}

func taskLabel(data map[string]interface{}) string {
	switch v := data["task"].(type) {
	case string:
		return v
	case map[string]interface{}:
		if id, ok := v["id"].(string); ok {
			return id
		}
	}
	return "unknown"
}

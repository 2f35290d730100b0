// Package hosting publishes generated applications to a GitHub-compatible
// hosting service: repository creation, file commits, static pages
// enablement, and in-place round-2 updates.
package hosting

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/levigross/grequests"
	"go.uber.org/zap"

	"github.com/appforge-ci/deployer/attachments"
)

// ErrRepoNotFound reports that neither the recorded repository name nor the
// base-task-id search located a repository to update. Callers degrade to a
// fresh creation.
var ErrRepoNotFound = errors.New("no matching repository found")

type ServiceError struct {
	HTTPStatus int
	Body       []byte
}

func (e ServiceError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.HTTPStatus, e.Body)
}

// Result describes a completed publish. Updated is false for fresh
// creations.
type Result struct {
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
	RepoName  string `json:"repo_name"`
	Updated   bool   `json:"updated"`
}

type Client interface {
	Ping() error
	Login() string

	// Create provisions a new repository named after the task, commits the
	// license, README, site document and attachments, and enables pages.
	Create(taskID, email, site string, atts []attachments.Attachment) (*Result, error)

	// Update rewrites index.html and the attachments in an existing
	// repository. When repoName cannot be located it falls back to searching
	// by base task id, and returns ErrRepoNotFound when that fails too.
	Update(repoName, taskID, baseTaskID, site string, atts []attachments.Attachment) (*Result, error)
}

func New(baseHost, token string) (Client, error) {
	c := &github{
		baseHost: strings.TrimSuffix(baseHost, "/"),
		token:    token,
		log:      zap.L().With(zap.String("facility", "hosting")),
	}

	var user struct {
		Login string `json:"login"`
	}
	data, err := c.do("GET", "/user", nil)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	c.login = user.Login

	c.log.Info("Authenticated against hosting service", zap.String("login", c.login))
	return c, nil
}

type github struct {
	baseHost string
	token    string
	login    string
	log      *zap.Logger
}

// nowFunc is swapped out by tests to pin repository name timestamps.
var nowFunc = time.Now

func (g *github) do(method, endpoint string, opts *grequests.RequestOptions) ([]byte, error) {
	if opts == nil {
		opts = &grequests.RequestOptions{}
	}
	if opts.Headers == nil {
		opts.Headers = map[string]string{}
	}

	opts.Headers["Authorization"] = "token " + g.token
	opts.Headers["Accept"] = "application/vnd.github.v3+json"
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	resp, err := grequests.DoRegularRequest(method, g.baseHost+endpoint, opts)
	if err != nil {
		return nil, err
	}
	if !resp.Ok {
		return nil, ServiceError{HTTPStatus: resp.StatusCode, Body: resp.Bytes()}
	}

	return resp.Bytes(), nil
}

func (g *github) Ping() error {
	_, err := g.do("GET", "/user", nil)
	return err
}

func (g *github) Login() string { return g.login }

func (g *github) Create(taskID, email, site string, atts []attachments.Attachment) (*Result, error) {
	repoName := fmt.Sprintf("%s-%d", taskID, nowFunc().Unix())
	g.log.Info("Creating repository", zap.String("repo_name", repoName))

	var repo struct {
		HTMLURL  string `json:"html_url"`
		FullName string `json:"full_name"`
		Name     string `json:"name"`
	}
	data, err := g.do("POST", "/user/repos", &grequests.RequestOptions{
		JSON: map[string]interface{}{
			"name":          repoName,
			"description":   fmt.Sprintf("Auto-generated application for task %s", taskID),
			"private":       false,
			"has_issues":    true,
			"has_wiki":      false,
			"has_downloads": true,
			"auto_init":     false,
		},
	})
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(data, &repo); err != nil {
		return nil, err
	}

	sha, err := g.createFile(repoName, "LICENSE", "Add MIT License", []byte(mitLicense()))
	if err != nil {
		return nil, err
	}
	if sha, err = g.createFile(repoName, "README.md", "Add README", []byte(readme(taskID, site, email))); err != nil {
		return nil, err
	}
	if sha, err = g.createFile(repoName, "index.html", "Add main application", []byte(site)); err != nil {
		return nil, err
	}

	for _, att := range atts {
		path := "assets/" + att.Name
		attSHA, attErr := g.createFile(repoName, path, "Add attachment: "+att.OriginalName, att.Content)
		if attErr != nil {
			g.log.Error("Failed adding attachment", zap.String("path", path), zap.Error(attErr))
			continue
		}
		sha = attSHA
		g.log.Info("Added attachment", zap.String("path", path))
	}

	g.enablePages(repo.FullName)

	result := &Result{
		RepoURL:   repo.HTMLURL,
		CommitSHA: sha,
		PagesURL:  g.pagesURL(repoName),
		RepoName:  repoName,
	}
	g.log.Info("Repository setup complete", zap.String("pages_url", result.PagesURL))
	return result, nil
}

func (g *github) Update(repoName, taskID, baseTaskID, site string, atts []attachments.Attachment) (*Result, error) {
	target, err := g.locateRepo(repoName, baseTaskID)
	if err != nil {
		return nil, err
	}

	g.log.Info("Updating repository", zap.String("repo_name", target))

	sha, err := g.putFile(target, "index.html", "Update for Round 2: "+taskID, []byte(site))
	if err != nil {
		return nil, err
	}

	for _, att := range atts {
		path := "assets/" + att.Name
		attSHA, attErr := g.putFile(target, path, "Update attachment for Round 2: "+att.OriginalName, att.Content)
		if attErr != nil {
			g.log.Error("Failed updating attachment", zap.String("path", path), zap.Error(attErr))
			continue
		}
		sha = attSHA
		g.log.Info("Updated attachment", zap.String("path", path))
	}

	var repo struct {
		HTMLURL string `json:"html_url"`
	}
	if data, repoErr := g.do("GET", "/repos/"+g.login+"/"+target, nil); repoErr == nil {
		_ = json.Unmarshal(data, &repo)
	}

	result := &Result{
		RepoURL:   repo.HTMLURL,
		CommitSHA: sha,
		PagesURL:  g.pagesURL(target),
		RepoName:  target,
		Updated:   true,
	}
	g.log.Info("Repository update complete", zap.String("pages_url", result.PagesURL))
	return result, nil
}

// locateRepo resolves the repository to update: the recorded name when it
// still exists, otherwise the newest repository whose name minus a trailing
// numeric timestamp equals the base task id.
func (g *github) locateRepo(repoName, baseTaskID string) (string, error) {
	if repoName != "" {
		if _, err := g.do("GET", "/repos/"+g.login+"/"+repoName, nil); err == nil {
			return repoName, nil
		}
		g.log.Warn("Recorded repository not found, searching by task",
			zap.String("repo_name", repoName), zap.String("base_task_id", baseTaskID))
	}

	data, err := g.do("GET", "/users/"+g.login+"/repos", &grequests.RequestOptions{
		Params: map[string]string{"sort": "created", "direction": "desc", "per_page": "100"},
	})
	if err != nil {
		return "", err
	}

	var repos []struct {
		Name string `json:"name"`
	}
	if err = json.Unmarshal(data, &repos); err != nil {
		return "", err
	}

	for _, repo := range repos {
		if stripTimestamp(repo.Name) == baseTaskID {
			g.log.Info("Found matching repository", zap.String("repo_name", repo.Name))
			return repo.Name, nil
		}
	}

	return "", ErrRepoNotFound
}

// stripTimestamp removes a trailing -<digits> segment from a repository name
// produced by Create.
func stripTimestamp(name string) string {
	idx := strings.LastIndexByte(name, '-')
	if idx < 0 {
		return name
	}
	suffix := name[idx+1:]
	if suffix == "" {
		return name
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return name
		}
	}
	return name[:idx]
}

func (g *github) createFile(repoName, path, message string, content []byte) (string, error) {
	return g.commitFile(repoName, path, message, content, "")
}

// putFile updates path when it already exists and creates it otherwise.
func (g *github) putFile(repoName, path, message string, content []byte) (string, error) {
	var existing struct {
		SHA string `json:"sha"`
	}
	if data, err := g.do("GET", "/repos/"+g.login+"/"+repoName+"/contents/"+path, nil); err == nil {
		_ = json.Unmarshal(data, &existing)
	}
	return g.commitFile(repoName, path, message, content, existing.SHA)
}

func (g *github) commitFile(repoName, path, message string, content []byte, sha string) (string, error) {
	body := map[string]interface{}{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if sha != "" {
		body["sha"] = sha
	}

	data, err := g.do("PUT", "/repos/"+g.login+"/"+repoName+"/contents/"+path, &grequests.RequestOptions{JSON: body})
	if err != nil {
		return "", err
	}

	var parsed struct {
		Commit struct {
			SHA string `json:"sha"`
		} `json:"commit"`
	}
	if err = json.Unmarshal(data, &parsed); err != nil {
		return "", err
	}
	return parsed.Commit.SHA, nil
}

// enablePages is best-effort: 409 means pages were already enabled, anything
// else unexpected is logged and ignored.
func (g *github) enablePages(fullName string) {
	_, err := g.do("POST", "/repos/"+fullName+"/pages", &grequests.RequestOptions{
		JSON: map[string]interface{}{
			"source": map[string]string{"branch": "main", "path": "/"},
		},
	})
	if err == nil {
		g.log.Info("Pages enabled", zap.String("repo", fullName))
		return
	}

	var svcErr ServiceError
	if errors.As(err, &svcErr) && svcErr.HTTPStatus == 409 {
		g.log.Info("Pages already enabled", zap.String("repo", fullName))
		return
	}
	g.log.Warn("Could not enable pages", zap.String("repo", fullName), zap.Error(err))
}

func (g *github) pagesURL(repoName string) string {
	return fmt.Sprintf("https://%s.github.io/%s/", g.login, repoName)
}

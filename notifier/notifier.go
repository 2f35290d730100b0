// Package notifier pushes deployment outcomes to the evaluation callback
// with bounded retries. Delivery is strictly best-effort: exhausting the
// retry budget never fails the deployment that triggered it.
package notifier

import (
	"net/http"
	"strings"
	"time"

	"github.com/levigross/grequests"
	"go.uber.org/zap"
)

// This is here just to make sure we can not really sleep during tests.
var sleepFunc = time.Sleep

const maxAttempts = 5

var retryDelays = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
	8 * time.Second,
	16 * time.Second,
}

const callbackPath = "/evaluation_callback"
const callbackPathRound2 = "/evaluation_callback_round2"

const userAgent = "appforge-deployer/1.0"

// Payload carries the deployment outcome delivered to the evaluator.
type Payload struct {
	Email     string `json:"email"`
	Task      string `json:"task"`
	Round     int    `json:"round"`
	Nonce     string `json:"nonce"`
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
	Updated   bool   `json:"updated"`
}

type Notifier interface {
	// Notify reports whether any attempt got a 200 back.
	Notify(evaluationURL string, payload Payload) bool
}

func New() Notifier {
	return &notifier{log: zap.L().With(zap.String("facility", "notifier"))}
}

type notifier struct {
	log *zap.Logger
}

func (n *notifier) Notify(evaluationURL string, payload Payload) bool {
	if payload.Round == 2 {
		evaluationURL = strings.Replace(evaluationURL, callbackPath, callbackPathRound2, 1)
		n.log.Info("Using round 2 evaluation URL", zap.String("url", evaluationURL))
	}

	n.log.Info("Notifying evaluation endpoint", zap.String("url", evaluationURL))

	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := grequests.Post(evaluationURL, &grequests.RequestOptions{
			JSON:           payload,
			Headers:        map[string]string{"User-Agent": userAgent},
			RequestTimeout: 30 * time.Second,
		})

		switch {
		case err != nil:
			n.log.Error("Error contacting evaluation endpoint",
				zap.Int("attempt", attempt+1), zap.Error(err))
		case resp.StatusCode == http.StatusOK:
			n.log.Info("Notified evaluation endpoint", zap.Int("attempt", attempt+1))
			return true
		default:
			n.log.Warn("Evaluation endpoint rejected notification",
				zap.Int("attempt", attempt+1),
				zap.Int("status", resp.StatusCode),
				zap.String("body", resp.String()))
		}

		if attempt < maxAttempts-1 {
			delay := retryDelays[attempt]
			n.log.Info("Backing off before retry", zap.Duration("delay", delay))
			sleepFunc(delay)
		}
	}

	n.log.Error("Failed notifying evaluation endpoint", zap.Int("attempts", maxAttempts))
	return false
}

package ledger

import "strings"

// Entry is the persisted record for one deployment key. CreatedAt and
// UpdatedAt may coexist after a round-2 update.
type Entry struct {
	RepoName  string `json:"repo_name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type ActionKind int

const (
	ActionCreate ActionKind = iota
	ActionUpdate
)

// Action is the outcome of resolving a request against the ledger.
// RepoName is only set for updates. NoPrecedent marks a round-2 request
// that found no round-1 entry and therefore creates instead.
type Action struct {
	Kind        ActionKind
	RepoName    string
	NoPrecedent bool
}

// Suffix variants produced by round-2 task ids. Matching is literal and
// applied once, first match wins.
var round2Suffixes = []string{"-round2a", "-round2b", "-round2"}

// BaseTaskID strips the round-2 suffix variant from a task id, yielding the
// identity shared by both rounds.
func BaseTaskID(taskID string) string {
	for _, suffix := range round2Suffixes {
		if strings.HasSuffix(taskID, suffix) {
			return strings.TrimSuffix(taskID, suffix)
		}
	}
	return taskID
}

// Key computes the deployment key for a requester and task.
func Key(email, taskID string) string {
	return email + "-" + BaseTaskID(taskID)
}

// Resolve is the create-vs-update decision: round 1 always creates (latest
// round-1 wins), round 2 updates the recorded repository when an entry
// exists and otherwise degrades to a create.
func Resolve(existing *Entry, round int) Action {
	if round == 2 {
		if existing != nil {
			return Action{Kind: ActionUpdate, RepoName: existing.RepoName}
		}
		return Action{Kind: ActionCreate, NoPrecedent: true}
	}
	return Action{Kind: ActionCreate}
}

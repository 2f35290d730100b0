package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseTaskID(t *testing.T) {
	assert.Equal(t, "census", BaseTaskID("census"))
	assert.Equal(t, "census", BaseTaskID("census-round2"))
	assert.Equal(t, "census", BaseTaskID("census-round2a"))
	assert.Equal(t, "census", BaseTaskID("census-round2b"))
	assert.Equal(t, "census-round2c", BaseTaskID("census-round2c"))
	assert.Equal(t, "markdown-viewer", BaseTaskID("markdown-viewer-round2"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "a@b.com-census", Key("a@b.com", "census"))
	assert.Equal(t, "a@b.com-census", Key("a@b.com", "census-round2"))
}

func TestResolve(t *testing.T) {
	existing := &Entry{RepoName: "census-1600000000"}

	t.Run("round 1 without entry", func(t *testing.T) {
		action := Resolve(nil, 1)
		assert.Equal(t, ActionCreate, action.Kind)
		assert.False(t, action.NoPrecedent)
	})

	t.Run("round 1 with entry still creates", func(t *testing.T) {
		action := Resolve(existing, 1)
		assert.Equal(t, ActionCreate, action.Kind)
		assert.Empty(t, action.RepoName)
	})

	t.Run("round 2 with entry updates", func(t *testing.T) {
		action := Resolve(existing, 2)
		assert.Equal(t, ActionUpdate, action.Kind)
		assert.Equal(t, "census-1600000000", action.RepoName)
	})

	t.Run("round 2 without entry creates with warning", func(t *testing.T) {
		action := Resolve(nil, 2)
		assert.Equal(t, ActionCreate, action.Kind)
		assert.True(t, action.NoPrecedent)
	})
}

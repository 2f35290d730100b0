package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = Defaults{
	Secret:        "s3cret",
	Email:         DefaultEmail,
	EvaluationURL: "http://localhost:8080/evaluation_callback",
}

func baseInput() map[string]interface{} {
	return map[string]interface{}{
		"task":   "census",
		"brief":  "Build a census dashboard",
		"checks": []interface{}{"shows a table"},
	}
}

func TestNormalizeMissingFields(t *testing.T) {
	for _, field := range []string{"task", "brief", "checks"} {
		t.Run(field, func(t *testing.T) {
			input := baseInput()
			delete(input, field)

			req, err := Normalize(input, testDefaults)
			assert.Nil(t, req)
			var missing MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, field, missing.Field)
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	req, err := Normalize(baseInput(), testDefaults)
	require.NoError(t, err)

	assert.Equal(t, DefaultEmail, req.Email)
	assert.Equal(t, 1, req.Round)
	assert.NotEmpty(t, req.Nonce)
	assert.Equal(t, "http://localhost:8080/evaluation_callback", req.EvaluationURL)
	assert.Equal(t, "s3cret", req.Secret)
	assert.Empty(t, req.Attachments)
}

func TestNormalizeNestedTask(t *testing.T) {
	input := map[string]interface{}{
		"task": map[string]interface{}{
			"id":             "markdown-viewer",
			"brief":          "Render markdown",
			"checks":         []interface{}{"renders headings"},
			"evaluation_url": "https://eval.example.com/evaluation_callback",
		},
	}

	req, err := Normalize(input, testDefaults)
	require.NoError(t, err)
	assert.Equal(t, "markdown-viewer", req.Task)
	assert.Equal(t, "Render markdown", req.Brief)
	assert.Equal(t, "https://eval.example.com/evaluation_callback", req.EvaluationURL)
	require.Len(t, req.Checks, 1)
	assert.Equal(t, "renders headings", req.Checks[0].Description)
}

func TestNormalizeRound(t *testing.T) {
	t.Run("explicit number", func(t *testing.T) {
		input := baseInput()
		input["round"] = float64(2)
		req, err := Normalize(input, testDefaults)
		require.NoError(t, err)
		assert.Equal(t, 2, req.Round)
	})

	t.Run("numeric string", func(t *testing.T) {
		input := baseInput()
		input["round"] = "2"
		req, err := Normalize(input, testDefaults)
		require.NoError(t, err)
		assert.Equal(t, 2, req.Round)
	})

	t.Run("garbage string falls back to task name", func(t *testing.T) {
		input := baseInput()
		input["task"] = "census-round2"
		input["round"] = "second"
		req, err := Normalize(input, testDefaults)
		require.NoError(t, err)
		assert.Equal(t, 2, req.Round)
	})

	t.Run("inferred from round2 suffix", func(t *testing.T) {
		input := baseInput()
		input["task"] = "census-round2"
		req, err := Normalize(input, testDefaults)
		require.NoError(t, err)
		assert.Equal(t, 2, req.Round)
	})

	t.Run("plain task defaults to 1", func(t *testing.T) {
		req, err := Normalize(baseInput(), testDefaults)
		require.NoError(t, err)
		assert.Equal(t, 1, req.Round)
	})

	t.Run("r1 marker", func(t *testing.T) {
		input := baseInput()
		input["task"] = "r1-census"
		req, err := Normalize(input, testDefaults)
		require.NoError(t, err)
		assert.Equal(t, 1, req.Round)
	})

	t.Run("out of range clamps to 1", func(t *testing.T) {
		input := baseInput()
		input["round"] = float64(7)
		req, err := Normalize(input, testDefaults)
		require.NoError(t, err)
		assert.Equal(t, 1, req.Round)
	})
}

func TestNormalizeEmailRepair(t *testing.T) {
	input := baseInput()
	input["email"] = "not-an-email"

	req, err := Normalize(input, testDefaults)
	require.NoError(t, err)
	assert.Equal(t, DefaultEmail, req.Email)

	input = baseInput()
	input["email"] = "someone@example.org"
	req, err = Normalize(input, testDefaults)
	require.NoError(t, err)
	assert.Equal(t, "someone@example.org", req.Email)
}

func TestNormalizeChecks(t *testing.T) {
	t.Run("string promoted to object", func(t *testing.T) {
		req, err := Normalize(baseInput(), testDefaults)
		require.NoError(t, err)
		require.Len(t, req.Checks, 1)
		assert.Equal(t, "shows a table", req.Checks[0].Description)
		assert.Contains(t, req.Checks[0].JS, DefaultCheck)
		assert.Contains(t, req.Checks[0].JS, "shows a table")
	})

	t.Run("empty checks substituted with default", func(t *testing.T) {
		input := baseInput()
		input["checks"] = []interface{}{}
		req, err := Normalize(input, testDefaults)
		require.NoError(t, err)
		require.Len(t, req.Checks, 1)
		assert.Equal(t, DefaultCheck, req.Checks[0].Description)
	})

	t.Run("object check kept as-is", func(t *testing.T) {
		input := baseInput()
		input["checks"] = []interface{}{
			map[string]interface{}{"js": "document.querySelector('h1') !== null"},
		}
		req, err := Normalize(input, testDefaults)
		require.NoError(t, err)
		require.Len(t, req.Checks, 1)
		assert.Equal(t, "document.querySelector('h1') !== null", req.Checks[0].JS)
	})

	t.Run("object without js or description rejected", func(t *testing.T) {
		input := baseInput()
		input["checks"] = []interface{}{map[string]interface{}{"weight": float64(2)}}
		_, err := Normalize(input, testDefaults)
		var invalid InvalidCheckError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 0, invalid.Index)
	})

	t.Run("non-string non-object rejected", func(t *testing.T) {
		input := baseInput()
		input["checks"] = []interface{}{"ok", float64(42)}
		_, err := Normalize(input, testDefaults)
		var invalid InvalidCheckError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 1, invalid.Index)
	})

	t.Run("non-array rejected", func(t *testing.T) {
		input := baseInput()
		input["checks"] = "shows a table"
		_, err := Normalize(input, testDefaults)
		var malformed MalformedError
		require.ErrorAs(t, err, &malformed)
	})
}

func TestNormalizeAttachments(t *testing.T) {
	input := baseInput()
	input["attachments"] = []interface{}{
		map[string]interface{}{"name": "data.csv", "url": "data:text/csv;base64,YQ=="},
		"not an attachment",
	}

	req, err := Normalize(input, testDefaults)
	require.NoError(t, err)
	require.Len(t, req.Attachments, 1)
	assert.Equal(t, "data.csv", req.Attachments[0].Name)
}

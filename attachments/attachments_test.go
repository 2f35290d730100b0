package attachments

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge-ci/deployer/request"
)

func TestDecodeBase64(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("a,b\n1,2"))
	out := Decode([]request.RawAttachment{
		{Name: "data.csv", URL: "data:text/csv;base64," + payload},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "data.csv", out[0].Name)
	assert.Equal(t, "data.csv", out[0].OriginalName)
	assert.Equal(t, "text/csv", out[0].MediaType)
	assert.Equal(t, []byte("a,b\n1,2"), out[0].Content)
}

func TestDecodePlainText(t *testing.T) {
	out := Decode([]request.RawAttachment{
		{Name: "note.txt", URL: "data:text/plain,hello world"},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "text/plain", out[0].MediaType)
	assert.Equal(t, []byte("hello world"), out[0].Content)
}

func TestDecodeSkipsBadEntries(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("ok"))
	out := Decode([]request.RawAttachment{
		{Name: "", URL: "data:text/plain,x"},
		{Name: "nourl.txt"},
		{Name: "remote.png", URL: "https://example.com/remote.png"},
		{Name: "nocomma.bin", URL: "data:application/octet-stream;base64"},
		{Name: "badb64.bin", URL: "data:application/octet-stream;base64,%%%"},
		{Name: "good.txt", URL: "data:text/plain;base64," + payload},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "good.txt", out[0].Name)
	assert.Equal(t, []byte("ok"), out[0].Content)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "report.csv", SafeName("report.csv"))
	assert.Equal(t, "passwd", SafeName("../../etc/passwd"))
	assert.Equal(t, "my_data_set.csv", SafeName("my data set.csv"))
	assert.Equal(t, "notes.txt", SafeName("dir\\notes.txt"))
}

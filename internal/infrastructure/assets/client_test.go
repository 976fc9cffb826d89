package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/core/apperror"
	"spottive/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		CloudName: "testcloud",
		APIKey:    "key",
		APISecret: "secret",
		BaseURL:   server.URL,
	}, logger.Default())
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{CloudName: "c"}, logger.Default())
	assert.Error(t, err)
}

func TestUpload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/testcloud/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.NotEmpty(t, r.FormValue("signature"))
		assert.Equal(t, "key", r.FormValue("api_key"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		file.Close()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"spottive/abc123","secure_url":"https://cdn.test/abc123.jpg"}`))
	})

	asset, err := client.Upload(context.Background(), []byte("image-bytes"), "camera.jpg")
	require.NoError(t, err)
	assert.Equal(t, "spottive/abc123", asset.ID)
	assert.Equal(t, "https://cdn.test/abc123.jpg", asset.URL)
}

func TestUploadHostFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusBadRequest)
	})

	_, err := client.Upload(context.Background(), []byte("image-bytes"), "camera.jpg")
	assert.True(t, apperror.IsCode(err, apperror.CodeUnavailable), "got %v", err)
}

func TestDestroy(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "spottive/abc123", r.FormValue("public_id"))
		assert.NotEmpty(t, r.FormValue("signature"))
		w.Write([]byte(`{"result":"ok"}`))
	})

	err := client.Destroy(context.Background(), "spottive/abc123")
	require.NoError(t, err)
	assert.Equal(t, "/v1_1/testcloud/image/destroy", gotPath)
}

func TestDestroyEmptyIDIsNoop(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	require.NoError(t, client.Destroy(context.Background(), ""))
	assert.False(t, called)
}

package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konarsubhojit/rest-api-send-requests/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewStorageAt(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSavedRequestRoundTrip(t *testing.T) {
	store := newTestStorage(t)

	saved := model.SavedRequest{
		Name: "Create user",
		Request: model.StructuredRequest{
			BaseURL:   "https://api.example.com",
			Path:      "/users",
			Method:    "POST",
			AuthToken: "tok",
			Parameters: []model.KeyValue{
				model.NewKeyValue("page", "1"),
			},
			Headers: []model.KeyValue{
				model.NewKeyValue("X-Test", "1"),
			},
			BodyType:    model.BodyTypeJSON,
			BodyContent: `{"name":"John"}`,
		},
	}

	require.NoError(t, store.AddToCollection("my-api", saved))

	col, err := store.GetCollection("my-api")
	require.NoError(t, err)
	require.NotNil(t, col)
	require.Len(t, col.Requests, 1)

	got := col.Requests[0]
	assert.Equal(t, "Create user", got.Name)
	assert.Equal(t, saved.Request.BaseURL, got.Request.BaseURL)
	assert.Equal(t, saved.Request.Path, got.Request.Path)
	assert.Equal(t, saved.Request.Method, got.Request.Method)
	assert.Equal(t, saved.Request.AuthToken, got.Request.AuthToken)
	assert.Equal(t, saved.Request.Parameters, got.Request.Parameters)
	assert.Equal(t, saved.Request.Headers, got.Request.Headers)
	assert.Equal(t, model.BodyTypeJSON, got.Request.BodyType)
	assert.Equal(t, saved.Request.BodyContent, got.Request.BodyContent)
}

func TestSavedRequestsKeepInsertionOrder(t *testing.T) {
	store := newTestStorage(t)

	for _, name := range []string{"first", "second", "third"} {
		saved := model.SavedRequest{
			Name:    name,
			Request: model.StructuredRequest{BaseURL: "https://e.com", Method: "GET"},
		}
		require.NoError(t, store.AddToCollection("ordered", saved))
	}

	col, err := store.GetCollection("ordered")
	require.NoError(t, err)
	require.Len(t, col.Requests, 3)
	assert.Equal(t, "first", col.Requests[0].Name)
	assert.Equal(t, "second", col.Requests[1].Name)
	assert.Equal(t, "third", col.Requests[2].Name)
}

func TestGetCollectionMissing(t *testing.T) {
	store := newTestStorage(t)

	col, err := store.GetCollection("nope")
	require.NoError(t, err)
	assert.Nil(t, col)
}

func TestDeleteCollectionCascades(t *testing.T) {
	store := newTestStorage(t)

	saved := model.SavedRequest{
		Request: model.StructuredRequest{BaseURL: "https://e.com", Method: "GET"},
	}
	require.NoError(t, store.AddToCollection("doomed", saved))
	require.NoError(t, store.DeleteCollection("doomed"))

	col, err := store.GetCollection("doomed")
	require.NoError(t, err)
	assert.Nil(t, col)
}

func TestHistoryRoundTrip(t *testing.T) {
	store := newTestStorage(t)

	req := model.Request{
		ID:        "abc123",
		Timestamp: time.Now().UTC(),
		Method:    "GET",
		URL:       "https://e.com/a",
		Headers:   map[string]string{"X-Test": "1"},
		Body:      "",
		Response: &model.Response{
			StatusCode: 200,
			Status:     "200 OK",
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"ok":true}`,
			DurationMs: 42,
		},
	}

	require.NoError(t, store.AddToHistory(req))

	history, err := store.LoadHistory()
	require.NoError(t, err)
	require.Len(t, history.Requests, 1)
	assert.Equal(t, "abc123", history.Requests[0].ID)
	require.NotNil(t, history.Requests[0].Response)
	assert.Equal(t, 200, history.Requests[0].Response.StatusCode)

	got, err := store.GetHistoryRequest("abc123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://e.com/a", got.URL)
	assert.Equal(t, "1", got.Headers["X-Test"])

	require.NoError(t, store.ClearHistory())
	history, err = store.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, history.Requests)
}

func TestGetHistoryRequestMissing(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.GetHistoryRequest("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAliases(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.CreateAlias("api", "https://api.example.com"))

	url, exists, err := store.GetAlias("api")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "https://api.example.com", url)

	// Upsert replaces the URL
	require.NoError(t, store.CreateAlias("api", "https://api.example.org"))
	url, _, _ = store.GetAlias("api")
	assert.Equal(t, "https://api.example.org", url)

	aliases, err := store.LoadAliases()
	require.NoError(t, err)
	assert.Len(t, aliases.Aliases, 1)

	require.NoError(t, store.DeleteAlias("api"))
	_, exists, err = store.GetAlias("api")
	require.NoError(t, err)
	assert.False(t, exists)
}

package onedrive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bagdasarian/staff-portal/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := NewStaticTokenProvider(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}), nil, zerolog.Nop())
	cfg := config.GraphConfig{BaseURL: srv.URL, DriveID: "drv", Timeout: 5 * time.Second}
	return NewClient(cfg, tokens, zerolog.Nop(), WithBackoff(time.Millisecond))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestClient_CreateFolder(t *testing.T) {
	t.Run("создание папки с авторизацией", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /drives/drv/items/root-id/children", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Finance", body["name"])
			assert.Equal(t, "fail", body["@microsoft.graph.conflictBehavior"])
			writeJSON(w, http.StatusCreated, map[string]any{"id": "F1", "name": "Finance", "folder": map[string]any{"childCount": 0}})
		})
		c := newTestClient(t, mux)

		item, err := c.CreateFolder(context.Background(), "root-id", "Finance")

		require.NoError(t, err)
		assert.Equal(t, "F1", item.ID)
		assert.True(t, item.IsFolder())
	})

	t.Run("конфликт имени возвращает существующую папку", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /drives/drv/items/root-id/children", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusConflict, map[string]any{"error": map[string]any{"code": "nameAlreadyExists", "message": "exists"}})
		})
		mux.HandleFunc("GET /drives/drv/items/root-id/children", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"value": []map[string]any{
				{"id": "X", "name": "other.csv", "file": map[string]any{}},
				{"id": "F1", "name": "finance", "folder": map[string]any{}},
			}})
		})
		c := newTestClient(t, mux)

		item, err := c.FindOrCreateFolder(context.Background(), "root-id", "Finance")

		require.NoError(t, err)
		assert.Equal(t, "F1", item.ID)
	})
}

func TestClient_ListChildrenPaging(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /drives/drv/items/F1/children", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			writeJSON(w, http.StatusOK, map[string]any{"value": []map[string]any{{"id": "b", "name": "b.csv"}}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"value":           []map[string]any{{"id": "a", "name": "a.csv"}},
			"@odata.nextLink": srvURL + "/drives/drv/items/F1/children?page=2",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	srvURL = srv.URL

	tokens := NewStaticTokenProvider(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}), nil, zerolog.Nop())
	c := NewClient(config.GraphConfig{BaseURL: srv.URL, DriveID: "drv"}, tokens, zerolog.Nop())

	items, err := c.ListChildren(context.Background(), "F1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[1].ID)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	t.Run("повтор после 503", func(t *testing.T) {
		var calls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("GET /drives/drv/items/f/content", func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			io.WriteString(w, "a,b\n1,2\n")
		})
		c := newTestClient(t, mux)

		content, err := c.GetFileContent(context.Background(), "f")

		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2\n", string(content))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("попытки исчерпаны", func(t *testing.T) {
		var calls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("GET /drives/drv/items/f/content", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": map[string]any{"code": "throttled", "message": "slow down"}})
		})
		c := newTestClient(t, mux)

		_, err := c.GetFileContent(context.Background(), "f")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "throttled", apiErr.Code)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("400 не повторяется", func(t *testing.T) {
		var calls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("GET /drives/drv/items/f/content", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		})
		c := newTestClient(t, mux)

		_, err := c.GetFileContent(context.Background(), "f")

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestClient_UploadAndUpdate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /drives/drv/items/F1:/kpis.csv:/content", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.Equal(t, "id\n1\n", string(b))
		assert.Equal(t, "text/csv", r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusCreated, map[string]any{"id": "K1", "name": "kpis.csv", "file": map[string]any{"mimeType": "text/csv"}})
	})
	mux.HandleFunc("PUT /drives/drv/items/K1/content", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "K1", "name": "kpis.csv"})
	})
	c := newTestClient(t, mux)

	item, err := c.UploadFile(context.Background(), "F1", "kpis.csv", []byte("id\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, "K1", item.ID)
	assert.False(t, item.IsFolder())

	item, err = c.UpdateFileContent(context.Background(), "K1", []byte("id\n2\n"))
	require.NoError(t, err)
	assert.Equal(t, "K1", item.ID)
}

func TestClient_DeleteItem(t *testing.T) {
	t.Run("удаление", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /drives/drv/items/F1", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		c := newTestClient(t, mux)

		assert.NoError(t, c.DeleteItem(context.Background(), "F1"))
	})

	t.Run("отсутствующий элемент не ошибка", func(t *testing.T) {
		c := newTestClient(t, http.NotFoundHandler())

		assert.NoError(t, c.DeleteItem(context.Background(), "F1"))
	})
}

func TestClient_EnsureFolderPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /drives/drv/root", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "ROOT", "name": "root", "folder": map[string]any{}})
	})
	mux.HandleFunc("POST /drives/drv/items/ROOT/children", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": "P1", "name": "Portal", "folder": map[string]any{}})
	})
	mux.HandleFunc("POST /drives/drv/items/P1/children", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": "U1", "name": "Units", "folder": map[string]any{}})
	})
	c := newTestClient(t, mux)

	item, err := c.EnsureFolderPath(context.Background(), "/Portal/Units/")

	require.NoError(t, err)
	assert.Equal(t, "U1", item.ID)
}

func TestClient_AuthErrors(t *testing.T) {
	t.Run("401 распознается как ошибка авторизации", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /drives/drv/root", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": map[string]any{"code": "InvalidAuthenticationToken", "message": "expired"}})
		})
		c := newTestClient(t, mux)

		_, err := c.Root(context.Background())

		assert.True(t, IsAuthError(err))
	})

	t.Run("нет учетных данных", func(t *testing.T) {
		c := NewClient(config.GraphConfig{BaseURL: "http://127.0.0.1:1"}, NewStaticTokenProvider(nil, nil, zerolog.Nop()), zerolog.Nop())

		_, err := c.Root(context.Background())

		assert.True(t, IsAuthError(err))
		assert.True(t, errors.Is(err, ErrNoCredentials))
	})
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&APIError{Status: http.StatusTooManyRequests}))
	assert.True(t, IsTransient(&APIError{Status: http.StatusBadGateway}))
	assert.True(t, IsTransient(errors.Join(errors.New("ensure folder"), &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")})))

	assert.False(t, IsTransient(&APIError{Status: http.StatusBadRequest}))
	assert.False(t, IsTransient(&APIError{Status: http.StatusUnauthorized}))
	assert.False(t, IsTransient(ErrItemNotFound))
	assert.False(t, IsTransient(errors.New("row 1 has 1 fields")))
}

package platform_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakatama/koperasi-admin/internal/infra/gateway/platform"
	"github.com/rakatama/koperasi-admin/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

func newTestClient(server *httptest.Server) *platform.Client {
	client := platform.NewClient("http://unused", testLogger())
	client.SetBaseURL(server.URL)
	return client
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/account", r.URL.Path)

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "bendahara", username)
		assert.Equal(t, "rahasia", password)

		json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"data": map[string]string{"token": "jwt-token-123"},
		})
	}))
	defer server.Close()

	token, err := newTestClient(server).Login(context.Background(), "bendahara", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token-123", token)
}

func TestClient_LoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"code":    401,
			"message": "invalid credentials",
		})
	}))
	defer server.Close()

	_, err := newTestClient(server).Login(context.Background(), "x", "y")
	require.Error(t, err)
	assert.True(t, platform.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestClient_BearerToken(t *testing.T) {
	var receivedAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"code": 200, "data": []any{}})
	}))
	defer server.Close()

	_, err := newTestClient(server).ListResource(context.Background(), "tok-abc", "/manage/outlets", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", receivedAuth)
}

func TestClient_ListResource_UnwrapsPaginator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"data": map[string]any{
				"data": []map[string]any{
					{"id": 1, "name": "Toko Pusat"},
					{"id": 2, "name": "Toko Cabang"},
				},
			},
		})
	}))
	defer server.Close()

	rows, err := newTestClient(server).ListResource(context.Background(), "tok", "/manage/outlets", nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Contains(t, string(rows[0]), "Toko Pusat")
}

func TestClient_ListResource_BareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"data": []map[string]any{{"id": 9}},
		})
	}))
	defer server.Close()

	rows, err := newTestClient(server).ListResource(context.Background(), "tok", "/manage/taxes", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestClient_ListResource_QueryPassthrough(t *testing.T) {
	var receivedQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{"code": 200, "data": []any{}})
	}))
	defer server.Close()

	query := url.Values{"search": {"beras"}, "page": {"2"}}
	_, err := newTestClient(server).ListResource(context.Background(), "tok", "/manage/products", query)
	require.NoError(t, err)
	assert.Equal(t, "beras", receivedQuery.Get("search"))
	assert.Equal(t, "2", receivedQuery.Get("page"))
}

func TestClient_ValidationErrorsFlattened(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"code":    422,
			"message": "validation failed",
			"errors": map[string][]string{
				"name":  {"The name field is required."},
				"price": {"The price must be a number."},
			},
		})
	}))
	defer server.Close()

	_, err := newTestClient(server).CreateResource(context.Background(), "tok", "/manage/products", map[string]string{})
	require.Error(t, err)
	assert.True(t, platform.IsAPIError(err))
	// All field messages joined with spaces, deterministic field order.
	assert.Contains(t, err.Error(), "The name field is required. The price must be a number.")
}

func TestClient_EnvelopeCodeFailureOn200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code":    500,
			"message": "internal upstream failure",
		})
	}))
	defer server.Close()

	_, err := newTestClient(server).GetResource(context.Background(), "tok", "/manage/business", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal upstream failure")
}

func TestClient_GenericStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	err := newTestClient(server).DeleteResource(context.Background(), "tok", "/manage/units", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed with status 502")
}

func TestClient_NetworkError(t *testing.T) {
	client := platform.NewClient("http://127.0.0.1:1", testLogger())

	_, err := client.ListResource(context.Background(), "tok", "/manage/outlets", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network error")
}

func TestClient_NonEnvelopedBodyPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 5, "name": "Unit Simpan Pinjam"})
	}))
	defer server.Close()

	data, err := newTestClient(server).GetResource(context.Background(), "tok", "/manage/business", "5")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Unit Simpan Pinjam")
}

func TestClient_MultipartUpdateTunnelsMethod(t *testing.T) {
	var (
		receivedMethod   string
		receivedOverride string
		receivedName     string
		receivedLogo     []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedMethod = r.Method
		require.NoError(t, r.ParseMultipartForm(1<<20))
		receivedOverride = r.FormValue("_method")
		receivedName = r.FormValue("name")

		file, _, err := r.FormFile("logo")
		require.NoError(t, err)
		defer file.Close()
		receivedLogo, err = io.ReadAll(file)
		require.NoError(t, err)

		json.NewEncoder(w).Encode(map[string]any{"code": 200, "data": map[string]any{"id": 12}})
	}))
	defer server.Close()

	var lastSent, total int64
	progress := func(sent, t int64) { lastSent, total = sent, t }

	_, err := newTestClient(server).UpdateResourceMultipart(
		context.Background(), "tok", "/manage/business", "12",
		map[string]string{"name": "Unit Toko"},
		[]platform.Upload{{Field: "logo", FileName: "logo.png", Reader: strings.NewReader("fake-png-bytes")}},
		progress,
	)
	require.NoError(t, err)

	// PUT tunneled over POST with a _method override field.
	assert.Equal(t, http.MethodPost, receivedMethod)
	assert.Equal(t, http.MethodPut, receivedOverride)
	assert.Equal(t, "Unit Toko", receivedName)
	assert.Equal(t, "fake-png-bytes", string(receivedLogo))

	// Progress reached the full body size.
	assert.Equal(t, total, lastSent)
	assert.Positive(t, total)
}

func TestClient_MultipartCreateHasNoOverride(t *testing.T) {
	var hasOverride bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hasOverride = r.MultipartForm.Value["_method"]
		json.NewEncoder(w).Encode(map[string]any{"code": 200, "data": map[string]any{"id": 1}})
	}))
	defer server.Close()

	_, err := newTestClient(server).CreateResourceMultipart(
		context.Background(), "tok", "/manage/business",
		map[string]string{"name": "Unit Baru"}, nil, nil,
	)
	require.NoError(t, err)
	assert.False(t, hasOverride)
}

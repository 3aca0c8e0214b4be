package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/arphatra/arphatra/internal/builder"
	"github.com/arphatra/arphatra/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body dto.Envelope) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClientUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/public/forms/customer-survey", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "public reads carry no token")
		writeJSON(t, w, http.StatusOK, dto.OK(dto.PublicFormResponse{
			ID:    "form-1",
			Title: "Customer survey",
		}))
	}))
	defer srv.Close()

	c := New(srv.URL)
	form, err := c.GetPublicForm(context.Background(), "customer-survey")
	require.NoError(t, err)
	assert.Equal(t, "form-1", form.ID)
	assert.Equal(t, "Customer survey", form.Title)
}

func TestClientSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, dto.OK([]dto.FormSummary{{ID: "f1", Title: "A"}}))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok-123"))
	forms, err := c.ListForms(context.Background())
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "f1", forms[0].ID)
}

func TestClientSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, dto.Fail("slug already used"))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	_, err := c.CreateForm(context.Background(), dto.SaveFormRequest{Title: "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "slug already used", apiErr.Message)
}

func TestClientSessionExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, dto.Fail("session expired"))
	}))
	defer srv.Close()

	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{AccessToken: "stale"}))

	expired := false
	c := New(srv.URL, WithSessionStore(store), WithSessionExpiredHandler(func() { expired = true }))
	assert.Equal(t, "stale", c.Token(), "stored session is adopted on construction")

	_, err := c.ListForms(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	assert.True(t, expired, "expiry handler must fire on 401")
	assert.Empty(t, c.Token())
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok, "stale session must be cleared")
}

func TestClientLoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada@example.com", req.Email)
		writeJSON(t, w, http.StatusOK, dto.OK(dto.AuthResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			User:         dto.UserResponse{ID: "u1", Email: req.Email},
		}))
	}))
	defer srv.Close()

	store := NewMemoryStore()
	c := New(srv.URL, WithSessionStore(store))

	resp, err := c.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "access-1", c.Token())
	assert.Equal(t, "u1", resp.User.ID)

	sess, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "refresh-1", sess.RefreshToken)

	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(sess.User, &user))
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestClientAsSessionSaver(t *testing.T) {
	var updates int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/forms":
			var req dto.SaveFormRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Survey", req.Title)
			writeJSON(t, w, http.StatusCreated, dto.OK(dto.FormResponse{ID: "form-9", Title: req.Title}))
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/forms/form-9":
			updates++
			writeJSON(t, w, http.StatusOK, dto.OK(dto.FormResponse{ID: "form-9"}))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	s := builder.NewSession(
		builder.Meta{Title: "Survey"}, builder.Theme{}, nil,
		c.Saver(), builder.WithDebounce(time.Hour))
	defer s.Close()

	s.AddQuestion(-1, builder.TypeShortText)
	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, "form-9", s.FormID())

	s.AddQuestion(0, builder.TypeDate)
	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, 1, updates)
}

func TestClientAsSubmitter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/forms/form-1/submit", r.URL.Path)
		var req dto.SubmitResponseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ada", req.Answers["1"])
		writeJSON(t, w, http.StatusCreated, dto.OK(dto.ResponseItem{ID: "r1", FormID: "form-1"}))
	}))
	defer srv.Close()

	c := New(srv.URL)
	fill := builder.NewFillSession(builder.FormDocument{
		ID:        "form-1",
		Questions: []builder.Question{{ID: 1, Type: builder.TypeShortText, Required: true}},
	}, c)

	fill.Answer(1, "Ada")
	require.NoError(t, fill.Submit(context.Background()))
	assert.Equal(t, builder.FillSubmitted, fill.State())
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	sess := Session{AccessToken: "a", RefreshToken: "r", User: json.RawMessage(`{"id":"u1"}`), IsNewUser: true}
	require.NoError(t, store.Save(sess))

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sess.AccessToken, got.AccessToken)
	assert.True(t, got.IsNewUser)

	require.NoError(t, store.Clear())
	_, ok, err = store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, store.Clear(), "clearing twice is fine")
}

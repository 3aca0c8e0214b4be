// Package client is the Go SDK for the Arphatra API. It speaks the
// uniform {success, message, data} envelope, attaches the bearer token,
// and plugs straight into the builder package as its Saver and Submitter.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/arphatra/arphatra/internal/builder"
	"github.com/arphatra/arphatra/internal/dto"
)

// APIError is a non-2xx response surfaced to the caller, carrying the
// envelope's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to one Arphatra backend.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore

	token string

	// onSessionExpired fires once per 401 so the app can route to the
	// login screen.
	onSessionExpired func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken seeds the bearer token directly, bypassing any store.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithSessionStore persists login state across restarts. On 401 the
// stored session is cleared.
func WithSessionStore(s SessionStore) Option {
	return func(c *Client) { c.store = s }
}

// WithSessionExpiredHandler installs the callback invoked when the
// backend rejects the token.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// New builds a client for the given base URL, e.g. "https://api.arphatra.app".
// A stored session, if any, is adopted immediately.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.token == "" && c.store != nil {
		if sess, ok, err := c.store.Load(); err == nil && ok {
			c.token = sess.AccessToken
		}
	}
	return c
}

// Token returns the bearer token currently in use, empty when logged out.
func (c *Client) Token() string { return c.token }

// envelope mirrors the wire body with the payload left raw for typed
// decoding.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession()
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}

func (c *Client) expireSession() {
	c.token = ""
	if c.store != nil {
		_ = c.store.Clear()
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func (c *Client) adoptAuth(resp dto.AuthResponse) error {
	c.token = resp.AccessToken
	if c.store == nil {
		return nil
	}
	user, err := json.Marshal(resp.User)
	if err != nil {
		return err
	}
	return c.store.Save(Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         user,
		IsNewUser:    resp.IsNewUser,
	})
}

// Register creates an account and logs the client in.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", nil, req, &resp); err != nil {
		return dto.AuthResponse{}, err
	}
	return resp, c.adoptAuth(resp)
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (dto.AuthResponse, error) {
	var resp dto.AuthResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, req, &resp); err != nil {
		return dto.AuthResponse{}, err
	}
	return resp, c.adoptAuth(resp)
}

// GoogleLogin authenticates with a Google ID token. IsNewUser in the
// response marks a first-time sign-in.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (dto.AuthResponse, error) {
	var resp dto.AuthResponse
	req := dto.GoogleLoginRequest{IDToken: idToken}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/google-login", nil, req, &resp); err != nil {
		return dto.AuthResponse{}, err
	}
	return resp, c.adoptAuth(resp)
}

// Refresh exchanges the stored refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context) (dto.AuthResponse, error) {
	var refresh string
	if c.store != nil {
		if sess, ok, err := c.store.Load(); err == nil && ok {
			refresh = sess.RefreshToken
		}
	}
	var resp dto.AuthResponse
	req := dto.RefreshTokenRequest{RefreshToken: refresh}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh-token", nil, req, &resp); err != nil {
		return dto.AuthResponse{}, err
	}
	return resp, c.adoptAuth(resp)
}

// Logout drops the local session. The backend call is best effort.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, nil)
	c.token = ""
	if c.store != nil {
		_ = c.store.Clear()
	}
	return err
}

// ForgotPassword asks for a reset email. The backend answers success
// whether or not the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := dto.ForgotPasswordRequest{Email: email}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/forgot-password", nil, req, nil)
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	req := dto.ResetPasswordRequest{Token: token, NewPassword: newPassword}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/reset-password", nil, req, nil)
}

// CreateForm persists a new form and returns the stored record.
func (c *Client) CreateForm(ctx context.Context, req dto.SaveFormRequest) (dto.FormResponse, error) {
	var resp dto.FormResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/forms", nil, req, &resp)
	return resp, err
}

// UpdateForm replaces a form's stored state; this is the autosave target.
func (c *Client) UpdateForm(ctx context.Context, id string, req dto.SaveFormRequest) (dto.FormResponse, error) {
	var resp dto.FormResponse
	err := c.do(ctx, http.MethodPut, "/api/v1/forms/"+url.PathEscape(id), nil, req, &resp)
	return resp, err
}

// GetForm fetches one of the caller's forms by id or slug.
func (c *Client) GetForm(ctx context.Context, idOrSlug string) (dto.FormResponse, error) {
	var resp dto.FormResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/forms/"+url.PathEscape(idOrSlug), nil, nil, &resp)
	return resp, err
}

// GetPublicForm fetches a published form for filling in. No auth needed.
func (c *Client) GetPublicForm(ctx context.Context, idOrSlug string) (dto.PublicFormResponse, error) {
	var resp dto.PublicFormResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/public/forms/"+url.PathEscape(idOrSlug), nil, nil, &resp)
	return resp, err
}

// ListForms returns the caller's dashboard rows.
func (c *Client) ListForms(ctx context.Context) ([]dto.FormSummary, error) {
	var resp []dto.FormSummary
	err := c.do(ctx, http.MethodGet, "/api/v1/forms", nil, nil, &resp)
	return resp, err
}

// DeleteForm removes a form together with all its responses.
func (c *Client) DeleteForm(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/forms/"+url.PathEscape(id), nil, nil, nil)
}

// CheckSlug reports whether a custom slug is still free.
func (c *Client) CheckSlug(ctx context.Context, slug string) (bool, error) {
	var resp dto.CheckSlugResponse
	q := url.Values{"slug": {slug}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/forms/check-slug", q, nil, &resp); err != nil {
		return false, err
	}
	return resp.Available, nil
}

// ListResponses returns the responses collected by one of the caller's forms.
func (c *Client) ListResponses(ctx context.Context, formID string) ([]dto.ResponseItem, error) {
	var resp []dto.ResponseItem
	err := c.do(ctx, http.MethodGet, "/api/v1/forms/"+url.PathEscape(formID)+"/responses", nil, nil, &resp)
	return resp, err
}

// SubmitResponse posts an answer set to a published form. It satisfies
// the renderer's Submitter hook, so a FillSession can submit through
// the client directly.
func (c *Client) SubmitResponse(ctx context.Context, formID string, answers builder.AnswerSet) error {
	body := dto.SubmitResponseRequest{Answers: make(map[string]any, len(answers))}
	for id, v := range answers {
		body.Answers[strconv.Itoa(id)] = v
	}
	return c.do(ctx, http.MethodPost, "/api/v1/forms/"+url.PathEscape(formID)+"/submit", nil, body, nil)
}

// Profile fetches the caller's profile.
func (c *Client) Profile(ctx context.Context) (dto.UserResponse, error) {
	var resp dto.UserResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/users/profile", nil, nil, &resp)
	return resp, err
}

// UpdateProfile updates name and avatar.
func (c *Client) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (dto.UserResponse, error) {
	var resp dto.UserResponse
	err := c.do(ctx, http.MethodPut, "/api/v1/users/profile", nil, req, &resp)
	return resp, err
}

// Settings fetches the caller's settings document.
func (c *Client) Settings(ctx context.Context) (dto.UserSettings, error) {
	var resp dto.UserSettings
	err := c.do(ctx, http.MethodGet, "/api/v1/users/settings", nil, nil, &resp)
	return resp, err
}

// UpdateSettings replaces the settings document wholesale.
func (c *Client) UpdateSettings(ctx context.Context, s dto.UserSettings) (dto.UserSettings, error) {
	var resp dto.UserSettings
	err := c.do(ctx, http.MethodPut, "/api/v1/users/settings", nil, s, &resp)
	return resp, err
}

// Deactivate soft-deactivates the account; logging back in reactivates it.
func (c *Client) Deactivate(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/users/deactivate", nil, nil, nil)
}

// DeleteAccount permanently removes the account with its forms and
// responses, then drops the local session.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/users/delete", nil, nil, nil); err != nil {
		return err
	}
	c.token = ""
	if c.store != nil {
		_ = c.store.Clear()
	}
	return nil
}

// Contact sends a message to the operators.
func (c *Client) Contact(ctx context.Context, req dto.ContactRequest) error {
	return c.do(ctx, http.MethodPost, "/api/v1/contact", nil, req, nil)
}

// Upload sends one file to object storage and returns its public URL.
func (c *Client) Upload(ctx context.Context, name string, contentType string, r io.Reader) (dto.UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return dto.UploadResponse{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return dto.UploadResponse{}, err
	}
	if err := w.Close(); err != nil {
		return dto.UploadResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/upload", &buf)
	if err != nil {
		return dto.UploadResponse{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp dto.UploadResponse
	err = c.send(req, &resp)
	return resp, err
}

// sessionSaver adapts the client to the builder session's persistence
// hook: first save creates, later saves update the bound id.
type sessionSaver struct{ c *Client }

// Saver exposes the client as a builder.Saver for editing sessions.
func (c *Client) Saver() builder.Saver { return sessionSaver{c: c} }

func payloadToRequest(p builder.SavePayload) dto.SaveFormRequest {
	return dto.SaveFormRequest{
		Name:        p.Name,
		Title:       p.Title,
		Description: p.Description,
		Theme:       p.Theme,
		BannerImage: p.BannerImage,
		Questions:   p.Questions,
	}
}

func (s sessionSaver) CreateForm(ctx context.Context, payload builder.SavePayload) (string, error) {
	resp, err := s.c.CreateForm(ctx, payloadToRequest(payload))
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (s sessionSaver) UpdateForm(ctx context.Context, id string, payload builder.SavePayload) error {
	_, err := s.c.UpdateForm(ctx, id, payloadToRequest(payload))
	return err
}

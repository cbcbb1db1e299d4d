//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync/atomic"
	"testing"
	"time"
)

var userCounter atomic.Int64

func uniqueUsername(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().UnixNano(), userCounter.Add(1))
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@example.com", prefix, time.Now().UnixNano(), userCounter.Add(1))
}

// UserResponse mirrors the account projection returned by the api
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// TestClient wraps http.Client with a cookie jar so the session cookie
// flows across requests like a browser session would.
type TestClient struct {
	*http.Client
	t *testing.T
}

// NewTestClient creates a new test client with a cookie jar
func NewTestClient(t *testing.T) *TestClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}

	return &TestClient{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		t: t,
	}
}

// PostJSON sends a POST request with a JSON body
func (tc *TestClient) PostJSON(path string, body interface{}) *http.Response {
	tc.t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			tc.t.Fatalf("failed to marshal body: %v", err)
		}
	}

	resp, err := tc.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		tc.t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

// GetJSON sends a GET request
func (tc *TestClient) GetJSON(path string) *http.Response {
	tc.t.Helper()

	resp, err := tc.Get(baseURL + path)
	if err != nil {
		tc.t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

// SignUp registers a new account
func (tc *TestClient) SignUp(username, email, password string) *http.Response {
	return tc.PostJSON("/user/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

// Login authenticates with the given credentials
func (tc *TestClient) Login(username, password string) *http.Response {
	return tc.PostJSON("/user/login", map[string]string{
		"username": username,
		"password": password,
	})
}

// Logout ends the current session
func (tc *TestClient) Logout() *http.Response {
	return tc.PostJSON("/user/logout", nil)
}

// AddFavorite adds an item to the favorites set
func (tc *TestClient) AddFavorite(item string) *http.Response {
	return tc.PostJSON("/user/favorites/add", map[string]string{"pokeName": item})
}

// RemoveFavorite removes an item from the favorites set
func (tc *TestClient) RemoveFavorite(item string) *http.Response {
	return tc.PostJSON("/user/favorites/remove", map[string]string{"pokeName": item})
}

// ListFavorites returns the favorites set
func (tc *TestClient) ListFavorites() *http.Response {
	return tc.GetJSON("/user/favorites")
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return result
}

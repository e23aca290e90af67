package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/d7708945/scammail/internal/config"
	"github.com/d7708945/scammail/internal/store"
	"github.com/d7708945/scammail/internal/ws"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{Port: "0", Env: "dev", FilesDir: t.TempDir()}
	return SetupRouter(cfg, store.New(), ws.NewHub())
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func TestHealth(t *testing.T) {
	engine := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", w.Body.String())
	}
}

func TestRegisterVerifyPostListFlow(t *testing.T) {
	engine := newTestRouter(t)

	// register("+100") returns the fixed code and a user id.
	w, resp := doJSON(t, engine, http.MethodPost, "/api/register", gin.H{"phone": "+100"})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}
	if resp["message"] != "code_sent" {
		t.Errorf("register message = %v, want code_sent", resp["message"])
	}
	if resp["code"] != "1111" {
		t.Errorf("register code = %v, want 1111", resp["code"])
	}
	userID, _ := resp["user_id"].(string)
	if userID == "" {
		t.Fatal("register returned empty user_id")
	}

	// Registration is idempotent.
	_, resp2 := doJSON(t, engine, http.MethodPost, "/api/register", gin.H{"phone": "+100"})
	if resp2["user_id"] != userID {
		t.Errorf("repeat register user_id = %v, want %v", resp2["user_id"], userID)
	}

	// Posting before verification is rejected.
	w, _ = doJSON(t, engine, http.MethodPost, "/api/messages", gin.H{"token": "tok_" + userID, "text": "early"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("pre-verify post status = %d, want 401", w.Code)
	}

	// verify with the fixed code returns the derived token.
	w, resp = doJSON(t, engine, http.MethodPost, "/api/verify", gin.H{"phone": "+100", "code": "1111"})
	if w.Code != http.StatusOK {
		t.Fatalf("verify status = %d, body %s", w.Code, w.Body.String())
	}
	if resp["ok"] != true {
		t.Errorf("verify ok = %v, want true", resp["ok"])
	}
	token, _ := resp["token"].(string)
	if token != "tok_"+userID {
		t.Fatalf("verify token = %v, want tok_%v", token, userID)
	}

	// post appends the message.
	w, resp = doJSON(t, engine, http.MethodPost, "/api/messages", gin.H{"token": token, "text": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("post status = %d, body %s", w.Code, w.Body.String())
	}
	if resp["ok"] != true {
		t.Errorf("post ok = %v, want true", resp["ok"])
	}
	msg, _ := resp["message"].(map[string]any)
	if msg == nil || msg["text"] != "hello" || msg["user_id"] != userID {
		t.Fatalf("post message = %v, want text hello by %v", msg, userID)
	}

	// list returns it last, in insertion order.
	w, resp = doJSON(t, engine, http.MethodGet, "/api/messages", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	msgs, _ := resp["messages"].([]any)
	if len(msgs) == 0 {
		t.Fatal("list returned no messages")
	}
	last, _ := msgs[len(msgs)-1].(map[string]any)
	if last["text"] != "hello" {
		t.Errorf("last message text = %v, want hello", last["text"])
	}
	if last["ts"] == nil || last["ts"] == "" {
		t.Error("message has no ts field")
	}
}

func TestRegister_MissingPhone(t *testing.T) {
	engine := newTestRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"empty phone", gin.H{"phone": ""}},
		{"whitespace phone", gin.H{"phone": "   "}},
		{"absent phone", gin.H{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, engine, http.MethodPost, "/api/register", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if resp["error"] != "phone_required" {
				t.Errorf("error = %v, want phone_required", resp["error"])
			}
		})
	}
}

func TestVerify_Errors(t *testing.T) {
	engine := newTestRouter(t)
	doJSON(t, engine, http.MethodPost, "/api/register", gin.H{"phone": "+100"})

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
		wantError  string
	}{
		{"never registered", gin.H{"phone": "+999", "code": "1111"}, http.StatusNotFound, "not_registered"},
		{"wrong code", gin.H{"phone": "+100", "code": "0000"}, http.StatusBadRequest, "invalid_code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, engine, http.MethodPost, "/api/verify", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp["error"] != tt.wantError {
				t.Errorf("error = %v, want %v", resp["error"], tt.wantError)
			}
		})
	}
}

func TestPostMessage_Errors(t *testing.T) {
	engine := newTestRouter(t)
	doJSON(t, engine, http.MethodPost, "/api/register", gin.H{"phone": "+100"})
	_, ver := doJSON(t, engine, http.MethodPost, "/api/verify", gin.H{"phone": "+100", "code": "1111"})
	token, _ := ver["token"].(string)

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
		wantError  string
	}{
		{"missing token", gin.H{"text": "hello"}, http.StatusBadRequest, "bad_request"},
		{"empty text", gin.H{"token": token, "text": ""}, http.StatusBadRequest, "bad_request"},
		{"whitespace text", gin.H{"token": token, "text": "   "}, http.StatusBadRequest, "bad_request"},
		{"unknown token", gin.H{"token": "tok_nonexistent", "text": "hello"}, http.StatusUnauthorized, "unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, engine, http.MethodPost, "/api/messages", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp["error"] != tt.wantError {
				t.Errorf("error = %v, want %v", resp["error"], tt.wantError)
			}
		})
	}
}

func TestListMessages_Empty(t *testing.T) {
	engine := newTestRouter(t)

	w, resp := doJSON(t, engine, http.MethodGet, "/api/messages", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	msgs, ok := resp["messages"].([]any)
	if !ok {
		t.Fatalf("messages = %v, want an array", resp["messages"])
	}
	if len(msgs) != 0 {
		t.Errorf("messages len = %d, want 0", len(msgs))
	}
}

func TestIndexAndDownloadPages(t *testing.T) {
	engine := newTestRouter(t)

	for _, path := range []string{"/", "/download"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
		}
		if !bytes.Contains(w.Body.Bytes(), []byte("СКАМ")) {
			t.Errorf("GET %s body does not contain the brand", path)
		}
	}
}

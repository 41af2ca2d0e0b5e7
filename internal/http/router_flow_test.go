package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hiteshgarg/medium-blog/internal/auth"
	"github.com/hiteshgarg/medium-blog/internal/config"
	apphttp "github.com/hiteshgarg/medium-blog/internal/http"
	"github.com/hiteshgarg/medium-blog/internal/repo/memory"
)

func testConfig() config.Config {
	return config.Config{
		Env:       "test",
		Port:      0,
		JWTSecret: "test-secret-key",
	}
}

func setupFlowRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	users := memory.NewUsersRepo()
	posts := memory.NewPostsRepo(users)

	return apphttp.NewRouterWith(logger, testConfig(), users, posts, nil)
}

// function that runs a request and returns a recorder

func doRequest(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))

	if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), out)
	if err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

type tokenResponse struct {
	JWT  string `json:"jwt"`
	Name string `json:"name"`
}

func TestFlow_Signup_Signin_Create_Read(t *testing.T) {
	router := setupFlowRouter(t)
	jwtManager := auth.NewManager("test-secret-key", 0)

	// sign up

	w := doRequest(router, http.MethodPost, "/user/signup", `{"email":"a@x.com","password":"secret1","name":"Ann"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("signup got status %d, body=%s", w.Code, w.Body.String())
	}

	var signup tokenResponse
	mustReadJSON(t, w, &signup)

	if signup.Name != "Ann" {
		t.Fatalf("signup name %q, want Ann", signup.Name)
	}

	signupClaims, err := jwtManager.Verify(signup.JWT)
	if err != nil {
		t.Fatalf("signup token does not verify: %v", err)
	}

	// duplicate signup must not create a second account

	w2 := doRequest(router, http.MethodPost, "/user/signup", `{"email":"a@x.com","password":"secret1","name":"Ann"}`, "")

	if w2.Code != http.StatusForbidden {
		t.Fatalf("duplicate signup got status %d, want %d", w2.Code, http.StatusForbidden)
	}
	if !strings.Contains(w2.Body.String(), "error while signing up") {
		t.Fatalf("duplicate signup body=%s", w2.Body.String())
	}

	// sign in with the same credentials yields a token for the same subject

	w3 := doRequest(router, http.MethodPost, "/user/signin", `{"email":"a@x.com","password":"secret1"}`, "")

	if w3.Code != http.StatusOK {
		t.Fatalf("signin got status %d, body=%s", w3.Code, w3.Body.String())
	}

	var signin tokenResponse
	mustReadJSON(t, w3, &signin)

	signinClaims, err := jwtManager.Verify(signin.JWT)
	if err != nil {
		t.Fatalf("signin token does not verify: %v", err)
	}

	if signinClaims.UserID != signupClaims.UserID {
		t.Fatalf("signin subject %q differs from signup subject %q", signinClaims.UserID, signupClaims.UserID)
	}

	// blog routes reject a missing token regardless of payload validity

	w4 := doRequest(router, http.MethodPost, "/blog", `{"title":"Hi","content":"World"}`, "")

	if w4.Code != http.StatusForbidden {
		t.Fatalf("unauthenticated create got status %d, want %d", w4.Code, http.StatusForbidden)
	}
	if !strings.Contains(w4.Body.String(), "You are not logged in") {
		t.Fatalf("unauthenticated create body=%s", w4.Body.String())
	}

	// create a post with the signin token

	w5 := doRequest(router, http.MethodPost, "/blog", `{"title":"Hi","content":"World"}`, signin.JWT)

	if w5.Code != http.StatusOK {
		t.Fatalf("create got status %d, body=%s", w5.Code, w5.Body.String())
	}

	var created struct {
		ID string `json:"id"`
	}
	mustReadJSON(t, w5, &created)

	if created.ID == "" {
		t.Fatalf("create returned no id")
	}

	// read it back through the projection

	w6 := doRequest(router, http.MethodGet, "/blog/"+created.ID, "", signin.JWT)

	if w6.Code != http.StatusOK {
		t.Fatalf("get got status %d, body=%s", w6.Code, w6.Body.String())
	}

	var fetched struct {
		Post struct {
			ID          string `json:"id"`
			Title       string `json:"title"`
			Content     string `json:"content"`
			PublishedAt string `json:"publishedAt"`
			Author      struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"post"`
	}
	mustReadJSON(t, w6, &fetched)

	if fetched.Post.Title != "Hi" || fetched.Post.Content != "World" {
		t.Fatalf("round trip mismatch: %+v", fetched.Post)
	}
	if fetched.Post.Author.Name != "Ann" {
		t.Fatalf("author name %q, want Ann", fetched.Post.Author.Name)
	}
	if fetched.Post.PublishedAt == "" {
		t.Fatalf("publishedAt missing")
	}

	// the read surface never leaks credentials or author identifiers

	body := w6.Body.String()
	if strings.Contains(body, "a@x.com") || strings.Contains(body, "password") || strings.Contains(body, signupClaims.UserID) {
		t.Fatalf("projection leaked identity data: %s", body)
	}

	// update the post and read the new title back

	w7 := doRequest(router, http.MethodPut, "/blog", `{"id":"`+created.ID+`","title":"Hello"}`, signin.JWT)

	if w7.Code != http.StatusOK {
		t.Fatalf("update got status %d, body=%s", w7.Code, w7.Body.String())
	}

	w8 := doRequest(router, http.MethodGet, "/blog/"+created.ID, "", signin.JWT)

	if !strings.Contains(w8.Body.String(), `"title":"Hello"`) {
		t.Fatalf("update did not stick, body=%s", w8.Body.String())
	}
	if !strings.Contains(w8.Body.String(), `"content":"World"`) {
		t.Fatalf("partial update clobbered content, body=%s", w8.Body.String())
	}

	// bulk listing carries the same projection

	w9 := doRequest(router, http.MethodGet, "/blog/bulk", "", signin.JWT)

	if w9.Code != http.StatusOK {
		t.Fatalf("bulk got status %d, body=%s", w9.Code, w9.Body.String())
	}

	var bulk struct {
		Blogs []json.RawMessage `json:"blogs"`
	}
	mustReadJSON(t, w9, &bulk)

	if len(bulk.Blogs) != 1 {
		t.Fatalf("got %d blogs, want 1", len(bulk.Blogs))
	}
}

func TestFlow_UnknownPostIsNull(t *testing.T) {
	router := setupFlowRouter(t)

	w := doRequest(router, http.MethodPost, "/user/signup", `{"email":"b@x.com","password":"secret1"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("signup got status %d, body=%s", w.Code, w.Body.String())
	}

	var signup tokenResponse
	mustReadJSON(t, w, &signup)

	// name was omitted at signup

	if signup.Name != "Anonymous" {
		t.Fatalf("got name %q, want Anonymous", signup.Name)
	}

	w2 := doRequest(router, http.MethodGet, "/blog/no-such-id", "", signup.JWT)

	if w2.Code != http.StatusOK {
		t.Fatalf("get got status %d, body=%s", w2.Code, w2.Body.String())
	}

	if !strings.Contains(w2.Body.String(), `"post":null`) {
		t.Fatalf("expected null post, body=%s", w2.Body.String())
	}
}

func TestFlow_SigninMissingFields(t *testing.T) {
	router := setupFlowRouter(t)

	w := doRequest(router, http.MethodPost, "/user/signin", `{"email":"a@x.com"}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}

	if !strings.Contains(w.Body.String(), "email and password required") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

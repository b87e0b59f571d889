package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"authbase/internal/auth"
	"authbase/internal/models"
)

var testSecret = []byte("test-secret")

func newProtectedRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var attached string
	r := gin.New()
	r.GET("/protected", SessionMiddleware(testSecret), func(c *gin.Context) {
		if id, ok := UserIDFromContext(c); ok {
			attached = id
		}
		c.JSON(http.StatusOK, models.Response{Success: true})
	})
	return r, &attached
}

func doRequest(t *testing.T, r *gin.Engine, cookie string) (*httptest.ResponseRecorder, models.Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body models.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return w, body
}

func TestSessionMiddleware_NoCookie(t *testing.T) {
	r, attached := newProtectedRouter()

	_, body := doRequest(t, r, "")
	if body.Success {
		t.Fatal("request without cookie must fail")
	}
	if *attached != "" {
		t.Fatalf("identity attached without a session: %q", *attached)
	}
}

func TestSessionMiddleware_TamperedToken(t *testing.T) {
	r, attached := newProtectedRouter()

	tok, err := auth.IssueToken("user-1", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	_, body := doRequest(t, r, tok+"x")
	if body.Success {
		t.Fatal("tampered token must fail")
	}
	if *attached != "" {
		t.Fatalf("identity attached for tampered token: %q", *attached)
	}
}

func TestSessionMiddleware_ExpiredToken(t *testing.T) {
	r, attached := newProtectedRouter()

	tok, err := auth.IssueToken("user-1", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	_, body := doRequest(t, r, tok)
	if body.Success {
		t.Fatal("expired token must fail")
	}
	if *attached != "" {
		t.Fatalf("identity attached for expired token: %q", *attached)
	}
}

func TestSessionMiddleware_WrongSecret(t *testing.T) {
	r, attached := newProtectedRouter()

	tok, err := auth.IssueToken("user-1", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	_, body := doRequest(t, r, tok)
	if body.Success {
		t.Fatal("token signed with another secret must fail")
	}
	if *attached != "" {
		t.Fatalf("identity attached for foreign token: %q", *attached)
	}
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	r, attached := newProtectedRouter()

	tok, err := auth.IssueToken("user-42", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	w, body := doRequest(t, r, tok)
	if !body.Success {
		t.Fatalf("valid session rejected: %s", w.Body.String())
	}
	if *attached != "user-42" {
		t.Fatalf("attached identity %q, want user-42", *attached)
	}
}

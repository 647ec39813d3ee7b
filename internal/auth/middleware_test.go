package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeRevoker struct {
	revoked map[string]bool
}

func (f *fakeRevoker) IsRevoked(token string) (bool, error) {
	return f.revoked[token], nil
}

func newTestRouter(tm *TokenManager, revoker Revoker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Resolve(tm, revoker), func(c *gin.Context) {
		ident := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":     ident.UserID,
			"session_key": ident.SessionKey,
		})
	})
	r.GET("/private", Resolve(tm, revoker), RequireUser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/admin", Resolve(tm, revoker), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestResolveMintsSessionForAnonymous(t *testing.T) {
	tm := newTestManager()
	r := newTestRouter(tm, &fakeRevoker{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	minted := w.Header().Get(SessionTokenHeader)
	if minted == "" {
		t.Fatal("expected a session token header for anonymous request")
	}

	// The minted token resolves to a stable session identity.
	ident, err := tm.Parse(minted)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if ident.SessionKey == "" || ident.Authenticated() {
		t.Errorf("unexpected identity from minted token: %+v", ident)
	}
}

func TestResolveRejectsRevokedToken(t *testing.T) {
	tm := newTestManager()
	token, err := tm.IssueUserToken(1, "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	r := newTestRouter(tm, &fakeRevoker{revoked: map[string]bool{token: true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", w.Code)
	}
}

type erroringRevoker struct{}

func (erroringRevoker) IsRevoked(token string) (bool, error) {
	return false, errors.New("store unavailable")
}

func TestResolveSurvivesRevokerOutage(t *testing.T) {
	tm := newTestManager()
	token, err := tm.IssueUserToken(7, "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	r := newTestRouter(tm, erroringRevoker{})

	// A revocation store outage falls back to signature validation alone.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 despite revoker outage, got %d", w.Code)
	}
}

func TestRequireUserBlocksAnonymous(t *testing.T) {
	tm := newTestManager()
	r := newTestRouter(tm, &fakeRevoker{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for anonymous caller, got %d", w.Code)
	}
}

func TestRequireAdminChecksRole(t *testing.T) {
	tm := newTestManager()
	r := newTestRouter(tm, &fakeRevoker{})

	userToken, err := tm.IssueUserToken(1, "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	adminToken, err := tm.IssueUserToken(2, "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for plain user, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", w.Code)
	}
}

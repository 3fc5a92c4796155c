package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "665f1a2b3c4d5e6f70810000",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runGuard(t *testing.T, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/api/orders", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}

	AdminAuth(testSecret)(c)
	return recorder, !c.IsAborted()
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	recorder, passed := runGuard(t, "")
	if passed || recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (passed=%v)", recorder.Code, passed)
	}
}

func TestAdminAuthRejectsMalformedHeader(t *testing.T) {
	recorder, passed := runGuard(t, "Token abcdef")
	if passed || recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (passed=%v)", recorder.Code, passed)
	}
}

func TestAdminAuthRejectsWrongSignature(t *testing.T) {
	token := signToken(t, "some-other-secret", "admin")
	recorder, passed := runGuard(t, "Bearer "+token)
	if passed || recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (passed=%v)", recorder.Code, passed)
	}
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	token := signToken(t, testSecret, "customer")
	recorder, passed := runGuard(t, "Bearer "+token)
	if passed || recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (passed=%v)", recorder.Code, passed)
	}
}

func TestAdminAuthAcceptsAdminTokenAndExposesClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/api/orders", nil)
	c.Request.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "admin"))

	AdminAuth(testSecret)(c)

	if c.IsAborted() {
		t.Fatalf("expected request to pass, got %d: %s", recorder.Code, recorder.Body.String())
	}
	claimsValue, ok := c.Get("claims")
	if !ok {
		t.Fatal("expected claims in context")
	}
	claims, ok := claimsValue.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", claimsValue)
	}
	if claims["role"] != "admin" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
}

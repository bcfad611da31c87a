package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(c *qt.C, role string, userID string) string {
	claims := jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	if userID != "" {
		claims["sub"] = userID
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	c.Assert(err, qt.IsNil)
	return token
}

func gatedEngine(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/gated", RequireAuth(testSecret, role), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func request(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	c := qt.New(t)
	r := gatedEngine("admin")

	c.Assert(request(r, "").Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(request(r, "token-without-bearer").Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(request(r, "Bearer not-a-jwt").Code, qt.Equals, http.StatusUnauthorized)
}

func TestRequireAuthRejectsBadSignature(t *testing.T) {
	c := qt.New(t)
	r := gatedEngine("admin")

	claims := jwt.MapClaims{"role": "admin", "exp": time.Now().Add(time.Hour).Unix()}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	c.Assert(err, qt.IsNil)

	c.Assert(request(r, "Bearer "+forged).Code, qt.Equals, http.StatusUnauthorized)
}

func TestRequireAuthRoleGate(t *testing.T) {
	c := qt.New(t)

	admin := gatedEngine("admin")
	c.Assert(request(admin, "Bearer "+signToken(c, "admin", "")).Code, qt.Equals, http.StatusOK)
	c.Assert(request(admin, "Bearer "+signToken(c, "user", "7")).Code, qt.Equals, http.StatusForbidden)

	// Admin tokens pass user-gated routes.
	user := gatedEngine("user")
	c.Assert(request(user, "Bearer "+signToken(c, "user", "7")).Code, qt.Equals, http.StatusOK)
	c.Assert(request(user, "Bearer "+signToken(c, "admin", "")).Code, qt.Equals, http.StatusOK)
}

func TestRequireAuthSetsUserID(t *testing.T) {
	c := qt.New(t)
	r := gatedEngine("user")

	w := request(r, "Bearer "+signToken(c, "user", "42"))
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(w.Body.String(), qt.Contains, `"user_id":42`)
}

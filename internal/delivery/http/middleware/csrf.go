package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"designhire-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the name of the header that must carry the CSRF token
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenLength is the length of the generated token in bytes
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern. The
// session rides in a cookie, so mutating requests must echo the
// csrf_token cookie value in the X-CSRF-Token header. Attackers on a
// foreign origin can make the browser send the cookie but cannot read
// it to forge the header.
//
// Pre-session auth routes are exempt; they are covered by the auth
// rate limiter instead.
func CSRFMiddleware(secureCookies bool) gin.HandlerFunc {
	csrfExemptPaths := map[string]bool{
		"/v1/auth/signup":          true,
		"/v1/auth/signin":          true,
		"/v1/auth/forgot-password": true,
		"/v1/health":               true,
	}

	setCookie := func(c *gin.Context, token string) {
		c.SetSameSite(http.SameSiteLaxMode)
		// HttpOnly = false so the frontend can read it into the header
		c.SetCookie(CSRFTokenCookieName, token, int(CSRFTokenExpiry.Seconds()), "/", "", secureCookies, false)
	}

	return func(c *gin.Context) {
		// Bearer clients are immune to CSRF: browsers never attach the
		// Authorization header on their own.
		if c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}

		if csrfExemptPaths[c.Request.URL.Path] {
			// Still seed the cookie for future requests
			if cookie, err := c.Cookie(CSRFTokenCookieName); err != nil || cookie == "" {
				if newToken, err := generateCSRFToken(); err == nil {
					setCookie(c, newToken)
				}
			}
			c.Next()
			return
		}

		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}
			setCookie(c, newToken)
			csrfCookie = newToken
		}

		// Safe methods need no validation
		method := c.Request.Method
		if method == "GET" || method == "HEAD" || method == "OPTIONS" {
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFTokenHeaderName)
		if headerToken == "" {
			response.Error(c, http.StatusForbidden, "Missing CSRF token", nil)
			c.Abort()
			return
		}
		if headerToken != csrfCookie {
			response.Error(c, http.StatusForbidden, "Invalid CSRF token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

package auth

import (
	"net/http"
	"net/url"
)

// CookieName carries the backend-issued access token.
const CookieName = "access_token"

// CookieOptions tunes the session cookie. The zero value yields an
// HTTP-only, SameSite=Lax session cookie scoped to "/".
type CookieOptions struct {
	Secure bool
	MaxAge int // seconds; 0 = session cookie
	Domain string
}

// Issue binds token to the caller's browser session. The token is
// URL-encoded so bytes a cookie cannot carry survive the round trip.
func (o CookieOptions) Issue(w http.ResponseWriter, token string) {
	http.SetCookie(w, o.cookie(url.QueryEscape(token), o.MaxAge))
}

// Clear expires the session cookie.
func (o CookieOptions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, o.cookie("", -1))
}

func (o CookieOptions) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Domain:   o.Domain,
		MaxAge:   maxAge,
		Secure:   o.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromRequest returns the decoded access token, or "" when the caller
// has no session. A value that is not valid URL encoding is returned as is.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	token, err := url.QueryUnescape(c.Value)
	if err != nil {
		return c.Value
	}
	return token
}

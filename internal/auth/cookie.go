package auth

import "net/http"

// CookieName is the session cookie the transport layer reads.
const CookieName = "token"

// sessionCookie returns the baseline cookie. Outside local development
// the cookie must be Secure with SameSite=None so the browser sends it
// on cross-origin requests from the frontend; locally Strict works and
// Secure would break plain http.
func sessionCookie(production bool) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite,
	}
}

// SetSessionCookie embeds a signed token in the response. The cookie
// itself carries no expiry; the token's 24h claim bounds its life.
func SetSessionCookie(w http.ResponseWriter, token string, production bool) {
	c := sessionCookie(production)
	c.Value = token
	http.SetCookie(w, c)
}

// ClearSessionCookie drops the cookie client-side. A token a client
// already captured stays verifiable until it expires.
func ClearSessionCookie(w http.ResponseWriter, production bool) {
	c := sessionCookie(production)
	c.MaxAge = -1
	http.SetCookie(w, c)
}

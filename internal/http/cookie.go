package http

import "net/http"

// CookieOptions are the client cookie attributes shared by all Roamvista
// services.
type CookieOptions struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

const sessionKey = "_rv-session"

// SetSessionCookie writes the session cookie to the client.
func SetSessionCookie(
	w http.ResponseWriter,
	id string,
	options CookieOptions,
) {
	http.SetCookie(
		w,
		&http.Cookie{
			Name:     sessionKey,
			Value:    id,
			Domain:   options.Domain,
			Path:     "/",
			Secure:   options.Secure,
			HttpOnly: true,
			SameSite: options.SameSite,
		},
	)
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, options CookieOptions) {
	http.SetCookie(
		w,
		&http.Cookie{
			Name:     sessionKey,
			Value:    "",
			Domain:   options.Domain,
			Path:     "/",
			MaxAge:   -1,
			Secure:   options.Secure,
			HttpOnly: true,
			SameSite: options.SameSite,
		},
	)
}

// SessionFromRequest retrieves the session ID from the request's cookies. An
// empty string is returned when no session cookie is present.
func SessionFromRequest(req *http.Request) string {
	cookie, err := req.Cookie(sessionKey)
	if err != nil {
		return ""
	}
	return cookie.Value
}

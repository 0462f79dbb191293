package routes

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/app"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/httpx"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/log"
)

// Login exchanges Basic credentials for a bearer token pair. The bearer
// server only speaks form-encoded grant requests, so the incoming request is
// rewritten in place before being handed over.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "login.basic_auth")
			return
		}

		asGrantRequest(r, url.Values{
			"grant_type": {"password"},
			"username":   {user},
			"password":   {pass},
		})
		app.UserCredentials(w, r)
	}
}

// Refresh trades a refresh token, carried as `Authorization: Refresh <token>`,
// for a fresh pair.
func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const scheme = "refresh "

		auth := r.Header.Get("authorization")
		if len(auth) <= len(scheme) || !strings.EqualFold(auth[:len(scheme)], scheme) {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "refresh.token")
			return
		}
		token := auth[len(scheme):]

		req, err := http.NewRequest("POST", "/", nil)
		if err != nil {
			httpx.LogStatus(w, http.StatusInternalServerError, log.DebugLevel, "refresh.new_request")
			return
		}
		asGrantRequest(req, url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {token},
		})

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, req)
		resp.Flush(w)
	}
}

func asGrantRequest(r *http.Request, body url.Values) {
	encoded := body.Encode()
	r.Body = io.NopCloser(strings.NewReader(encoded))
	r.Header.Set("content-type", "application/x-www-form-urlencoded")
	r.Header.Set("content-length", strconv.Itoa(len(encoded)))
}

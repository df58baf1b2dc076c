package admin

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "category_admin_flash"

// Flash collects toast messages for the page being rendered. Messages that
// must survive a redirect are stored in a short-lived cookie by Save and
// picked up by PopFlash on the next request.
type Flash struct {
	Successes []string `json:"s,omitempty"`
	Errors    []string `json:"e,omitempty"`
}

func (f *Flash) Success(msg string) {
	f.Successes = append(f.Successes, msg)
}

func (f *Flash) Error(msg string) {
	f.Errors = append(f.Errors, msg)
}

func (f *Flash) Empty() bool {
	return len(f.Successes) == 0 && len(f.Errors) == 0
}

// Save stores pending messages for the next request.
func (f *Flash) Save(w http.ResponseWriter) {
	if f.Empty() {
		return
	}
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the messages left by the previous request and clears
// the cookie. A missing or unreadable cookie yields an empty Flash.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	f := &Flash{}
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return f
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return f
	}
	if err := json.Unmarshal(data, f); err != nil {
		return &Flash{}
	}
	return f
}

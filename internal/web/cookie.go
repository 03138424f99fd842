package web

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"billetera/internal/crypto"
)

// CookieName holds the sealed browser session id.
const CookieName = "billetera_sid"

const cookiePurpose = "browser-session"

// browserID returns the browser session id carried by r. A missing, forged
// or unreadable cookie yields a fresh id, which is then set on w.
func (s *Server) browserID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, ok := s.openCookie(c.Value); ok {
			return id
		}
		s.log.Debug("discarding unreadable session cookie")
	}

	id := uuid.NewString()
	sealed, err := s.sealer.Seal(cookiePurpose, []byte(id))
	if err != nil {
		s.log.Error("seal session cookie", zap.Error(err))
		return id
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sealed,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) openCookie(value string) (string, bool) {
	raw, err := s.sealer.Open(cookiePurpose, value)
	if err != nil {
		return "", false
	}
	defer crypto.Wipe(raw)
	id, err := uuid.ParseBytes(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

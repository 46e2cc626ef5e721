package auth

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	repo "Calcform/internal/repo"
	"Calcform/internal/session"
)

const CookieName = "calcform_session"

// SessionEnv binds each browser to one in-memory calculator session through
// a signed cookie. The cookie only carries the session ID.
type SessionEnv struct {
	Key    []byte
	Repo   repo.Repository
	TTL    time.Duration
	Secure bool
	Log    *zap.Logger
}

type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}
	return limiter
}

func (i *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
		if !i.getLimiter(ip).Allow() {
			http.Error(w, "Too Many Requests. Try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionMiddleware resolves the caller's session, starting a new one when
// the cookie is absent, invalid, expired or points at a pruned session. A
// cookie past half its lifetime is re-issued so an active session outlives
// its first TTL.
func (env *SessionEnv) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var s *session.Session
		if cookie, err := r.Cookie(CookieName); err == nil {
			if sid, expires, err := env.parseToken(cookie.Value); err == nil {
				s, _ = env.Repo.GetSession(r.Context(), sid)
				if s != nil && time.Until(expires) < env.TTL/2 {
					if err := env.addCookie(w, s.ID); err != nil {
						env.Log.Error("refresh session cookie", zap.Error(err))
					}
				}
			} else {
				env.Log.Debug("discarding session cookie", zap.Error(err))
			}
		}
		if s == nil {
			created, err := env.Repo.CreateSession(r.Context())
			if err != nil {
				env.Log.Error("create session", zap.Error(err))
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
			if err := env.addCookie(w, created.ID); err != nil {
				env.Log.Error("sign session cookie", zap.Error(err))
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
			s = created
		}
		s.Touch()
		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
	})
}

// EndSession drops the caller's session and clears the cookie. The next
// request starts a new session.
func (env *SessionEnv) EndSession(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return
	}
	if err := env.Repo.DeleteSession(r.Context(), s.ID); err != nil && !errors.Is(err, repo.ErrSessionNotFound) {
		env.Log.Error("delete session", zap.Error(err))
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   env.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (env *SessionEnv) parseToken(tokenString string) (string, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.Key, nil
	})
	if err != nil {
		return "", time.Time{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", time.Time{}, jwt.ErrTokenInvalidClaims
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", time.Time{}, errors.New("session id claim missing")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", time.Time{}, jwt.ErrTokenRequiredClaimMissing
	}
	return sid, exp.Time, nil
}

func (env *SessionEnv) signToken(sid string, expires time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": expires.Unix(),
	})
	return token.SignedString(env.Key)
}

func (env *SessionEnv) addCookie(w http.ResponseWriter, sid string) error {
	expiration := time.Now().Add(env.TTL)
	tokenString, err := env.signToken(sid, expiration)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   env.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

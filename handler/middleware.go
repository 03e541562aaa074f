package handler

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"expvar"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"athenaeum/data"
	"athenaeum/internal/validator"
	"athenaeum/service"

	"github.com/felixge/httpsnoop"
	"golang.org/x/time/rate"
)

// recoverPanic middleware recovers from panics and will always be run in the event of a panic.
func (h *Handler) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				h.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// rateLimit middleware implements IP-based rate limiting to prevent clients from making too many requests
// too quickly, and putting excessive strain on the server.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	// Hold the rate limiter and last seen time for each client.
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)
	// Remove old entries from the clients map once every minute.
	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.config.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				h.serverErrorResponse(w, r, err)
				return
			}
			mu.Lock()
			if _, found := clients[ip]; !found {
				clients[ip] = &client{
					limiter: rate.NewLimiter(rate.Limit(h.config.Limiter.RPS), h.config.Limiter.Burst),
				}
			}
			clients[ip].lastSeen = time.Now()
			if !clients[ip].limiter.Allow() {
				mu.Unlock()
				h.rateLimitExceededResponse(w, r)
				return
			}
			// Unlock before calling the next handler in the chain. Using defer
			// would hold the mutex until all downstream handlers have returned.
			mu.Unlock()
		}
		next.ServeHTTP(w, r)
	})
}

// enableCORS middleware relaxes the same-origin policy.
func (h *Handler) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")
		origin := r.Header.Get("Origin")
		if origin != "" {
			for i := range h.config.Cors.TrustedOrigins {
				if origin == h.config.Cors.TrustedOrigins[i] {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
						w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, PUT, PATCH, DELETE")
						w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
						w.WriteHeader(http.StatusOK)
						return
					}
					break
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate middleware authenticates users. It returns an authenticated or anonymous user.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")
		authorizationHeader := r.Header.Get("Authorization")
		headerParts := strings.Split(authorizationHeader, " ")
		if authorizationHeader == "" || headerParts[0] == "Basic" {
			r = h.contextSetUser(r, data.AnonymousUser)
			next.ServeHTTP(w, r)
			return
		}
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			h.invalidAuthenticationTokenResponse(w, r)
			return
		}
		token := headerParts[1]
		v := validator.New()
		if data.ValidateTokenPlaintext(v, token); !v.Valid() {
			h.invalidAuthenticationTokenResponse(w, r)
			return
		}
		user, err := h.service.GetUserForToken(data.ScopeAuthentication, token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrFailedValidation):
				h.invalidAuthenticationTokenResponse(w, r)
			default:
				h.serverErrorResponse(w, r, err)
			}
			return
		}
		r = h.contextSetUser(r, user)
		next.ServeHTTP(w, r)
	})
}

// requireAuthenticatedUser middleware checks that a user is not anonymous.
func (h *Handler) requireAuthenticatedUser(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := h.contextGetUser(r)
		if user.IsAnonymous() {
			h.authenticationRequiredResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireActivatedUser middleware checks that a user is both authenticated and activated.
func (h *Handler) requireActivatedUser(next http.HandlerFunc) http.HandlerFunc {
	fn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := h.contextGetUser(r)
		if !user.Activated {
			h.inactiveAccountResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
	return h.requireAuthenticatedUser(fn)
}

// metrics middleware exposes request-level metrics.
func (h *Handler) metrics(next http.Handler) http.Handler {
	if h.config.Metrics.Enabled {
		totalRequestsReceived := expvar.NewInt("total_requests_received")
		totalResponsesSent := expvar.NewInt("total_responses_sent")
		totalProcessingTimeMicrosecond := expvar.NewInt("total_processing_time_μs")
		totalResponsesSentBystatus := expvar.NewMap("total_responses_sent_by_status")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			totalRequestsReceived.Add(1)
			metrics := httpsnoop.CaptureMetrics(next, w, r)
			totalResponsesSent.Add(1)
			totalProcessingTimeMicrosecond.Add(metrics.Duration.Microseconds())
			totalResponsesSentBystatus.Add(strconv.Itoa(metrics.Code), 1)
		})
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
	})
}

// basicAuth middleware implements basic authentication for the /debug/vars endpoint.
func (h *Handler) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if ok {
			usernameHash := sha256.Sum256([]byte(username))
			passwordHash := sha256.Sum256([]byte(password))
			expectedUsernameHash := sha256.Sum256([]byte(h.config.BasicAuth.Username))
			expectedPasswordHash := sha256.Sum256([]byte(h.config.BasicAuth.Password))
			usernameMatch := (subtle.ConstantTimeCompare(usernameHash[:], expectedUsernameHash[:]) == 1)
			passwordMatch := (subtle.ConstantTimeCompare(passwordHash[:], expectedPasswordHash[:]) == 1)
			if usernameMatch && passwordMatch {
				next.ServeHTTP(w, r)
				return
			}
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
		h.invalidCredentialsResponse(w, r)
	})
}

// Package fakeapi is an in-process stand-in for the identity and note
// services. It speaks the same HTTP/JSON contract so client code can be
// exercised end to end against httptest.
package fakeapi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Route keys, as used by Calls, Count and FailNext.
const (
	RouteSendOTP     = "POST /api/auth/send-otp"
	RouteVerifyOTP   = "POST /api/auth/verify-otp"
	RouteGoogleLogin = "POST /api/auth/google-login"
	RouteListNotes   = "GET /api/notes"
	RouteCreateNote  = "POST /api/notes"
	RouteDeleteNote  = "DELETE /api/notes/{id}"
)

// Identity is the owner of a session.
type Identity struct {
	Name  string
	Email string
}

type failure struct {
	status  int
	message string
}

// Server holds the fake state. The zero value is not usable; call New.
type Server struct {
	// Code is the OTP every send-otp issues.
	Code string
	// IssueToken mints the bearer token for an identity. The default
	// produces an unsigned three-part token the client decoder accepts.
	IssueToken func(Identity) string

	mu       sync.Mutex
	pending  map[string]string // email -> name awaiting verification
	google   map[string]Identity
	sessions map[string]Identity
	expired  map[string]bool
	notes    map[string][]models.Note // email -> notes, insertion order
	failures map[string][]failure
	calls    []string
	now      func() time.Time
}

func New() *Server {
	return &Server{
		Code:       "123456",
		IssueToken: UnsignedToken,
		pending:    make(map[string]string),
		google:     make(map[string]Identity),
		sessions:   make(map[string]Identity),
		expired:    make(map[string]bool),
		notes:      make(map[string][]models.Note),
		failures:   make(map[string][]failure),
		now:        time.Now,
	}
}

// UnsignedToken builds "header.payload.signature" with name, email and iat
// claims and a meaningless signature.
func UnsignedToken(id Identity) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, _ := json.Marshal(map[string]any{
		"name":  id.Name,
		"email": id.Email,
		"iat":   time.Now().Unix(),
	})
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".fake"
}

// Handler returns the chi router serving the contract.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Post("/api/auth/send-otp", s.handleSendOTP)
	r.Post("/api/auth/verify-otp", s.handleVerifyOTP)
	r.Post("/api/auth/google-login", s.handleGoogleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/api/notes", s.handleListNotes)
		r.Post("/api/notes", s.handleCreateNote)
		r.Delete("/api/notes/{id}", s.handleDeleteNote)
	})
	return r
}

// AddGoogleCredential makes credential a valid google-login input for id.
func (s *Server) AddGoogleCredential(credential string, id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.google[credential] = id
}

// AddSession registers token as a live session for id.
func (s *Server) AddSession(token string, id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = id
}

// Expire makes every later request with token fail with 401 "jwt expired".
func (s *Server) Expire(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired[token] = true
}

// FailNext makes the next request matching route answer status with message.
// Calls stack: each queued failure is used once.
func (s *Server) FailNext(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], failure{status: status, message: message})
}

// Calls returns the route keys of all requests served so far, in order.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Count returns how many requests hit route.
func (s *Server) Count(route string) int {
	n := 0
	for _, c := range s.Calls() {
		if c == route {
			n++
		}
	}
	return n
}

// Notes returns a copy of the stored notes owned by email.
func (s *Server) Notes(email string) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Note(nil), s.notes[email]...)
}

func routeKey(r *http.Request) string {
	path := r.URL.Path
	if strings.HasPrefix(path, "/api/notes/") {
		path = "/api/notes/{id}"
	}
	return r.Method + " " + path
}

// record logs the call and serves a queued failure, if any.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r)

		s.mu.Lock()
		s.calls = append(s.calls, key)
		var f *failure
		if queue := s.failures[key]; len(queue) > 0 {
			f = &queue[0]
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()

		if f != nil {
			writeMessage(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ownerKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeMessage(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		s.mu.Lock()
		id, known := s.sessions[token]
		expired := s.expired[token]
		s.mu.Unlock()

		switch {
		case expired:
			writeMessage(w, http.StatusUnauthorized, "jwt expired")
		case !known:
			writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		default:
			next.ServeHTTP(w, r.WithContext(withOwner(r.Context(), id.Email)))
		}
	})
}

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	s.mu.Lock()
	s.pending[req.Email] = req.Name
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent"})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	s.mu.Lock()
	name, pending := s.pending[req.Email]
	s.mu.Unlock()

	if !pending || req.OTP != s.Code {
		writeMessage(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	id := Identity{Name: name, Email: req.Email}
	token := s.IssueToken(id)

	s.mu.Lock()
	delete(s.pending, req.Email)
	s.sessions[token] = id
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	s.mu.Lock()
	id, ok := s.google[req.Token]
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Invalid Google token")
		return
	}

	token := s.IssueToken(id)
	s.AddSession(token, id)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes := s.Notes(owner(r))
	if notes == nil {
		notes = []models.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		writeMessage(w, http.StatusBadRequest, "Content is required")
		return
	}

	note := models.Note{ID: uuid.NewString(), Content: req.Content, CreatedAt: s.now().UTC()}
	email := owner(r)

	s.mu.Lock()
	s.notes[email] = append(s.notes[email], note)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	email := owner(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.notes[email]
	for i, n := range notes {
		if n.ID == id {
			s.notes[email] = append(notes[:i:i], notes[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted"})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, fmt.Sprintf("Note %s not found", id))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	if message == "" {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, map[string]string{"message": message})
}

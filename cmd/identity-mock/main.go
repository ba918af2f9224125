// identity-mock is a stand-in for the external identity provider used
// in local development: it stores accounts in memory, hashes passwords
// with bcrypt, and issues the same HS256 tokens the real provider
// would, signed with the shared AUTH_TOKEN_SECRET.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"barhop/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	passwordHash []byte
}

type server struct {
	mu            sync.Mutex
	accounts      map[string]*account // keyed by email
	serviceKey    string
	tokenTTL      time.Duration
	authenticator *auth.JWTAuthenticator
	iss           string
	aud           string
}

func main() {
	var (
		port       = flag.String("port", "9098", "port to listen on")
		secret     = flag.String("secret", "dev-token-secret", "HS256 signing secret shared with the API")
		serviceKey = flag.String("service-key", "dev-service-key", "service-role key expected on admin calls")
		iss        = flag.String("iss", "barhop-identity", "token issuer")
		aud        = flag.String("aud", "barhop", "token audience")
	)
	flag.Parse()

	s := &server{
		accounts:      make(map[string]*account),
		serviceKey:    *serviceKey,
		tokenTTL:      time.Hour * 24,
		authenticator: auth.NewJWTAuthenticator(*secret, *aud, *iss),
		iss:           *iss,
		aud:           *aud,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/users", s.createUser)
	mux.HandleFunc("POST /token", s.issueToken)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	addr := ":" + *port
	log.Printf("mock identity provider listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func (s *server) createUser(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, "invalid service key")
		return
	}

	var payload struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		Name         string `json:"name"`
		EmailConfirm bool   `json:"email_confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if payload.Email == "" || payload.Password == "" || payload.Name == "" {
		writeError(w, http.StatusBadRequest, "email, password and name are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hashing failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[payload.Email]; exists {
		writeError(w, http.StatusBadRequest, "a user with this email already exists")
		return
	}

	acct := &account{
		ID:           uuid.NewString(),
		Email:        payload.Email,
		Name:         payload.Name,
		passwordHash: hash,
	}
	s.accounts[payload.Email] = acct

	writeJSON(w, http.StatusOK, map[string]any{"user": acct})
}

func (s *server) issueToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[payload.Email]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(payload.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	now := time.Now()
	token, err := s.authenticator.GenerateToken(jwt.MapClaims{
		"sub":   acct.ID,
		"email": acct.Email,
		"name":  acct.Name,
		"exp":   now.Add(s.tokenTTL).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"iss":   s.iss,
		"aud":   s.aud,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token signing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(s.tokenTTL.Seconds()),
	})
}

func (s *server) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ") == s.serviceKey && header != ""
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/common"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/config"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/features"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError mirrors the API's error shape: {"detail": "..."}.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// respondError maps service errors onto HTTP statuses. Internal failures
// are logged in full server-side and surfaced as a generic message only.
func (s *HTTPServer) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrDuplicateAccount):
		writeError(w, http.StatusConflict, "account already exists")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Heart Disease Predictor API!",
	})
}

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed payload")
		return
	}

	if s.authMode == config.AuthModeLocal && req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	account, err := s.users.Register(r.Context(), services.RegisterParams{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "registered", "username", account.UserName)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "registered",
		"uid":     account.ID,
	})
}

// handleToken exchanges a username/password pair for a signed bearer
// token. Accepts both JSON and form-encoded bodies (the latter matches
// the OAuth2 password flow browsers send).
func (s *HTTPServer) handleToken(w http.ResponseWriter, r *http.Request) {
	var username, password string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed payload")
			return
		}
		username, password = req.Username, req.Password
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "malformed payload")
			return
		}
		username, password = r.FormValue("username"), r.FormValue("password")
	}

	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := s.issuer.IssueToken(r.Context(), username, password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *HTTPServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"id":    ident.ID,
		"email": ident.Email,
	})
}

func (s *HTTPServer) handlePredict(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed payload")
		return
	}

	vector, err := features.Decode(body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	record, err := s.predictions.Predict(r.Context(), ident.ID, vector)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         record.ID,
		"prediction": record.Label,
	})
}

func (s *HTTPServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())

	records, err := s.predictions.History(r.Context(), ident.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		item := features.Payload(record.Features)
		item["id"] = record.ID
		item["prediction"] = record.Label
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	recordID := chi.URLParam(r, "id")

	if err := s.predictions.Delete(r.Context(), ident.ID, recordID); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *HTTPServer) handleMyAccount(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())

	account, err := s.users.Profile(r.Context(), ident)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"username":      account.UserName,
		"email":         account.Email,
		"gender":        account.Gender,
		"date_of_birth": account.DateOfBirth,
	})
}

func (s *HTTPServer) handleCheckUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	exists, err := s.users.EmailExists(r.Context(), email)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

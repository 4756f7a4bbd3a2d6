package auth

import (
	"encoding/json"
	"net/http"

	"github.com/EgorLis/med-vault/internal/authgate"
	"github.com/EgorLis/med-vault/internal/domain"
	"github.com/EgorLis/med-vault/internal/transport/web/logx"
	"github.com/EgorLis/med-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/med-vault/internal/transport/web/v1"
)

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  domain.Profile `json:"user"`
}

// Signup godoc
// @Summary     Register new owner
// @Description Регистрация владельца. Email уникален без учёта регистра.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body signupRequest true "full_name, email, gender, phone, password"
// @Success     200 {object} domain.APIEnvelope{response=authResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	const op = "auth.signup"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// пароль в лог не попадает — только email
	tok, profile, err := h.Gate.Signup(r.Context(), authgate.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "signup failed", err, "email", req.Email)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", profile.ID, "email", profile.Email)
	v1.WriteOKResponse(w, r, authResponse{Token: string(tok), User: profile})
}

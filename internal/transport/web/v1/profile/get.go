package profile

import (
	"net/http"

	"github.com/EgorLis/med-vault/internal/domain"
	"github.com/EgorLis/med-vault/internal/transport/web/logx"
	"github.com/EgorLis/med-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/med-vault/internal/transport/web/v1"
)

// Get godoc
// @Summary     Current owner profile
// @Description Профиль владельца по проверенному токену. Если владелец из
// @Description валидного токена исчез из БД — 404, не 401.
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} domain.APIEnvelope{response=domain.Profile}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /api/v1/profile [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "profile.get"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserIDFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	p, err := h.Gate.CurrentUser(r.Context(), me)
	if err != nil {
		logx.Error(h.Log, reqID, op, "current user failed", err, "user_id", me)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me)
	v1.WriteOKResponse(w, r, p)
}

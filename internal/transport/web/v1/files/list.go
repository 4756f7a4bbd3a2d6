package files

import (
	"net/http"

	"github.com/EgorLis/med-vault/internal/domain"
	"github.com/EgorLis/med-vault/internal/transport/web/logx"
	"github.com/EgorLis/med-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/med-vault/internal/transport/web/v1"
)

// List godoc
// @Summary     List owner's documents
// @Description Только свои файлы, новые сверху.
// @Tags        files
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} domain.APIEnvelope{data=[]domain.MedicalFile}
// @Failure     401 {object} domain.APIEnvelope
// @Router      /api/v1/files [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "files.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserIDFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	list, err := h.Vault.List(r.Context(), me)
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err, "user_id", me)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if list == nil {
		list = []domain.MedicalFile{}
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me, "count", len(list))
	v1.WriteOKData(w, r, list)
}

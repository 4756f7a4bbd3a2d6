package files

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/med-vault/internal/domain"
	"github.com/EgorLis/med-vault/internal/transport/web/logx"
	"github.com/EgorLis/med-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/med-vault/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete document (owner only)
// @Description Чужой и несуществующий id — одинаковый 404.
// @Tags        files
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "file id"
// @Success     200 {object} domain.APIEnvelope{response=object}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /api/v1/files/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "files.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserIDFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	fileID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if err := h.Vault.Delete(r.Context(), me, fileID); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "user_id", me, "file_id", fileID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me, "file_id", fileID)
	v1.WriteOKResponse(w, r, map[string]bool{fileID.String(): true})
}

package files

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/EgorLis/med-vault/internal/domain"
	"github.com/EgorLis/med-vault/internal/transport/web/logx"
	"github.com/EgorLis/med-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/med-vault/internal/transport/web/v1"
)

// Download godoc
// @Summary     Download document bytes
// @Description Отдаёт исходные байты с Content-Type из метаданных.
// @Description Метаданные без блоба — 500 с отличимым кодом (целостность).
// @Tags        files
// @Produce     application/octet-stream
// @Security    BearerAuth
// @Param       id path string true "file id"
// @Success     200 {file} []byte
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/files/{id}/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "files.download"
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

	f, rc, err := h.Vault.Open(r.Context(), me, fileID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "open failed", err, "user_id", me, "file_id", fileID)
		v1.WriteDomainError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", f.MIME)
	w.Header().Set("Content-Length", strconv.FormatInt(f.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		// заголовки уже ушли — остаётся только лог
		logx.Error(h.Log, reqID, op, "stream interrupted", err, "file_id", fileID)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me, "file_id", fileID, "size", f.SizeBytes)
}

package files

import (
	"io"
	"net/http"
	"strings"

	"github.com/EgorLis/med-vault/internal/domain"
	"github.com/EgorLis/med-vault/internal/transport/web/logx"
	"github.com/EgorLis/med-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/med-vault/internal/transport/web/v1"
)

// Upload godoc
// @Summary     Upload medical document
// @Description multipart: name, category, file. Формат определяется по
// @Description содержимому (pdf/jpeg/png), лимит 10 MiB.
// @Tags        files
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       name     formData string true "display name"
// @Param       category formData string true "Lab Report|Prescription|X-Ray|Blood Report|MRI Scan|CT Scan|Other"
// @Param       file     formData file   true "document"
// @Success     200 {object} domain.APIEnvelope{response=domain.MedicalFile}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/files [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "files.upload"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	me, ok := mw.UserIDFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	// лимит тела выставлен в роутере чуть выше 10 MiB, чтобы ровно 10 MiB
	// дошли до vault, а превышение он отбросил сам
	if err := r.ParseMultipartForm(domain.MaxFileSize + 1<<20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		logx.Error(h.Log, reqID, op, "missing name", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	fh, _, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "missing file", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer fh.Close()

	content, err := io.ReadAll(fh)
	if err != nil {
		logx.Error(h.Log, reqID, op, "read file", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	f, err := h.Vault.Upload(r.Context(), me, name, r.FormValue("category"), content)
	if err != nil {
		logx.Error(h.Log, reqID, op, "upload failed", err, "user_id", me)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me, "file_id", f.ID, "size", f.SizeBytes)
	v1.WriteOKResponse(w, r, f)
}

package profile

import (
	"io"
	"net/http"

	"github.com/EgorLis/med-vault/internal/domain"
	"github.com/EgorLis/med-vault/internal/transport/web/logx"
	"github.com/EgorLis/med-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/med-vault/internal/transport/web/v1"
)

// Update godoc
// @Summary     Update owner profile
// @Description multipart: email, gender, phone, image (опционально, jpeg/png).
// @Description При замене картинки старая удаляется только после коммита профиля.
// @Tags        profile
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       email  formData string true  "email"
// @Param       gender formData string true  "male|female|other"
// @Param       phone  formData string true  "phone"
// @Param       image  formData file   false "profile image"
// @Success     200 {object} domain.APIEnvelope{response=domain.Profile}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/profile [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "profile.update"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	me, ok := mw.UserIDFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := r.ParseMultipartForm(domain.MaxImageSize + 1<<20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	var image []byte
	if fh, _, err := r.FormFile("image"); err == nil {
		defer fh.Close()
		image, err = io.ReadAll(fh)
		if err != nil {
			logx.Error(h.Log, reqID, op, "read image", err)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
	}

	p, err := h.Gate.UpdateProfile(r.Context(), me,
		r.FormValue("email"), r.FormValue("gender"), r.FormValue("phone"), image)
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "user_id", me)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me, "image_replaced", len(image) > 0)
	v1.WriteOKResponse(w, r, p)
}

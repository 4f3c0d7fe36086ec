package adaptor

import (
	"errors"
	"net/http"

	"erp-backend/internal/usecase"
	"erp-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxProfileUpload = 10 << 20

type ProfileHandler struct {
	service usecase.ProfileService
	log     *zap.Logger
}

func NewProfileHandler(service usecase.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log.With(zap.String("handler", "profile")),
	}
}

// GetProfile handles GET /profile/{email}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}
	utils.ResponseSuccess(w, "success", profile)
}

// UpdateProfile handles PUT /profile/{email} with a multipart form carrying
// an optional profile_pic file and address field.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProfileUpload+1<<20)
	err := r.ParseMultipartForm(maxProfileUpload)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid form data", nil)
		return
	}

	var update usecase.ProfileUpdate
	if values, ok := r.Form["address"]; ok && len(values) > 0 {
		update.Address = &values[0]
	}

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["profile_pic"]; len(files) > 0 {
			header := files[0]
			file, err := header.Open()
			if err != nil {
				utils.ResponseBadRequest(w, "Could not read uploaded file", nil)
				return
			}
			defer file.Close()

			update.Picture = &usecase.Upload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Body:        file,
			}
		}
	}

	profile, err := h.service.UpdateProfile(r.Context(), actor, chi.URLParam(r, "email"), update)
	if err != nil {
		handleServiceError(w, h.log, err, "update profile")
		return
	}
	utils.ResponseSuccess(w, "Profile updated successfully", profile)
}

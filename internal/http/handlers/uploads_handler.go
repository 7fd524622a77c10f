package handlers

import (
	"net/http"

	"github.com/Suyash1602/airBNB-clone/internal/http/response"
	"github.com/Suyash1602/airBNB-clone/internal/storage"
)

type UploadsHandler struct {
	photos    *storage.PhotoStore
	maxPhotos int
}

func NewUploadsHandler(photos *storage.PhotoStore, maxPhotos int) *UploadsHandler {
	return &UploadsHandler{
		photos:    photos,
		maxPhotos: maxPhotos,
	}
}

func (h *UploadsHandler) UploadByLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Link string `json:"link"`
	}
	if err := decodeStrict(r, &req); err != nil || req.Link == "" {
		response.BadRequest(w, "link is required")
		return
	}

	name, err := h.photos.SaveFromURL(r.Context(), req.Link)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, name)
}

func (h *UploadsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		response.BadRequest(w, "no photos provided")
		return
	}
	if len(files) > h.maxPhotos {
		response.BadRequest(w, "too many photos")
		return
	}

	names := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(w, "unreadable photo")
			return
		}
		name, err := h.photos.Save(f, fh.Filename)
		f.Close()
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		names = append(names, name)
	}

	response.WriteJSON(w, http.StatusOK, names)
}

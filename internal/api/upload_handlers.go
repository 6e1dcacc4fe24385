package api

import (
	"errors"
	"net/http"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/upload"
)

const maxPosterSize = 5 << 20 // 5MB

var posterContentTypes = map[string]bool{
	"image/jpg":  true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// handleUploadPoster accepts a multipart image and hands it to the
// upload gateway. Everything is rejected client-side of the store:
// missing file, wrong type, oversize body.
func (s *Server) handleUploadPoster(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPosterSize+4096) // slack for the multipart framing

	if err := r.ParseMultipartForm(maxPosterSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			errorJSON(w, http.StatusRequestEntityTooLarge, "file exceeds the 5MB limit")
			return
		}
		errorJSON(w, http.StatusBadRequest, "malformed multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !posterContentTypes[contentType] {
		errorJSON(w, http.StatusBadRequest, "only jpg, jpeg, png and gif images are allowed")
		return
	}
	if header.Size > maxPosterSize {
		errorJSON(w, http.StatusRequestEntityTooLarge, "file exceeds the 5MB limit")
		return
	}

	key := upload.PosterKey(header.Filename)
	url, err := s.uploads.Put(r.Context(), key, contentType, file, header.Size)
	if err != nil {
		s.log.Error("poster upload failed", "err", err)
		errorJSON(w, http.StatusBadGateway, "failed to store file")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"url":          url,
		"originalName": header.Filename,
		"size":         header.Size,
		"filename":     key,
	})
}

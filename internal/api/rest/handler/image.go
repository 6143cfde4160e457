package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/tastebite-server/internal/api/rest/response"
	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
)

const (
	multipartMemory   = 8 << 20
	multipartOverhead = 1 << 20
	sniffLen          = 512
)

// Image handles REST endpoints for uploaded pictures.
type Image struct {
	imageService   ImageService
	contextManager model.ContextManager
	maxUploadSize  int64
	logger         *logger.Logger
}

func NewImage(imageService ImageService, contextManager model.ContextManager, maxUploadSize int64, logger *logger.Logger) *Image {
	return &Image{
		imageService:   imageService,
		contextManager: contextManager,
		maxUploadSize:  maxUploadSize,
		logger:         logger,
	}
}

// Upload accepts a multipart "file" field. The content type is sniffed from
// the bytes, not taken from the client.
func (h *Image) Upload(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		handleError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleError(w, model.NewValidationError("file", fmt.Sprintf("File must not exceed %d bytes", h.maxUploadSize)))
			return
		}
		handleError(w, model.NewValidationError("file", "File is required"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, model.NewValidationError("file", "File is required"))
		return
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		h.logger.Error("Image handler: failed to read upload", "error", err.Error())
		handleError(w, err)
		return
	}
	contentType := http.DetectContentType(head[:n])
	body := io.MultiReader(bytes.NewReader(head[:n]), file)

	url, err := h.imageService.Upload(r.Context(), userID, contentType, body, header.Size)
	if err != nil {
		h.logger.Info("Image handler: upload failed", "user_id", userID.String(), "error", err.Error())
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, imageResponse{ImageURL: url})
}

// Get streams a stored image.
func (h *Image) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, name, err := imagePath(r)
	if err != nil {
		handleError(w, err)
		return
	}

	obj, err := h.imageService.Open(r.Context(), ownerID, name)
	if err != nil {
		handleError(w, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.logger.Debug("Image handler: client went away", "error", err.Error())
	}
}

func (h *Image) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		handleError(w, err)
		return
	}
	ownerID, name, err := imagePath(r)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.imageService.Delete(r.Context(), userID, ownerID, name); err != nil {
		h.logger.Info("Image handler: delete failed", "owner_id", ownerID.String(), "name", name, "error", err.Error())
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func imagePath(r *http.Request) (uuid.UUID, string, error) {
	ownerID, err := pathID(r, "owner")
	if err != nil {
		return uuid.Nil, "", err
	}
	return ownerID, mux.Vars(r)["name"], nil
}

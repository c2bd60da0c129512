package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/lipinotes/backend/internal/auth"
	"github.com/lipinotes/backend/internal/http/respond"
	"github.com/lipinotes/backend/internal/middleware"
	"github.com/lipinotes/backend/internal/ocr"
	"github.com/lipinotes/backend/internal/upload"
)

// Uploads larger than this are spooled to temp files by ParseMultipartForm.
const maxUploadMemory = 8 << 20

// OCRHandler accepts an uploaded image and relays the extraction service's
// text output.
type OCRHandler struct {
	uploads   *upload.DiskStore
	extractor ocr.Extractor
	tokens    *auth.TokenManager
}

// NewOCRHandler constructs the handler.
func NewOCRHandler(uploads *upload.DiskStore, extractor ocr.Extractor, tokens *auth.TokenManager) *OCRHandler {
	return &OCRHandler{uploads: uploads, extractor: extractor, tokens: tokens}
}

// Register attaches the OCR route to the mux.
func (h *OCRHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/predict_text", middleware.RequireSession(h.tokens, h.handlePredictText))
}

func (h *OCRHandler) handlePredictText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	file, header, err := formImage(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if strings.TrimSpace(header.Filename) == "" {
		respond.Error(w, http.StatusBadRequest, "no file selected")
		return
	}
	image, err := io.ReadAll(file)
	if err != nil {
		log.Printf("read upload error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}
	if len(image) == 0 {
		respond.Error(w, http.StatusBadRequest, "uploaded file is empty")
		return
	}

	if _, err := h.uploads.Save(header.Filename, image); err != nil {
		log.Printf("persist upload error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to store uploaded file")
		return
	}

	text, err := h.extractor.ExtractText(r.Context(), image)
	if err != nil {
		log.Printf("text extraction error: %v", err)
		respond.Error(w, http.StatusBadGateway, "text extraction failed")
		return
	}

	respond.Success(w, http.StatusOK, "text extracted successfully", respond.Body{"text": text})
}

// formImage returns the uploaded file from the "image" field, falling back to
// "file". Older clients used either name.
func formImage(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, nil, err
	}
	file, header, err := r.FormFile("image")
	if err == nil {
		return file, header, nil
	}
	if errors.Is(err, http.ErrMissingFile) {
		return r.FormFile("file")
	}
	return nil, nil, err
}

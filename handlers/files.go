package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"p9e.in/geodiario/middleware"
)

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

type signatureUploadReq struct {
	// DataURL is the canvas export from the signature pad, e.g.
	// "data:image/png;base64,iVBOR...".
	DataURL string `json:"dataUrl"`
}

// UploadSignature decodes a signature-pad data URL and stores it under the
// uploads directory, returning the /uploads URL to keep on the profile or
// diary instead of the multi-hundred-KB inline string.
func UploadSignature(w http.ResponseWriter, r *http.Request) {
	var req signatureUploadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	ext, raw, err := decodeDataURL(req.DataURL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dir := uploadDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		http.Error(w, "failed to create upload directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Timestamp plus user id keeps filenames unique without a DB lookup.
	filename := fmt.Sprintf("sig-%s-%s.%s",
		middleware.GetUserID(r), time.Now().Format("20060102-150405"), ext)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, raw, 0644); err != nil {
		http.Error(w, "failed to save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      "/uploads/" + filename,
		"filename": filename,
	})
}

// decodeDataURL accepts PNG or JPEG data URLs and returns the extension
// and decoded bytes.
func decodeDataURL(dataURL string) (ext string, raw []byte, err error) {
	var prefix string
	switch {
	case strings.HasPrefix(dataURL, "data:image/png;base64,"):
		prefix, ext = "data:image/png;base64,", "png"
	case strings.HasPrefix(dataURL, "data:image/jpeg;base64,"):
		prefix, ext = "data:image/jpeg;base64,", "jpg"
	default:
		return "", nil, fmt.Errorf("dataUrl must be a base64 PNG or JPEG data URL")
	}

	raw, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return ext, raw, nil
}

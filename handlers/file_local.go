// handlers/file_local.go
package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"p9e.in/fleetops/utils"
)

const uploadDir = "./uploads"

// UploadFile stores a multipart upload on the local filesystem and returns
// its serving URL. Used for POD documents and license photos; the returned
// url goes into the record's document field.
func UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "failed to create upload directory: "+err.Error())
		return
	}

	// 50 MB cap covers scanned PODs and photos.
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "missing file field: "+err.Error())
		return
	}
	defer file.Close()

	// Timestamp prefix avoids collisions between same-named uploads.
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("%s-%s", timestamp, filepath.Base(header.Filename))
	path := filepath.Join(uploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "failed to create file: "+err.Error())
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "failed to save file: "+err.Error())
		return
	}

	utils.JSONResult(w, http.StatusCreated, map[string]string{
		"url":      fmt.Sprintf("/uploads/%s", filename),
		"filename": filename,
	})
}

package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ihours/ihours-backend/pkg/errors"
)

// ErrorBody is the wire shape for failed requests: {"error": "..."}
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON sends a JSON response with the payload as the body
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(data)
}

// Error sends an error response. AppErrors carry their own status code;
// anything else becomes a 500 with a generic message.
func Error(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		JSON(w, appErr.StatusCode, ErrorBody{Error: appErr.Message})
		return
	}

	JSON(w, http.StatusInternalServerError, ErrorBody{Error: "an unexpected error occurred"})
}

// Attachment sends binary content for download with the given filename
func Attachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

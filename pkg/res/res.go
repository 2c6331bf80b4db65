package res

import (
	"encoding/json"
	"net/http"

	"messageboard/pkg/logger"
)

// Json writes a JSON response with the given status code.
func Json(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

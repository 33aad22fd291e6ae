// Package respond holds the JSON plumbing shared by all v1 handlers.
package respond

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/logger"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func JSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "encode response", logger.ErrorF(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, status int, err error) {
	JSON(ctx, w, status, ErrorResponse{Code: status, Message: err.Error()})
}

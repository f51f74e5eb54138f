package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"modern-stitch/app/middleware"
	"modern-stitch/content"
	"modern-stitch/logger"
	"modern-stitch/service"
)

const maxBodyBytes = 64 << 10

// errorResponse is the JSON error envelope
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeServiceError maps service sentinels to status codes; anything unknown is a 500
func writeServiceError(w http.ResponseWriter, r *http.Request, fallback *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, service.ErrCartItemNotFound):
		writeError(w, http.StatusNotFound, "cart_item_not_found", err.Error())
	case errors.Is(err, content.ErrNotFound):
		writeError(w, http.StatusNotFound, "page_not_found", err.Error())
	case errors.Is(err, service.ErrCartEmpty):
		writeError(w, http.StatusBadRequest, "cart_empty", err.Error())
	case errors.Is(err, service.ErrInvalidVariant):
		writeError(w, http.StatusBadRequest, "invalid_variant", err.Error())
	case errors.Is(err, service.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "empty_message", err.Error())
	case errors.Is(err, service.ErrStylistBusy):
		writeError(w, http.StatusConflict, "stylist_busy", err.Error())
	case errors.Is(err, service.ErrSceneBusy):
		writeError(w, http.StatusConflict, "scene_busy", err.Error())
	default:
		logger.FromContext(r.Context(), fallback).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// sessionFrom returns the request's session or writes a 500 when the middleware is missing
func sessionFrom(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "no_session", "session middleware is not installed")
		return nil, false
	}
	return s, true
}

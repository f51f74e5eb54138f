package controller

import (
	"net/http"

	"go.uber.org/zap"

	"modern-stitch/models"
	"modern-stitch/service"
)

// StylistController handles the AI stylist chat
type StylistController struct {
	front  *service.Storefront
	logger *zap.Logger
}

// NewStylistController creates a new StylistController
func NewStylistController(front *service.Storefront, logger *zap.Logger) *StylistController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StylistController{front: front, logger: logger}
}

// GetMessages handles GET /api/stylist/messages
func (c *StylistController) GetMessages(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.front.StylistTranscript(s))
}

// SendMessage handles POST /api/stylist/messages
// Example request:
// POST /api/stylist/messages
// {"message": "What should I wear to a rooftop party?"}
// The response is the transcript with the user message and the stylist reply appended.
// Provider failures come back as a normal reply; 409 means a send is already pending.
func (c *StylistController) SendMessage(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req models.StylistMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	transcript, err := c.front.SendStylistMessage(r.Context(), s, req.Message)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, transcript)
}

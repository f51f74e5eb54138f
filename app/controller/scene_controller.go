package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"modern-stitch/models"
	"modern-stitch/service"
)

// SceneController handles the AI scene switcher of a product page
type SceneController struct {
	front  *service.Storefront
	logger *zap.Logger
}

// NewSceneController creates a new SceneController
func NewSceneController(front *service.Storefront, logger *zap.Logger) *SceneController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneController{front: front, logger: logger}
}

// GetScene handles GET /api/products/{productID}/scene
func (c *SceneController) GetScene(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	view, err := c.front.SceneView(s, chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SwitchScene handles POST /api/products/{productID}/scene
// Example request: {"place": "Urban"}
// Example response:
// {
//   "productId": "1",
//   "activePlace": "Urban",
//   "currentImage": "data:image/png;base64,...",
//   "state": "succeeded",
//   "loading": false,
//   ...
// }
// When no image comes back the original image is shown and activePlace resets to Studio.
func (c *SceneController) SwitchScene(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req models.SceneRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	scene, err := models.ParseScene(req.Place)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_place", err.Error())
		return
	}

	view, err := c.front.SwitchScene(r.Context(), s, chi.URLParam(r, "productID"), scene)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"modern-stitch/logger"
	"modern-stitch/models"
)

// SceneService re-renders a product photo in another environment
type SceneService struct {
	generator ContentGenerator
	images    ImageSource
	model     string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewSceneService creates a scene visualizer
func NewSceneService(generator ContentGenerator, images ImageSource, model string, timeout time.Duration, logger *zap.Logger) (*SceneService, error) {
	if generator == nil {
		return nil, fmt.Errorf("scene service: generator is required")
	}
	if images == nil {
		return nil, fmt.Errorf("scene service: image source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneService{
		generator: generator,
		images:    images,
		model:     model,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// Visualize fetches the product image and asks the model to place it in scene.
// Any failure along the way yields NoImage.
func (s *SceneService) Visualize(ctx context.Context, product models.Product, scene models.Scene) models.SceneResult {
	log := logger.FromContext(ctx, s.logger).With(
		zap.String("product_id", product.ID),
		zap.String("scene", scene.Name),
	)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if !generatorEnabled(s.generator) {
		log.Debug("scene visualization skipped, no generator configured")
		return models.NoImage()
	}

	source, err := s.images.Fetch(ctx, product.Image)
	if err != nil {
		log.Warn("scene source image unavailable", zap.Error(err))
		return models.NoImage()
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(source.Data, source.MimeType),
			genai.NewPartFromText(ScenePrompt(product.Name, scene.Prompt)),
		}, genai.RoleUser),
	}

	started := time.Now()
	resp, err := s.generator.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		log.Warn("scene visualization failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return models.NoImage()
	}

	data, mimeType := responseImage(resp)
	if len(data) == 0 {
		log.Info("scene visualization returned no image")
		return models.NoImage()
	}

	log.Info("scene visualization done", zap.Int("bytes", len(data)), zap.Duration("elapsed", time.Since(started)))
	return models.ImageFound(data, mimeType)
}

// ScenePrompt is the instruction sent alongside the product image
func ScenePrompt(productName, place string) string {
	return fmt.Sprintf("Place this product, the \"%s\", into a high-end, realistic \"%s\" setting. "+
		"Maintain the exact details, fabric texture, and fit of the clothing. "+
		"The lighting should perfectly match the environment. Cinematic fashion photography style.",
		productName, place)
}

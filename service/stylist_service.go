package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"modern-stitch/logger"
	"modern-stitch/models"
)

// Fixed stylist replies
const (
	StylistGreeting      = "Hello! I'm your MODERN-STITCH Personal Stylist. Need help finding an outfit or styling a piece?"
	StylistEmptyReply    = "I'm sorry, I couldn't generate a style tip right now. Let's try again!"
	StylistApologyReply  = "Our stylist is currently out of the office. Please try again in a moment!"
	stylistSystemMessage = "You are a professional fashion stylist. Be trendy, helpful, and concise."
)

// StylistService produces style advice grounded on the catalog.
// It holds no per-call state and is safe for concurrent use.
type StylistService struct {
	generator   ContentGenerator
	catalog     *CatalogService
	model       string
	temperature float32
	timeout     time.Duration
	logger      *zap.Logger
	markdown    goldmark.Markdown
	policy      *bluemonday.Policy
}

// StylistOptions configures the advice request
type StylistOptions struct {
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// NewStylistService creates a new stylist
func NewStylistService(generator ContentGenerator, catalog *CatalogService, opts StylistOptions, logger *zap.Logger) (*StylistService, error) {
	if generator == nil {
		return nil, fmt.Errorf("stylist service: generator is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("stylist service: catalog is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &StylistService{
		generator:   generator,
		catalog:     catalog,
		model:       opts.Model,
		temperature: float32(opts.Temperature),
		timeout:     opts.Timeout,
		logger:      logger,
		markdown:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:      bluemonday.UGCPolicy(),
	}, nil
}

// Advise returns the stylist's reply to query. It never fails: provider errors become the
// apology text and an empty answer becomes the empty-reply text.
func (s *StylistService) Advise(ctx context.Context, query string) string {
	log := logger.FromContext(ctx, s.logger)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromText(AdvicePrompt(query, s.catalog.Products()), genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(stylistSystemMessage, genai.RoleUser),
		Temperature:       genai.Ptr(s.temperature),
	}

	started := time.Now()
	resp, err := s.generator.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		log.Warn("style advice failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return StylistApologyReply
	}

	text := responseText(resp)
	if text == "" {
		log.Info("style advice came back empty", zap.String("model", s.model))
		return StylistEmptyReply
	}
	return text
}

// RenderHTML converts a markdown reply to sanitised HTML
func (s *StylistService) RenderHTML(text string) string {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &buf); err != nil {
		s.logger.Warn("render stylist markdown", zap.Error(err))
		return s.policy.Sanitize(text)
	}
	return s.policy.Sanitize(buf.String())
}

// AdvicePrompt builds the user turn: brand framing, one catalog line per product, the quoted
// request and the instruction to recommend at most two products
func AdvicePrompt(query string, products []models.Product) string {
	var sb strings.Builder
	sb.WriteString("You are an expert AI Stylist for 'MODERN-STITCH', a premium fashion brand.\n")
	sb.WriteString("Your goal is to provide fashion advice and recommend products from our catalog based on the user's needs.\n\n")
	sb.WriteString("Our Catalog:\n")
	sb.WriteString(CatalogContext(products))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "User Request: \"%s\"\n\n", query)
	sb.WriteString("Provide a helpful, stylish, and concise response. Recommend 1-2 specific products if they fit the request.")
	return sb.String()
}

// CatalogContext serialises products as "<name> ($<price>) - <description>", one per line
func CatalogContext(products []models.Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s ($%s) - %s", p.Name, p.Price.String(), p.Description))
	}
	return strings.Join(lines, "\n")
}

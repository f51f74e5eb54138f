package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"modern-stitch/models"
)

func product(id, price string, category models.Category, sizes ...string) models.Product {
	return models.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.RequireFromString(price),
		Category: category,
		Image:    "https://images.example.com/" + id + ".jpg",
		Sizes:    sizes,
		Colors:   []string{"Black", "White"},
	}
}

func testCatalog() models.Catalog {
	return models.Catalog{
		Products: []models.Product{
			product("1", "45", models.CategoryStreetwear, "S", "M", "L", "XL"),
			product("2", "85", models.CategoryMen, "30", "32"),
			product("3", "120", models.CategoryWomen, "XS", "S"),
			product("4", "110", models.CategoryStreetwear, "S", "M"),
		},
		Categories: []models.CategoryCard{{Name: models.CategoryMen, Image: "men.jpg", Count: 1}},
	}
}

type stubGenerator struct {
	mu       sync.Mutex
	resp     *genai.GenerateContentResponse
	err      error
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	// block, when set, is waited on before returning
	block chan struct{}
}

func (g *stubGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.model = model
	g.contents = contents
	g.config = config
	return g.resp, g.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: genai.RoleModel}
	for _, p := range parts {
		content.Parts = append(content.Parts, genai.NewPartFromText(p))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func imageResponse(data []byte, mimeType string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: genai.RoleModel,
				Parts: []*genai.Part{
					{Text: "Here is your scene"},
					genai.NewPartFromBytes(data, mimeType),
				},
			},
		}},
	}
}

type stubImageSource struct {
	img   SourceImage
	err   error
	calls int
}

func (s *stubImageSource) Fetch(context.Context, string) (SourceImage, error) {
	s.calls++
	return s.img, s.err
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"modern-stitch/config"
	"modern-stitch/service"
)

// fakeGenerator answers text prompts with advice and image prompts with a picture,
// depending on the model
type fakeGenerator struct {
	mu        sync.Mutex
	adviceErr error
	noImage   bool
}

func (g *fakeGenerator) GenerateContent(_ context.Context, model string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	part := genai.NewPartFromText("Try the **Oversized Midnight Tee**.")
	if model == "scene-model" {
		if g.noImage {
			part = genai.NewPartFromText("sorry")
		} else {
			part = genai.NewPartFromBytes([]byte("scene"), "image/png")
		}
	} else if g.adviceErr != nil {
		return nil, g.adviceErr
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromParts([]*genai.Part{part}, genai.RoleModel),
		}},
	}, nil
}

type fakeImages struct{}

func (fakeImages) Fetch(context.Context, string) (service.SourceImage, error) {
	return service.SourceImage{Data: []byte("jpeg"), MimeType: "image/jpeg"}, nil
}

func testConfig() config.Config {
	return config.Config{
		Env:     "test",
		Catalog: config.CatalogConfig{Source: config.CatalogSourceStatic},
		AI: config.AIConfig{
			AdviceModel: "advice-model",
			SceneModel:  "scene-model",
			Temperature: 0.7,
			Timeout:     time.Second,
		},
		Session: config.SessionConfig{CookieName: "ms_session", TTL: time.Hour},
	}
}

type client struct {
	t    *testing.T
	srv  *httptest.Server
	http *http.Client
}

func newClient(t *testing.T, gen service.ContentGenerator) *client {
	t.Helper()
	application, err := InitializeWith(context.Background(), testConfig(), zap.NewNop(), Dependencies{
		Generator: gen,
		Images:    fakeImages{},
	})
	require.NoError(t, err)
	t.Cleanup(application.Close)

	srv := httptest.NewServer(application.Handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, srv: srv, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, reader)
	require.NoError(c.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestPing(t *testing.T) {
	c := newClient(t, &fakeGenerator{})
	status, body := c.do(http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestCatalogEndpoints(t *testing.T) {
	c := newClient(t, &fakeGenerator{})

	status, body := c.do(http.MethodGet, "/api/catalog/products", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["products"], 6)

	status, body = c.do(http.MethodGet, "/api/catalog/products?category=streetwear", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Streetwear", body["category"])
	assert.Len(t, body["products"], 2)

	status, body = c.do(http.MethodGet, "/api/catalog/products?category=Kids", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_category", body["error"])

	status, body = c.do(http.MethodGet, "/api/catalog/products/3", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Women", body["category"])

	status, body = c.do(http.MethodGet, "/api/catalog/products/999", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "product_not_found", body["error"])

	status, _ = c.do(http.MethodGet, "/api/catalog/testimonials", "")
	assert.Equal(t, http.StatusOK, status)

	status, body = c.do(http.MethodGet, "/api/pages/returns", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "30-Day Free Returns", body["title"])

	status, body = c.do(http.MethodGet, "/api/pages/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "page_not_found", body["error"])

	status, body = c.do(http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body["error"])
}

func TestLookbookHTML(t *testing.T) {
	c := newClient(t, &fakeGenerator{})

	resp, err := c.http.Get(c.srv.URL + "/api/lookbook")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "MODERN-STITCH")

	status, _ := c.do(http.MethodGet, "/api/lookbook?format=png", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCartFlow(t *testing.T) {
	c := newClient(t, &fakeGenerator{})

	status, body := c.do(http.MethodPost, "/api/cart/items", `{"productId":"1"}`)
	require.Equal(t, http.StatusOK, status)
	status, body = c.do(http.MethodPost, "/api/cart/items", `{"productId":"1"}`)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, true, body["open"])
	lines := body["lines"].([]any)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, "S", line["selectedSize"])
	assert.Equal(t, float64(2), line["quantity"])
	assert.Equal(t, "$90.00", body["totals"].(map[string]any)["totalFormatted"])

	status, body = c.do(http.MethodPost, "/api/cart/items", `{"productId":"1","size":"XXXL"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_variant", body["error"])

	status, body = c.do(http.MethodPatch, "/api/cart/items/1", `{"delta":-5}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["lines"].([]any)[0].(map[string]any)["quantity"])

	status, body = c.do(http.MethodPatch, "/api/cart/items/1", `{"delta":9223372036854775807}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(service.MaxLineQuantity), body["lines"].([]any)[0].(map[string]any)["quantity"])
	assert.Equal(t, "$44,955.00", body["totals"].(map[string]any)["totalFormatted"])

	status, body = c.do(http.MethodPatch, "/api/cart/items/1", `{"delta":-9223372036854775808}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["lines"].([]any)[0].(map[string]any)["quantity"])

	status, body = c.do(http.MethodPatch, "/api/cart/items/42", `{"delta":1}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "cart_item_not_found", body["error"])

	status, body = c.do(http.MethodPost, "/api/checkout", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, service.CheckoutMessage, body["message"])

	status, body = c.do(http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["open"])
	assert.Equal(t, float64(1), body["itemCount"])

	status, _ = c.do(http.MethodDelete, "/api/cart/items/1", "")
	require.Equal(t, http.StatusOK, status)

	status, body = c.do(http.MethodPost, "/api/checkout", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "cart_empty", body["error"])
}

func TestCartRequiresBody(t *testing.T) {
	c := newClient(t, &fakeGenerator{})
	status, body := c.do(http.MethodPost, "/api/cart/items", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", body["error"])

	status, _ = c.do(http.MethodPost, "/api/cart/items", `{"size":"M"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSessionsAreIsolated(t *testing.T) {
	a := newClient(t, &fakeGenerator{})
	status, _ := a.do(http.MethodPost, "/api/wardrobe/2/toggle", "")
	require.Equal(t, http.StatusOK, status)

	other := &http.Client{}
	resp, err := other.Get(a.srv.URL + "/api/wardrobe")
	require.NoError(t, err)
	defer resp.Body.Close()
	var view map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, float64(0), view["count"])

	_, body := a.do(http.MethodGet, "/api/session", "")
	assert.Equal(t, float64(1), body["wardrobe"].(map[string]any)["count"])
	assert.NotEmpty(t, body["sessionId"])
}

func TestNavigationFlow(t *testing.T) {
	c := newClient(t, &fakeGenerator{})

	_, body := c.do(http.MethodGet, "/api/navigation", "")
	assert.Equal(t, "home", body["page"])
	assert.Equal(t, "All", body["selectedCategory"])

	status, body := c.do(http.MethodPut, "/api/navigation/scroll", `{"y":800}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(800), body["scrollY"])

	status, body = c.do(http.MethodPut, "/api/navigation/category", `{"category":"Men"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "shop", body["page"])
	assert.Equal(t, "Men", body["selectedCategory"])
	assert.Equal(t, float64(0), body["scrollY"])

	_, body = c.do(http.MethodGet, "/api/navigation/shop", "")
	assert.Len(t, body["products"], 1)

	status, body = c.do(http.MethodPut, "/api/navigation/filter", `{"category":"all"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "All", body["selectedCategory"])

	status, body = c.do(http.MethodPost, "/api/navigation/product/5", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "product", body["page"])
	assert.Equal(t, "5", body["selectedProduct"].(map[string]any)["id"])

	status, body = c.do(http.MethodPut, "/api/navigation/page", `{"page":"about"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "about", body["page"])

	status, body = c.do(http.MethodPut, "/api/navigation/page", `{"page":"checkout"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_page", body["error"])
}

func TestStylistFlow(t *testing.T) {
	gen := &fakeGenerator{}
	c := newClient(t, gen)

	_, body := c.do(http.MethodGet, "/api/stylist/messages", "")
	messages := body["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, service.StylistGreeting, messages[0].(map[string]any)["content"])

	status, body := c.do(http.MethodPost, "/api/stylist/messages", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "empty_message", body["error"])

	status, body = c.do(http.MethodPost, "/api/stylist/messages", `{"message":"gym to brunch?"}`)
	require.Equal(t, http.StatusOK, status)
	messages = body["messages"].([]any)
	require.Len(t, messages, 3)
	reply := messages[2].(map[string]any)
	assert.Equal(t, "bot", reply["role"])
	assert.Contains(t, reply["html"], "<strong>Oversized Midnight Tee</strong>")

	gen.mu.Lock()
	gen.adviceErr = errors.New("quota exceeded")
	gen.mu.Unlock()

	status, body = c.do(http.MethodPost, "/api/stylist/messages", `{"message":"again"}`)
	require.Equal(t, http.StatusOK, status)
	messages = body["messages"].([]any)
	assert.Equal(t, service.StylistApologyReply, messages[len(messages)-1].(map[string]any)["content"])
}

func TestSceneFlow(t *testing.T) {
	gen := &fakeGenerator{}
	c := newClient(t, gen)

	status, body := c.do(http.MethodGet, "/api/products/1/scene", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Studio", body["activePlace"])
	assert.Equal(t, body["originalImage"], body["currentImage"])

	status, body = c.do(http.MethodPost, "/api/products/1/scene", `{"place":"Urban"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Urban", body["activePlace"])
	assert.Equal(t, "succeeded", body["state"])
	assert.True(t, strings.HasPrefix(body["currentImage"].(string), "data:image/png;base64,"))

	status, body = c.do(http.MethodPost, "/api/products/1/scene", `{"place":"Studio"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, body["originalImage"], body["currentImage"])

	gen.mu.Lock()
	gen.noImage = true
	gen.mu.Unlock()

	status, body = c.do(http.MethodPost, "/api/products/1/scene", `{"place":"Nightlife"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Studio", body["activePlace"])
	assert.Equal(t, "fell_back", body["state"])
	assert.Equal(t, body["originalImage"], body["currentImage"])

	status, body = c.do(http.MethodPost, "/api/products/1/scene", `{"place":"Moon"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_place", body["error"])

	status, _ = c.do(http.MethodPost, "/api/products/999/scene", `{"place":"Urban"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

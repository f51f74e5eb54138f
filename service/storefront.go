package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"modern-stitch/logger"
	"modern-stitch/models"
	"modern-stitch/pricing"
	"modern-stitch/utils"
)

// CheckoutMessage is the checkout stub's only answer
const CheckoutMessage = "Moving to secure payment gateway..."

// Session is the explicit per-visitor application state. Every field is guarded by mu;
// AI round-trips run with mu released and are fenced by the pending flags instead.
type Session struct {
	ID string

	mu       sync.Mutex
	cart     *Cart
	cartOpen bool
	wardrobe *Wardrobe
	nav      *Navigation

	messages       []models.ChatMessage
	stylistPending bool

	scenes        map[string]*sceneSwitch
	sceneInFlight bool
}

type sceneSwitch struct {
	productID   string
	productName string
	original    string
	current     string
	activePlace string
	state       models.SceneState
}

// NewSession creates a session holding the stylist greeting
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:       id,
		cart:     NewCart(),
		wardrobe: NewWardrobe(),
		nav:      NewNavigation(),
		messages: []models.ChatMessage{{Role: models.ChatRoleBot, Content: StylistGreeting, SentAt: now}},
		scenes:   make(map[string]*sceneSwitch),
	}
}

func (s *Session) sceneFor(p models.Product) *sceneSwitch {
	sw, ok := s.scenes[p.ID]
	if !ok {
		sw = &sceneSwitch{
			productID:   p.ID,
			productName: p.Name,
			original:    p.Image,
			current:     p.Image,
			activePlace: models.SceneStudio.Name,
			state:       models.SceneStateIdle,
		}
		s.scenes[p.ID] = sw
	}
	return sw
}

// Storefront applies user actions to sessions. It owns no session state itself.
type Storefront struct {
	catalog *CatalogService
	pricing *pricing.Engine
	stylist *StylistService
	scenes  *SceneService
	logger  *zap.Logger
	now     func() time.Time
}

// NewStorefront wires the engines together
func NewStorefront(catalog *CatalogService, stylist *StylistService, scenes *SceneService, logger *zap.Logger) (*Storefront, error) {
	if catalog == nil {
		return nil, fmt.Errorf("storefront: catalog is required")
	}
	if stylist == nil {
		return nil, fmt.Errorf("storefront: stylist is required")
	}
	if scenes == nil {
		return nil, fmt.Errorf("storefront: scene service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Storefront{
		catalog: catalog,
		pricing: pricing.NewEngine(),
		stylist: stylist,
		scenes:  scenes,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Catalog exposes the read-only catalog store
func (f *Storefront) Catalog() *CatalogService {
	return f.catalog
}

// NewSession creates a fresh session with the given id
func (f *Storefront) NewSession(id string) *Session {
	return NewSession(id, f.now())
}

// SessionView renders the whole session
func (f *Storefront) SessionView(s *Session) models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionView{
		SessionID:  s.ID,
		Navigation: s.nav.View(),
		Cart:       f.cartViewLocked(s),
		Wardrobe:   wardrobeViewLocked(s),
	}
}

// Cart

// CartView renders the cart drawer
func (f *Storefront) CartView(s *Session) models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f.cartViewLocked(s)
}

func (f *Storefront) cartViewLocked(s *Session) models.CartView {
	return models.CartView{
		Open:      s.cartOpen,
		Lines:     f.pricing.Lines(s.cart.Items()),
		LineCount: s.cart.Len(),
		ItemCount: s.cart.Count(),
		Totals:    f.pricing.Summarize(s.cart.Subtotal()),
	}
}

// AddToCart validates the requested variant, adds one unit and opens the cart drawer
func (f *Storefront) AddToCart(ctx context.Context, s *Session, req models.AddToCartRequest) (models.CartView, error) {
	p, err := f.catalog.Product(strings.TrimSpace(req.ProductID))
	if err != nil {
		return models.CartView{}, err
	}

	size, err := resolveVariant(p.Sizes, req.Size, "size")
	if err != nil {
		return models.CartView{}, err
	}
	color, err := resolveVariant(p.Colors, req.Color, "color")
	if err != nil {
		return models.CartView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.cart.Add(p, size, color)
	s.cartOpen = true

	logger.FromContext(ctx, f.logger).Debug("cart line added",
		zap.String("product_id", item.ID),
		zap.String("size", item.SelectedSize),
		zap.Int("quantity", item.Quantity),
	)
	return f.cartViewLocked(s), nil
}

// resolveVariant maps a client value onto the canonical option; empty means default
func resolveVariant(options []string, raw, kind string) (string, error) {
	if utils.NormalizeVariant(raw) == "" {
		return "", nil
	}
	opt, ok := utils.MatchOption(options, raw)
	if !ok {
		return "", fmt.Errorf("%w: %s %q", ErrInvalidVariant, kind, raw)
	}
	return opt, nil
}

// UpdateQuantity applies delta to every line of the product
func (f *Storefront) UpdateQuantity(s *Session, productID string, delta int) (models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart.UpdateQuantity(productID, delta) {
		return models.CartView{}, fmt.Errorf("%w: %s", ErrCartItemNotFound, productID)
	}
	return f.cartViewLocked(s), nil
}

// RemoveFromCart deletes every line of the product
func (f *Storefront) RemoveFromCart(s *Session, productID string) (models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart.Remove(productID) == 0 {
		return models.CartView{}, fmt.Errorf("%w: %s", ErrCartItemNotFound, productID)
	}
	return f.cartViewLocked(s), nil
}

// SetCartOpen opens or closes the cart drawer
func (f *Storefront) SetCartOpen(s *Session, open bool) models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = open
	return f.cartViewLocked(s)
}

// Checkout is a stub: it closes the drawer and keeps the cart contents
func (f *Storefront) Checkout(ctx context.Context, s *Session) (models.CheckoutResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart.Len() == 0 {
		return models.CheckoutResponse{}, ErrCartEmpty
	}
	s.cartOpen = false
	totals := f.pricing.Summarize(s.cart.Subtotal())

	logger.FromContext(ctx, f.logger).Info("checkout requested",
		zap.String("total", totals.Total.StringFixed(2)),
		zap.Int("items", s.cart.Count()),
	)
	return models.CheckoutResponse{
		Status:  "redirecting",
		Message: CheckoutMessage,
		Totals:  totals,
	}, nil
}

// Wardrobe

// ToggleWardrobe saves or unsaves a product
func (f *Storefront) ToggleWardrobe(s *Session, productID string) (models.WardrobeToggleResponse, error) {
	p, err := f.catalog.Product(productID)
	if err != nil {
		return models.WardrobeToggleResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	saved := s.wardrobe.Toggle(p)
	return models.WardrobeToggleResponse{
		ProductID: p.ID,
		Saved:     saved,
		Wardrobe:  wardrobeViewLocked(s),
	}, nil
}

// WardrobeView lists the saved products
func (f *Storefront) WardrobeView(s *Session) models.WardrobeView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return wardrobeViewLocked(s)
}

func wardrobeViewLocked(s *Session) models.WardrobeView {
	return models.WardrobeView{Items: s.wardrobe.Items(), Count: s.wardrobe.Len()}
}

// Navigation

// NavigationView renders the current page and selection
func (f *Storefront) NavigationView(s *Session) models.NavigationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.View()
}

// SetPage switches page
func (f *Storefront) SetPage(s *Session, page models.Page) models.NavigationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.SetPage(page)
	return s.nav.View()
}

// SelectProduct opens a product page
func (f *Storefront) SelectProduct(s *Session, productID string) (models.NavigationView, error) {
	p, err := f.catalog.Product(productID)
	if err != nil {
		return models.NavigationView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.SelectProduct(p)
	return s.nav.View(), nil
}

// SelectCategory opens the shop filtered by category
func (f *Storefront) SelectCategory(s *Session, category models.Category) models.NavigationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.SelectCategory(category)
	return s.nav.View()
}

// SetCategoryFilter changes the shop filter
func (f *Storefront) SetCategoryFilter(s *Session, category models.Category) models.NavigationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.SetCategoryFilter(category)
	return s.nav.View()
}

// RecordScroll stores the client's scroll offset
func (f *Storefront) RecordScroll(s *Session, y int) models.NavigationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.RecordScroll(y)
	return s.nav.View()
}

// ShopProducts returns the catalog filtered by the session's active category
func (f *Storefront) ShopProducts(s *Session) []models.Product {
	s.mu.Lock()
	category := s.nav.Category()
	s.mu.Unlock()
	return f.catalog.FilterProducts(category)
}

// Stylist

// StylistTranscript returns the chat so far
func (f *Storefront) StylistTranscript(s *Session) models.StylistTranscript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return transcriptLocked(s)
}

func transcriptLocked(s *Session) models.StylistTranscript {
	return models.StylistTranscript{
		Messages: append([]models.ChatMessage(nil), s.messages...),
		Pending:  s.stylistPending,
	}
}

// SendStylistMessage appends the user's message, waits for the stylist and appends the reply.
// Only one send per session may be pending.
func (f *Storefront) SendStylistMessage(ctx context.Context, s *Session, text string) (models.StylistTranscript, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.StylistTranscript{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.stylistPending {
		s.mu.Unlock()
		return models.StylistTranscript{}, ErrStylistBusy
	}
	s.stylistPending = true
	s.messages = append(s.messages, models.ChatMessage{Role: models.ChatRoleUser, Content: text, SentAt: f.now()})
	s.mu.Unlock()

	reply := f.stylist.Advise(context.WithoutCancel(ctx), text)
	html := f.stylist.RenderHTML(reply)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, models.ChatMessage{Role: models.ChatRoleBot, Content: reply, HTML: html, SentAt: f.now()})
	s.stylistPending = false
	return transcriptLocked(s), nil
}

// Scenes

// SceneView renders the scene switcher of a product
func (f *Storefront) SceneView(s *Session, productID string) (models.SceneView, error) {
	p, err := f.catalog.Product(productID)
	if err != nil {
		return models.SceneView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return sceneViewLocked(s.sceneFor(p)), nil
}

func sceneViewLocked(sw *sceneSwitch) models.SceneView {
	return models.SceneView{
		ProductID:     sw.productID,
		ProductName:   sw.productName,
		OriginalImage: sw.original,
		CurrentImage:  sw.current,
		ActivePlace:   sw.activePlace,
		State:         sw.state,
		Loading:       sw.state == models.SceneStateRequesting,
		Places:        append([]models.Scene(nil), models.Scenes...),
	}
}

// SwitchScene changes the environment a product is shown in. Studio restores the original
// image locally. Any other place is rendered by the model; the call blocks until the result
// is applied and is not cancelled when the caller goes away.
func (f *Storefront) SwitchScene(ctx context.Context, s *Session, productID string, scene models.Scene) (models.SceneView, error) {
	p, err := f.catalog.Product(productID)
	if err != nil {
		return models.SceneView{}, err
	}

	s.mu.Lock()
	sw := s.sceneFor(p)
	if scene.IsStudio() {
		sw.current = sw.original
		sw.activePlace = models.SceneStudio.Name
		if sw.state != models.SceneStateRequesting {
			sw.state = models.SceneStateIdle
		}
		view := sceneViewLocked(sw)
		s.mu.Unlock()
		return view, nil
	}
	if s.sceneInFlight {
		s.mu.Unlock()
		return models.SceneView{}, ErrSceneBusy
	}
	s.sceneInFlight = true
	sw.activePlace = scene.Name
	sw.state = models.SceneStateRequesting
	s.mu.Unlock()

	result := f.scenes.Visualize(context.WithoutCancel(ctx), p, scene)

	s.mu.Lock()
	defer s.mu.Unlock()
	if result.Found {
		sw.current = result.DataURI()
		sw.state = models.SceneStateSucceeded
	} else {
		sw.current = sw.original
		sw.activePlace = models.SceneStudio.Name
		sw.state = models.SceneStateFellBack
	}
	s.sceneInFlight = false
	return sceneViewLocked(sw), nil
}

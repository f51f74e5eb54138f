package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"modern-stitch/models"
)

type storefrontFixture struct {
	front  *Storefront
	advice *stubGenerator
	scene  *stubGenerator
	images *stubImageSource
}

func newStorefrontFixture(t *testing.T) storefrontFixture {
	t.Helper()
	catalog, err := NewCatalogServiceFromCatalog(testCatalog())
	require.NoError(t, err)

	advice := &stubGenerator{resp: textResponse("Go with the **tee**.")}
	sceneGen := &stubGenerator{resp: imageResponse([]byte("scene"), "image/png")}
	images := &stubImageSource{img: SourceImage{Data: []byte("jpeg"), MimeType: "image/jpeg"}}

	stylist, err := NewStylistService(advice, catalog, StylistOptions{Model: "advice"}, zap.NewNop())
	require.NoError(t, err)
	scenes, err := NewSceneService(sceneGen, images, "scene", 0, zap.NewNop())
	require.NoError(t, err)
	front, err := NewStorefront(catalog, stylist, scenes, zap.NewNop())
	require.NoError(t, err)

	return storefrontFixture{front: front, advice: advice, scene: sceneGen, images: images}
}

func TestStorefrontAddToCart(t *testing.T) {
	fx := newStorefrontFixture(t)
	s := fx.front.NewSession("s1")
	ctx := context.Background()

	_, err := fx.front.AddToCart(ctx, s, models.AddToCartRequest{ProductID: "1"})
	require.NoError(t, err)
	view, err := fx.front.AddToCart(ctx, s, models.AddToCartRequest{ProductID: "1"})
	require.NoError(t, err)

	assert.True(t, view.Open)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "S", view.Lines[0].SelectedSize)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, 2, view.ItemCount)
	assert.Equal(t, "$90.00", view.Totals.TotalFormatted)
	assert.Equal(t, "$90.00", view.Lines[0].LineTotalFormatted)

	view, err = fx.front.AddToCart(ctx, s, models.AddToCartRequest{ProductID: "1", Size: "m", Color: "white"})
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, "M", view.Lines[1].SelectedSize)
	assert.Equal(t, "White", view.Lines[1].SelectedColor)
	assert.True(t, s.cart.Subtotal().Equal(view.Totals.Subtotal), view.Totals.Subtotal.String())
	assert.Equal(t, "$135.00", view.Totals.SubtotalFormatted)
}

func TestStorefrontAddToCartValidation(t *testing.T) {
	fx := newStorefrontFixture(t)
	s := fx.front.NewSession("s1")
	ctx := context.Background()

	_, err := fx.front.AddToCart(ctx, s, models.AddToCartRequest{ProductID: "nope"})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = fx.front.AddToCart(ctx, s, models.AddToCartRequest{ProductID: "1", Size: "XXL"})
	assert.ErrorIs(t, err, ErrInvalidVariant)

	_, err = fx.front.AddToCart(ctx, s, models.AddToCartRequest{ProductID: "1", Color: "Purple"})
	assert.ErrorIs(t, err, ErrInvalidVariant)

	view := fx.front.CartView(s)
	assert.Empty(t, view.Lines)
	assert.False(t, view.Open)
}

func TestStorefrontUpdateAndRemove(t *testing.T) {
	fx := newStorefrontFixture(t)
	s := fx.front.NewSession("s1")
	ctx := context.Background()
	_, err := fx.front.AddToCart(ctx, s, models.AddToCartRequest{ProductID: "2"})
	require.NoError(t, err)

	view, err := fx.front.UpdateQuantity(s, "2", -5)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Lines[0].Quantity)

	_, err = fx.front.UpdateQuantity(s, "3", 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	view, err = fx.front.RemoveFromCart(s, "2")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Totals.Total.IsZero())

	_, err = fx.front.RemoveFromCart(s, "2")
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestStorefrontCheckout(t *testing.T) {
	fx := newStorefrontFixture(t)
	s := fx.front.NewSession("s1")
	ctx := context.Background()

	_, err := fx.front.Checkout(ctx, s)
	assert.ErrorIs(t, err, ErrCartEmpty)

	_, err = fx.front.AddToCart(ctx, s, models.AddToCartRequest{ProductID: "3"})
	require.NoError(t, err)

	resp, err := fx.front.Checkout(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, CheckoutMessage, resp.Message)
	assert.Equal(t, "$120.00", resp.Totals.TotalFormatted)

	view := fx.front.CartView(s)
	assert.False(t, view.Open)
	assert.Len(t, view.Lines, 1)
}

func TestStorefrontCartVisibility(t *testing.T) {
	fx := newStorefrontFixture(t)
	s := fx.front.NewSession("s1")

	assert.True(t, fx.front.SetCartOpen(s, true).Open)
	assert.False(t, fx.front.SetCartOpen(s, false).Open)
}

func TestStorefrontWardrobe(t *testing.T) {
	fx := newStorefrontFixture(t)
	s := fx.front.NewSession("s1")

	resp, err := fx.front.ToggleWardrobe(s, "4")
	require.NoError(t, err)
	assert.True(t, resp.Saved)
	assert.Equal(t, 1, resp.Wardrobe.Count)

	resp, err = fx.front.ToggleWardrobe(s, "4")
	require.NoError(t, err)
	assert.False(t, resp.Saved)
	assert.Zero(t, fx.front.WardrobeView(s).Count)

	_, err = fx.front.ToggleWardrobe(s, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestStorefrontNavigationAndShop(t *testing.T) {
	fx := newStorefrontFixture(t)
	s := fx.front.NewSession("s1")

	fx.front.RecordScroll(s, 300)
	view := fx.front.SelectCategory(s, models.CategoryStreetwear)
	assert.Equal(t, models.PageShop, view.Page)
	assert.Zero(t, view.ScrollY)

	shop := fx.front.ShopProducts(s)
	require.Len(t, shop, 2)
	assert.Equal(t, "1", shop[0].ID)

	fx.front.SetCategoryFilter(s, models.CategoryAll)
	assert.Len(t, fx.front.ShopProducts(s), 4)

	view, err := fx.front.SelectProduct(s, "3")
	require.NoError(t, err)
	assert.Equal(t, models.PageProduct, view.Page)
	assert.Equal(t, "3", view.SelectedProduct.ID)

	_, err = fx.front.SelectProduct(s, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Equal(t, models.PageAbout, fx.front.SetPage(s, models.PageAbout).Page)
	assert.Equal(t, models.PageAbout, fx.front.SessionView(s).Navigation.Page)
}

func TestStorefrontStylist(t *testing.T) {
	fx := newStorefrontFixture(t)
	s := fx.front.NewSession("s1")

	_, err := fx.front.SendStylistMessage(context.Background(), s, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	transcript, err := fx.front.SendStylistMessage(context.Background(), s, "date night?")
	require.NoError(t, err)
	require.Len(t, transcript.Messages, 3)
	assert.Equal(t, StylistGreeting, transcript.Messages[0].Content)
	assert.Equal(t, models.ChatRoleUser, transcript.Messages[1].Role)
	assert.Equal(t, "date night?", transcript.Messages[1].Content)
	assert.Equal(t, models.ChatRoleBot, transcript.Messages[2].Role)
	assert.Contains(t, transcript.Messages[2].HTML, "<strong>tee</strong>")
	assert.False(t, transcript.Pending)
}

func TestStorefrontStylistFailureIsAReply(t *testing.T) {
	fx := newStorefrontFixture(t)
	fx.advice.err = errors.New("provider down")
	s := fx.front.NewSession("s1")

	transcript, err := fx.front.SendStylistMessage(context.Background(), s, "help")
	require.NoError(t, err)
	assert.Equal(t, StylistApologyReply, transcript.Messages[len(transcript.Messages)-1].Content)
}

func TestStorefrontStylistBusy(t *testing.T) {
	fx := newStorefrontFixture(t)
	fx.advice.block = make(chan struct{})
	s := fx.front.NewSession("s1")

	done := make(chan error, 1)
	go func() {
		_, err := fx.front.SendStylistMessage(context.Background(), s, "first")
		done <- err
	}()

	require.Eventually(t, func() bool { return fx.front.StylistTranscript(s).Pending }, time.Second, 5*time.Millisecond)

	_, err := fx.front.SendStylistMessage(context.Background(), s, "second")
	assert.ErrorIs(t, err, ErrStylistBusy)

	close(fx.advice.block)
	require.NoError(t, <-done)
	assert.Len(t, fx.front.StylistTranscript(s).Messages, 3)
}

func TestStorefrontSwitchScene(t *testing.T) {
	fx := newStorefrontFixture(t)
	s := fx.front.NewSession("s1")
	ctx := context.Background()

	view, err := fx.front.SceneView(s, "1")
	require.NoError(t, err)
	assert.Equal(t, "Studio", view.ActivePlace)
	assert.Equal(t, view.OriginalImage, view.CurrentImage)
	assert.Equal(t, models.SceneStateIdle, view.State)
	assert.Len(t, view.Places, 4)

	nature, err := models.ParseScene("Nature")
	require.NoError(t, err)
	view, err = fx.front.SwitchScene(ctx, s, "1", nature)
	require.NoError(t, err)
	assert.Equal(t, "Nature", view.ActivePlace)
	assert.Equal(t, models.SceneStateSucceeded, view.State)
	assert.Equal(t, models.ImageFound([]byte("scene"), "image/png").DataURI(), view.CurrentImage)
	assert.False(t, view.Loading)

	view, err = fx.front.SwitchScene(ctx, s, "1", models.SceneStudio)
	require.NoError(t, err)
	assert.Equal(t, "Studio", view.ActivePlace)
	assert.Equal(t, view.OriginalImage, view.CurrentImage)
	assert.Equal(t, 1, fx.scene.callCount())
}

func TestStorefrontSwitchSceneFallsBack(t *testing.T) {
	fx := newStorefrontFixture(t)
	fx.scene.resp = textResponse("no image for you")
	s := fx.front.NewSession("s1")

	urbanScene, err := models.ParseScene("Urban")
	require.NoError(t, err)
	view, err := fx.front.SwitchScene(context.Background(), s, "2", urbanScene)
	require.NoError(t, err)

	assert.Equal(t, "Studio", view.ActivePlace)
	assert.Equal(t, view.OriginalImage, view.CurrentImage)
	assert.Equal(t, models.SceneStateFellBack, view.State)
}

func TestStorefrontSwitchSceneBusy(t *testing.T) {
	fx := newStorefrontFixture(t)
	fx.scene.block = make(chan struct{})
	s := fx.front.NewSession("s1")
	urbanScene, err := models.ParseScene("Urban")
	require.NoError(t, err)

	done := make(chan models.SceneView, 1)
	go func() {
		view, _ := fx.front.SwitchScene(context.Background(), s, "1", urbanScene)
		done <- view
	}()

	require.Eventually(t, func() bool {
		view, err := fx.front.SceneView(s, "1")
		return err == nil && view.Loading
	}, time.Second, 5*time.Millisecond)

	_, err = fx.front.SwitchScene(context.Background(), s, "1", urbanScene)
	assert.ErrorIs(t, err, ErrSceneBusy)

	// studio stays available while a render is pending
	studio, err := fx.front.SwitchScene(context.Background(), s, "1", models.SceneStudio)
	require.NoError(t, err)
	assert.Equal(t, "Studio", studio.ActivePlace)

	close(fx.scene.block)
	final := <-done
	assert.Equal(t, models.SceneStateSucceeded, final.State)
	assert.NotEqual(t, final.OriginalImage, final.CurrentImage)
}

func TestStorefrontSwitchSceneIgnoresCallerCancellation(t *testing.T) {
	fx := newStorefrontFixture(t)
	s := fx.front.NewSession("s1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	nightlife, err := models.ParseScene("nightlife")
	require.NoError(t, err)
	view, err := fx.front.SwitchScene(ctx, s, "1", nightlife)
	require.NoError(t, err)
	assert.Equal(t, models.SceneStateSucceeded, view.State)
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"modern-stitch/app/controller"
	"modern-stitch/app/middleware"
	"modern-stitch/service"
)

type Controllers struct {
	Catalog    *controller.CatalogController
	Cart       *controller.CartController
	Wardrobe   *controller.WardrobeController
	Navigation *controller.NavigationController
	Stylist    *controller.StylistController
	Scene      *controller.SceneController
	Page       *controller.PageController
}

// Options carries what the middleware stack needs
type Options struct {
	Logger   *zap.Logger
	Sessions *service.SessionStore
	Session  middleware.SessionOptions
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":"not_found","message":"route not found"}` + "\n"))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte(`{"error":"method_not_allowed","message":"method not allowed"}` + "\n"))
}

// SetupRoutes builds the HTTP handler
func SetupRoutes(controllers *Controllers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer(opts.Logger))

	r.Get("/ping", pingHandler)

	r.Route("/api", func(r chi.Router) {
		// Catalog data is shared and needs no session
		r.Get("/catalog/products", controllers.Catalog.ListProducts)
		r.Get("/catalog/products/{productID}", controllers.Catalog.GetProduct)
		r.Get("/catalog/categories", controllers.Catalog.ListCategories)
		r.Get("/catalog/testimonials", controllers.Catalog.ListTestimonials)
		r.Get("/catalog/lookbook", controllers.Catalog.ListLookbook)
		r.Get("/lookbook", controllers.Catalog.ExportLookbook)

		r.Get("/pages", controllers.Page.ListPages)
		r.Get("/pages/{slug}", controllers.Page.GetPage)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Sessions(opts.Sessions, opts.Session))

			r.Get("/session", controllers.Navigation.GetSession)

			r.Get("/cart", controllers.Cart.GetCart)
			r.Post("/cart/items", controllers.Cart.AddItem)
			r.Patch("/cart/items/{productID}", controllers.Cart.UpdateItem)
			r.Delete("/cart/items/{productID}", controllers.Cart.RemoveItem)
			r.Put("/cart/visibility", controllers.Cart.SetVisibility)
			r.Post("/checkout", controllers.Cart.Checkout)

			r.Get("/wardrobe", controllers.Wardrobe.GetWardrobe)
			r.Post("/wardrobe/{productID}/toggle", controllers.Wardrobe.Toggle)

			r.Get("/navigation", controllers.Navigation.GetNavigation)
			r.Get("/navigation/shop", controllers.Navigation.ShopProducts)
			r.Put("/navigation/page", controllers.Navigation.SetPage)
			r.Put("/navigation/category", controllers.Navigation.SelectCategory)
			r.Put("/navigation/filter", controllers.Navigation.SetFilter)
			r.Post("/navigation/product/{productID}", controllers.Navigation.SelectProduct)
			r.Put("/navigation/scroll", controllers.Navigation.RecordScroll)

			r.Get("/stylist/messages", controllers.Stylist.GetMessages)
			r.Post("/stylist/messages", controllers.Stylist.SendMessage)

			r.Get("/products/{productID}/scene", controllers.Scene.GetScene)
			r.Post("/products/{productID}/scene", controllers.Scene.SwitchScene)
		})
	})

	return r
}

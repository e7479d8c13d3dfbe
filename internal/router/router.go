package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/menulink/api/internal/config"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/handler"
	mw "github.com/menulink/api/internal/middleware"
	"github.com/menulink/api/internal/service"
	"github.com/menulink/api/internal/storage"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, images *storage.Store) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	newOrderStore := func(db database.DBTX) service.OrderStore {
		return database.New(db)
	}
	orderService := service.NewOrderService(pool, queries, newOrderStore)
	statsService := service.NewStatisticsService(queries)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	imageHandler := handler.NewImageHandler(images)
	r.Get("/images/{kind}/{filename}", imageHandler.Serve)

	// Table-side routes: reached by scanning a table QR code, no auth.
	menuHandler := handler.NewMenuHandler(queries, orderService)
	r.Get("/restaurants/{id}/menu", menuHandler.Menu)
	r.Post("/restaurants/{id}/orders", menuHandler.SubmitOrder)

	// Protected routes (restaurant owner)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		r.Get("/me", authHandler.Me)

		restaurantHandler := handler.NewRestaurantHandler(queries, images)
		r.Route("/restaurant", func(r chi.Router) {
			r.Post("/", restaurantHandler.Create)
			r.Get("/", restaurantHandler.Get)
			r.Put("/", restaurantHandler.Update)
			r.Delete("/", restaurantHandler.Delete)
		})

		categoryHandler := handler.NewCategoryHandler(queries)
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Create)
			r.Put("/{id}", categoryHandler.Update)
			r.Delete("/{id}", categoryHandler.Delete)
		})

		itemHandler := handler.NewItemHandler(queries, images)
		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemHandler.List)
			r.Post("/", itemHandler.Create)
			r.Put("/{id}", itemHandler.Update)
			r.Delete("/{id}", itemHandler.Delete)
		})

		tableHandler := handler.NewTableHandler(queries)
		r.Route("/tables", func(r chi.Router) {
			r.Get("/", tableHandler.List)
			r.Post("/", tableHandler.Create)
			r.Delete("/{id}", tableHandler.Delete)
		})

		orderHandler := handler.NewOrderHandler(queries, orderService)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.List)
			r.Post("/", orderHandler.Create)
			r.Put("/{id}/status", orderHandler.UpdateStatus)
			r.Delete("/{id}", orderHandler.Delete)
		})

		historyHandler := handler.NewHistoryHandler(queries)
		r.Get("/order-history", historyHandler.List)

		statsHandler := handler.NewStatisticsHandler(queries, statsService)
		r.Get("/statistics", statsHandler.Summary)

		reportHandler := handler.NewReportHandler(queries)
		r.Get("/reports/sales-summary", reportHandler.SalesSummary)
	})

	return r
}

package httpserver

import (
	"net/http"
	"time"

	"smartfinance-go/internal/config"
	"smartfinance-go/internal/transport/httpserver/handler"
	authmw "smartfinance-go/internal/transport/httpserver/middleware"
	"smartfinance-go/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(chimw.StripSlashes)
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		auth := authmw.NewSupabaseAuth(cfg.Auth, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)
			r.Patch("/auth/me", handlers.Common.UpdateMe)

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", handlers.Transactions.ListTransactions)
				r.Post("/", handlers.Transactions.CreateTransaction)
				r.Get("/summary", handlers.Transactions.Summary)

				r.Get("/categories", handlers.Transactions.ListCategories)
				r.Post("/categories", handlers.Transactions.CreateCategory)
				r.Get("/categories/{id}", handlers.Transactions.GetCategory)
				r.Put("/categories/{id}", handlers.Transactions.UpdateCategory)
				r.Patch("/categories/{id}", handlers.Transactions.UpdateCategory)
				r.Delete("/categories/{id}", handlers.Transactions.DeleteCategory)

				r.Get("/budgets", handlers.Transactions.ListBudgets)
				r.Post("/budgets", handlers.Transactions.CreateBudget)
				r.Get("/budgets/{id}", handlers.Transactions.GetBudget)
				r.Put("/budgets/{id}", handlers.Transactions.UpdateBudget)
				r.Patch("/budgets/{id}", handlers.Transactions.UpdateBudget)
				r.Delete("/budgets/{id}", handlers.Transactions.DeleteBudget)

				r.Get("/savings-goals", handlers.Transactions.ListGoals)
				r.Post("/savings-goals", handlers.Transactions.CreateGoal)
				r.Get("/savings-goals/{id}", handlers.Transactions.GetGoal)
				r.Put("/savings-goals/{id}", handlers.Transactions.UpdateGoal)
				r.Patch("/savings-goals/{id}", handlers.Transactions.UpdateGoal)
				r.Delete("/savings-goals/{id}", handlers.Transactions.DeleteGoal)
				r.Post("/savings-goals/{id}/add_funds", handlers.Transactions.AddFunds)

				r.Get("/{id}", handlers.Transactions.GetTransaction)
				r.Put("/{id}", handlers.Transactions.UpdateTransaction)
				r.Patch("/{id}", handlers.Transactions.UpdateTransaction)
				r.Delete("/{id}", handlers.Transactions.DeleteTransaction)
			})

			r.Get("/ml/predict-expenses", handlers.Insights.PredictExpenses)
			r.Get("/ml/insights", handlers.Insights.SpendingInsights)
			r.Post("/ml/predict-category", handlers.Insights.PredictCategory)
		})
	})

	return r
}

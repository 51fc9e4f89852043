package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/jfsanchez2k/webflow-ecommerce/internal/agilpay"
	"github.com/jfsanchez2k/webflow-ecommerce/pkg/metrics"
)

type Deps struct {
	Gateway        *agilpay.Client
	Users          UserStore
	Pool           *pgxpool.Pool
	Metrics        *metrics.ServerMetrics
	CallbackWriter *kafkago.Writer
	StaticDir      string
}

func NewRouter(d Deps) http.Handler {
	payments := NewPaymentsHandler(d.Gateway, d.CallbackWriter)
	users := NewUsersHandler(d.Users)

	r := chi.NewRouter()
	r.Use(instrument(d.Metrics))
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if d.Pool != nil {
			if err := d.Pool.Ping(req.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "db_error"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", users.List)
			r.Post("/", users.Create)
			r.Get("/{id}", users.Get)
			r.Put("/{id}", users.Update)
			r.Delete("/{id}", users.Delete)
		})
		r.Route("/agilpay", func(r chi.Router) {
			r.Post("/create-payment", payments.CreatePayment)
			r.Post("/payment-response", payments.PaymentResponse)
			r.Get("/products", payments.Products)
		})
	})

	if d.StaticDir != "" {
		r.NotFound(spaHandler(d.StaticDir))
	}

	return r
}

// spaHandler serves files from dir and falls back to index.html so the
// front-end router can own unknown paths.
func spaHandler(dir string) http.HandlerFunc {
	fs := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			http.Error(w, "index.html not found", http.StatusNotFound)
			return
		}
		http.ServeFile(w, r, index)
	}
}

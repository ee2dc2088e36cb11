package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/example/restaurant-orders/internal/api/middleware"
	"github.com/example/restaurant-orders/internal/auth"
	"github.com/example/restaurant-orders/internal/hub"
)

// RouterConfig bundles the handler groups the router wires up.
type RouterConfig struct {
	Orders       *OrderHandlers
	Auth         *AuthHandlers
	Menu         *MenuHandlers
	Reservations *ReservationHandlers
	Hub          *hub.Hub
	JWTService   *auth.JWTService
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	protect := middleware.Protect(cfg.JWTService)
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return protect(middleware.AdminOnly(h))
	}

	// Auth
	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		cfg.Auth.Register(w, r)
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		cfg.Auth.Login(w, r)
	})
	mux.Handle("/auth/me", protect(http.HandlerFunc(cfg.Auth.Me)))

	// Menu
	mux.HandleFunc("/menu", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg.Menu.List(w, r)
		case http.MethodPost:
			adminOnly(cfg.Menu.Create).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/menu/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg.Menu.Get(w, r)
		case http.MethodPut:
			adminOnly(cfg.Menu.Update).ServeHTTP(w, r)
		case http.MethodDelete:
			adminOnly(cfg.Menu.Delete).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Orders
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			protect(http.HandlerFunc(cfg.Orders.Create)).ServeHTTP(w, r)
		case http.MethodGet:
			adminOnly(cfg.Orders.All).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case path == "/orders/myorders" && r.Method == http.MethodGet:
			protect(http.HandlerFunc(cfg.Orders.MyOrders)).ServeHTTP(w, r)
		case strings.HasSuffix(path, "/status") && r.Method == http.MethodPut:
			adminOnly(cfg.Orders.UpdateStatus).ServeHTTP(w, r)
		case r.Method == http.MethodPut:
			adminOnly(cfg.Orders.Update).ServeHTTP(w, r)
		case r.Method == http.MethodDelete:
			adminOnly(cfg.Orders.Delete).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Reservations
	mux.HandleFunc("/reservations", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			cfg.Reservations.Create(w, r)
		case http.MethodGet:
			cfg.Reservations.List(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Real-time channel
	mux.HandleFunc("/ws", cfg.Hub.ServeWS)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			respondMessage(w, http.StatusNotFound, "Not found")
			return
		}
		w.Write([]byte("Old Skool Restaurant API is running"))
	})

	return cors.AllowAll().Handler(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/tastebite-server/internal/api/rest/handler"
	"github.com/dtroode/tastebite-server/internal/api/rest/middleware"
	"github.com/dtroode/tastebite-server/internal/api/rest/response"
	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
)

// Services groups the business services behind the REST surface.
type Services struct {
	Auth      handler.AuthService
	Tokens    middleware.TokenService
	Recipes   handler.RecipeService
	Favorites handler.FavoriteRecipeService
	Users     handler.UserService
	Images    handler.ImageService
	Health    handler.Pinger
}

// Options tunes the cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	MaxUploadSize  int64
	RateLimiter    *middleware.RateLimiter
	Registry       *prometheus.Registry
}

// Router represents the REST router for tastebite operations.
type Router struct {
	services       Services
	options        Options
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(services Services, options Options, contextManager model.ContextManager, logger *logger.Logger) *Router {
	if options.Registry == nil {
		options.Registry = prometheus.NewRegistry()
	}
	return &Router{
		services:       services,
		options:        options,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the route table and middleware chain.
//
// Returns the root handler to serve.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	metrics := middleware.NewMetrics(r.options.Registry)
	authenticate := middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger)

	root := mux.NewRouter()
	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})
	root.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	root.Use(logging.Handle, metrics.Handle)

	health := handler.NewHealth(r.services.Health, r.logger)
	root.HandleFunc("/health", health.Check).Methods(http.MethodGet)
	root.Handle("/metrics", promhttp.HandlerFor(r.options.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := root.PathPrefix("/api").Subrouter()
	protected := api.NewRoute().Subrouter()
	protected.Use(authenticate.Handle)

	r.registerAuthRoutes(api)
	r.registerRecipeRoutes(api, protected)
	r.registerFavoriteRoutes(protected)
	r.registerUserRoutes(protected)
	r.registerImageRoutes(api, protected)

	var h http.Handler = root
	if r.options.RateLimiter != nil {
		h = r.options.RateLimiter.Handle(h)
	}
	return middleware.NewCORS(r.options.AllowedOrigins).Handle(h)
}

func (r *Router) registerAuthRoutes(api *mux.Router) {
	auth := handler.NewAuth(r.services.Auth, r.logger)
	api.HandleFunc("/signup", auth.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/refresh", auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/logout", auth.Logout).Methods(http.MethodPost)
}

func (r *Router) registerRecipeRoutes(api, protected *mux.Router) {
	recipe := handler.NewRecipe(r.services.Recipes, r.contextManager, r.logger)
	api.HandleFunc("/recipes", recipe.List).Methods(http.MethodGet)
	api.HandleFunc("/recipes/{id}", recipe.Get).Methods(http.MethodGet)
	protected.HandleFunc("/recipes", recipe.Create).Methods(http.MethodPost)
	protected.HandleFunc("/recipes/{id}", recipe.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/recipes/{id}", recipe.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/my-recipes", recipe.ListMine).Methods(http.MethodGet)
}

func (r *Router) registerFavoriteRoutes(protected *mux.Router) {
	fav := handler.NewFavoriteRecipe(r.services.Favorites, r.contextManager, r.logger)
	protected.HandleFunc("/favorite_recipes", fav.List).Methods(http.MethodGet)
	protected.HandleFunc("/favorite_recipes", fav.Create).Methods(http.MethodPost)
	protected.HandleFunc("/favorite_recipes/{id}", fav.Get).Methods(http.MethodGet)
	protected.HandleFunc("/favorite_recipes/{id}", fav.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/favorite_recipes/{id}", fav.Delete).Methods(http.MethodDelete)
}

func (r *Router) registerUserRoutes(protected *mux.Router) {
	user := handler.NewUser(r.services.Users, r.contextManager, r.logger)
	protected.HandleFunc("/users", user.List).Methods(http.MethodGet)
	protected.HandleFunc("/me", user.Me).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}", user.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{id}", user.Delete).Methods(http.MethodDelete)
}

func (r *Router) registerImageRoutes(api, protected *mux.Router) {
	image := handler.NewImage(r.services.Images, r.contextManager, r.options.MaxUploadSize, r.logger)
	api.HandleFunc("/images/{owner}/{name}", image.Get).Methods(http.MethodGet)
	protected.HandleFunc("/images", image.Upload).Methods(http.MethodPost)
	protected.HandleFunc("/images/{owner}/{name}", image.Delete).Methods(http.MethodDelete)
}

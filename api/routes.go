package api

import (
	"github.com/gorilla/mux"

	"github.com/mightytheif/sakany/internal/cache"
	"github.com/mightytheif/sakany/internal/chat"
	"github.com/mightytheif/sakany/internal/config"
	"github.com/mightytheif/sakany/internal/db"
	"github.com/mightytheif/sakany/internal/jobs"
	"github.com/mightytheif/sakany/internal/lifestyle"
	"github.com/mightytheif/sakany/internal/repository/sqlite"
)

// SetupRoutes wires every handler to the router. The caller owns the lifetime
// of the database, cache, hub and queue; this function only connects them.
func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, c *cache.Cache, hub *chat.Hub, queue jobs.Queue) (*mux.Router, error) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(database, nil)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	propertiesHandler := NewPropertiesHandler(repo, c)
	quizHandler, err := NewQuizHandler(lifestyle.NewMatcher(cfg.Matching.DefaultArchetype), repo)
	if err != nil {
		return nil, err
	}
	favoritesHandler := NewFavoritesHandler(repo, repo)
	messagesHandler := NewMessagesHandler(repo, hub)
	reportsHandler := NewReportsHandler(repo, repo, queue)
	adminHandler := NewAdminHandler(repo, queue)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")
	r.HandleFunc("/v1/properties", propertiesHandler.ListPublic).Methods("GET")
	r.HandleFunc("/v1/properties/featured", propertiesHandler.Featured).Methods("GET")
	r.HandleFunc("/v1/quiz/lifestyle", quizHandler.Lifestyle).Methods("POST")
	r.HandleFunc("/v1/quiz/match", quizHandler.Match).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Property endpoints. GetProperty sits behind auth so owners and admins
	// can see their hidden listings; public consumers use the list routes.
	apiV1.HandleFunc("/properties", propertiesHandler.CreateProperty).Methods("POST")
	apiV1.HandleFunc("/properties/mine", propertiesHandler.MyProperties).Methods("GET")
	apiV1.HandleFunc("/properties/{id:[0-9]+}", propertiesHandler.GetProperty).Methods("GET")
	apiV1.HandleFunc("/properties/{id:[0-9]+}", propertiesHandler.UpdateProperty).Methods("PUT")
	apiV1.HandleFunc("/properties/{id:[0-9]+}", propertiesHandler.DeleteProperty).Methods("DELETE")
	apiV1.HandleFunc("/properties/{id:[0-9]+}/status", propertiesHandler.UpdateStatus).Methods("PUT")

	// Favorites endpoints
	apiV1.HandleFunc("/favorites", favoritesHandler.List).Methods("GET")
	apiV1.HandleFunc("/favorites/{id:[0-9]+}", favoritesHandler.Add).Methods("POST")
	apiV1.HandleFunc("/favorites/{id:[0-9]+}", favoritesHandler.Remove).Methods("DELETE")

	// Messaging endpoints
	apiV1.HandleFunc("/messages", messagesHandler.Send).Methods("POST")
	apiV1.HandleFunc("/messages", messagesHandler.Inbox).Methods("GET")
	apiV1.HandleFunc("/messages/{user_id:[0-9]+}", messagesHandler.Conversation).Methods("GET")
	apiV1.HandleFunc("/ws", messagesHandler.Websocket).Methods("GET")

	// Report endpoints
	apiV1.HandleFunc("/properties/{id:[0-9]+}/reports", reportsHandler.Create).Methods("POST")

	// Admin endpoints
	adminV1 := apiV1.PathPrefix("/admin").Subrouter()
	adminV1.Use(AdminOnlyMiddleware)
	adminV1.HandleFunc("/properties/pending", adminHandler.ListPending).Methods("GET")
	adminV1.HandleFunc("/properties/{id:[0-9]+}/approve", adminHandler.Approve).Methods("POST")
	adminV1.HandleFunc("/properties/{id:[0-9]+}/reject", adminHandler.Reject).Methods("POST")
	adminV1.HandleFunc("/reports", reportsHandler.List).Methods("GET")
	adminV1.HandleFunc("/reports/{id:[0-9]+}/resolve", reportsHandler.Resolve).Methods("POST")
	adminV1.HandleFunc("/reports/{id:[0-9]+}/dismiss", reportsHandler.Dismiss).Methods("POST")

	return r, nil
}

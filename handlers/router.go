package handlers

import (
	"mapify-server/middleware"

	"github.com/gorilla/mux"
)

func NewRouter(mapHandler *MapHandler, authHandler *AuthHandler, jwtSecret string, allowedOrigins []string) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.ErrorMiddleware())
	r.Use(middleware.CORSMiddleware(allowedOrigins))

	// Read-only view state
	r.HandleFunc("/types", mapHandler.GetLocationTypes).Methods("GET", "OPTIONS")
	r.HandleFunc("/view", mapHandler.GetView).Methods("GET", "OPTIONS")
	r.HandleFunc("/locations", mapHandler.GetLocations).Methods("GET", "OPTIONS")
	r.HandleFunc("/selection", mapHandler.GetSelection).Methods("GET", "OPTIONS")

	r.HandleFunc("/auth/token", authHandler.IssueToken).Methods("POST", "OPTIONS")

	// Mutations go through the coordinator and need a viewer token
	viewerRouter := r.NewRoute().Subrouter()
	viewerRouter.Use(middleware.JWTMiddleware(jwtSecret))
	viewerRouter.HandleFunc("/events", mapHandler.PostEvent).Methods("POST", "OPTIONS")
	viewerRouter.HandleFunc("/refresh", mapHandler.Refresh).Methods("POST", "OPTIONS")

	return r
}

package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"careassess/internal/service"
	"careassess/internal/transport/rest/handler"
	"careassess/internal/transport/rest/middleware"
	"careassess/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	SessionManager    *service.SessionManager
	WSHub             *ws.Hub
	Log               zerolog.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.SessionManager, c.Log)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/assessments/{assessmentId}", wsHandler.SessionWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Clinician routes (any authenticated user)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/assessments", assessmentHandler.Create).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/assessments/{assessmentId}", assessmentHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/assessments/{assessmentId}", assessmentHandler.Delete).Methods("DELETE", "OPTIONS")
	userRoutes.HandleFunc("/patients/{patientId}/assessments", assessmentHandler.ListByPatient).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/assessments/{assessmentId}/answers", assessmentHandler.UpdateAnswers).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/assessments/{assessmentId}/groups", assessmentHandler.ApplyGroupSelection).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/assessments/{assessmentId}/autosave", assessmentHandler.Autosave).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/assessments/{assessmentId}/completion", assessmentHandler.Completion).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/assessments/{assessmentId}/submit", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/assessments/{assessmentId}/close", assessmentHandler.Close).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/assessments/{assessmentId}/careplan-seed", assessmentHandler.CarePlanSeed).Methods("GET", "OPTIONS")

	// Reviewer routes
	reviewerRoutes := v1.NewRoute().Subrouter()
	reviewerRoutes.Use(authMW.RequireReviewer)

	reviewerRoutes.HandleFunc("/assessments/{assessmentId}/review", assessmentHandler.Review).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

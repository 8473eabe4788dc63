package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/repfit/workout-tracker-be/internal/api/handlers"
	"github.com/repfit/workout-tracker-be/internal/auth"
	"github.com/repfit/workout-tracker-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	jwt *auth.JWT,
	allowedOrigins []string,
	userService services.UserServiceProvider,
	exerciseService services.ExerciseServiceProvider,
	workoutService services.WorkoutServiceProvider,
	scheduleService services.ScheduleServiceProvider,
	reportService services.ReportServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, jwt)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	reportHandler := handlers.NewReportHandler(reportService)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Workout Tracker API is live!"))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(jwt.Middleware())
			r.Get("/me", authHandler.Me)
		})
	})

	// Everything below requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(jwt.Middleware())

		r.Get("/exercises", exerciseHandler.GetAll)

		r.Route("/workouts", func(r chi.Router) {
			r.Get("/", workoutHandler.GetAll)
			r.Post("/", workoutHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", workoutHandler.Get)
				r.Put("/", workoutHandler.Update)
				r.Delete("/", workoutHandler.Delete)
				r.Route("/schedule", func(r chi.Router) {
					r.Get("/", scheduleHandler.GetAllForWorkout)
					r.Post("/", scheduleHandler.Create)
					r.Put("/{scheduleId}", scheduleHandler.Update)
					r.Delete("/{scheduleId}", scheduleHandler.Delete)
				})
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/overview", reportHandler.Overview)
			r.Get("/weekly", reportHandler.Weekly)
			r.Get("/exercise/{id}/progress", reportHandler.ExerciseProgress)
			r.Get("/upcoming", reportHandler.Upcoming)
		})
	})

	return r
}

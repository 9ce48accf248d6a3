package app

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Calendar
	r.HandleFunc("/api/calendar/month", deps.CalendarHandler.GetMonth).Methods("GET")
	r.HandleFunc("/api/calendar/day", deps.CalendarHandler.GetDay).Methods("GET")
	r.HandleFunc("/api/calendar/week", deps.CalendarHandler.GetWeek).Methods("GET")

	// Workouts
	r.HandleFunc("/api/workout", deps.WorkoutHandler.ListWorkouts).Methods("GET")
	r.HandleFunc("/api/workout", deps.WorkoutHandler.CreateWorkout).Methods("POST")
	r.HandleFunc("/api/workout/{id}", deps.WorkoutHandler.UpdateWorkout).Methods("PUT")
	r.HandleFunc("/api/workout/{id}", deps.WorkoutHandler.DeleteWorkout).Methods("DELETE")

	if deps.MetricsRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{})).Methods("GET")
	}
}

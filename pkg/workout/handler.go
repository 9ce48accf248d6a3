package workout

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/caley/caley/internal/rest"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type WorkoutDTO struct {
	Id          string    `json:"id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Rating      int       `json:"rating"`
	Date        time.Time `json:"date"`
}

type WorkoutRequestDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
	// Date is either YYYY-MM-DD or an RFC3339 timestamp.
	Date string `json:"date"`
}

type Handler struct {
	service  Service
	location *time.Location
}

func NewHandler(service Service, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{service, location}
}

// ListWorkouts returns every workout, or only those of one day when the "day" query parameter is set.
func (h *Handler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing workouts")

	var workouts []Workout
	var err error
	if dayParam := r.URL.Query().Get("day"); dayParam != "" {
		day, parseErr := rest.ParseDate(dayParam, h.location)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid day", parseErr.Error())
			return
		}
		workouts, err = h.service.ListForDay(r.Context(), day)
	} else {
		workouts, err = h.service.ListAll(r.Context())
	}
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Could not load workouts", "")
		return
	}

	dtos := make([]WorkoutDTO, 0, len(workouts))
	for _, workout := range workouts {
		dtos = append(dtos, ToDTO(workout))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating workout")
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	workout, err := h.service.Create(r.Context(), draft)
	if err != nil {
		h.writeServiceError(w, err, "Could not save workout")
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ToDTO(workout))
}

func (h *Handler) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating workout")
	id, ok := workoutId(w, r)
	if !ok {
		return
	}
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	existing, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Could not save workout")
		return
	}
	updated, err := h.service.Update(r.Context(), existing, draft)
	if err != nil {
		h.writeServiceError(w, err, "Could not save workout")
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

func (h *Handler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting workout")
	id, ok := workoutId(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "Could not delete workout")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeDraft(w http.ResponseWriter, r *http.Request) (Draft, bool) {
	var request WorkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return Draft{}, false
	}
	if request.Date == "" {
		rest.WriteError(w, http.StatusBadRequest, "Invalid workout", (&ValidationError{Field: "date", Reason: "is required"}).Error())
		return Draft{}, false
	}
	date, err := rest.ParseDate(request.Date, h.location)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid workout", err.Error())
		return Draft{}, false
	}
	return Draft{
		Title:       request.Title,
		Description: request.Description,
		Rating:      request.Rating,
		Date:        date,
	}, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, failureMessage string) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		rest.WriteError(w, http.StatusBadRequest, "Invalid workout", validationErr.Error())
	case errors.Is(err, ErrWorkoutNotFound):
		rest.WriteError(w, http.StatusNotFound, "Workout not found", "")
	default:
		rest.WriteError(w, http.StatusInternalServerError, failureMessage, "")
	}
}

func workoutId(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid workout id", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func ToDTO(workout Workout) WorkoutDTO {
	return WorkoutDTO{
		Id:          workout.Id.String(),
		Title:       workout.Title,
		Description: workout.Description,
		Rating:      workout.Rating,
		Date:        workout.Date,
	}
}

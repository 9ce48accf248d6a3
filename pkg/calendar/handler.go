package calendar

import (
	"net/http"
	"strconv"
	"time"

	"github.com/caley/caley/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CellDTO struct {
	Date         *string `json:"date"`
	WorkoutCount int     `json:"workoutCount"`
	Style        string  `json:"style"`
	Intensity    float64 `json:"intensity"`
}

type WeekDTO struct {
	Week  string    `json:"week"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Count int       `json:"count"`
}

type MonthViewDTO struct {
	Title            string    `json:"title"`
	Month            string    `json:"month"`
	Weekdays         []string  `json:"weekdays"`
	Cells            []CellDTO `json:"cells"`
	Week             string    `json:"week"`
	WorkoutsThisWeek int       `json:"workoutsThisWeek"`
	Summary          string    `json:"summary"`
}

type DayEntryDTO struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rating      int       `json:"rating"`
	Date        time.Time `json:"date"`
}

type DayViewDTO struct {
	Date     string        `json:"date"`
	Heading  string        `json:"heading"`
	Workouts []DayEntryDTO `json:"workouts"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetMonth returns the month grid for the "date" query parameter (default today) shifted by "shift" months.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting month view")
	location := h.service.Calendar().location()

	var reference time.Time
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, err := rest.ParseDate(dateParam, location)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
			return
		}
		reference = date
	}
	shift := 0
	if shiftParam := r.URL.Query().Get("shift"); shiftParam != "" {
		value, err := strconv.Atoi(shiftParam)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid shift", err.Error())
			return
		}
		shift = value
	}

	view, err := h.service.GetMonthView(r.Context(), reference, shift)
	if err != nil {
		log.Errorf("failed to build month view: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Could not load calendar", "")
		return
	}
	rest.WriteJSON(w, http.StatusOK, MonthViewToDTO(view))
}

func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting day view")
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		rest.WriteError(w, http.StatusBadRequest, "Missing date", "")
		return
	}
	day, err := rest.ParseDate(dateParam, h.service.Calendar().location())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}

	view, err := h.service.GetDayView(r.Context(), day)
	if err != nil {
		log.Errorf("failed to build day view: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Could not load workouts", "")
		return
	}
	rest.WriteJSON(w, http.StatusOK, DayViewToDTO(view))
}

func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting week summary")
	summary, err := h.service.GetWeekSummary(r.Context())
	if err != nil {
		log.Errorf("failed to count workouts of the week: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Could not load workouts", "")
		return
	}
	rest.WriteJSON(w, http.StatusOK, WeekDTO{
		Week:  summary.Week.Number.String(),
		Start: summary.Week.Start,
		End:   summary.Week.End,
		Count: summary.Count,
	})
}

func MonthViewToDTO(view MonthView) MonthViewDTO {
	cells := make([]CellDTO, 0, len(view.Cells))
	for _, cell := range view.Cells {
		dto := CellDTO{
			WorkoutCount: cell.WorkoutCount,
			Style:        string(cell.Style()),
			Intensity:    cell.Intensity(),
		}
		if !cell.IsPlaceholder() {
			date := cell.Date.Format(time.DateOnly)
			dto.Date = &date
		}
		cells = append(cells, dto)
	}
	return MonthViewDTO{
		Title:            view.Title,
		Month:            view.Month.Format("2006-01"),
		Weekdays:         view.Weekdays,
		Cells:            cells,
		Week:             view.Week.String(),
		WorkoutsThisWeek: view.WorkoutsThisWeek,
		Summary:          view.WeekSummary(),
	}
}

func DayViewToDTO(view DayView) DayViewDTO {
	entries := make([]DayEntryDTO, 0, len(view.Workouts))
	for _, entry := range view.Workouts {
		entries = append(entries, DayEntryDTO{
			Id:          entry.Id.String(),
			Title:       entry.Title,
			Description: entry.Description,
			Rating:      entry.Rating,
			Date:        entry.Date,
		})
	}
	return DayViewDTO{
		Date:     view.Date.Format(time.DateOnly),
		Heading:  view.Heading,
		Workouts: entries,
	}
}

package app

import (
	"fmt"

	"github.com/caley/caley/internal/config"
	"github.com/caley/caley/internal/event_bus"
	"github.com/caley/caley/internal/metrics"
	"github.com/caley/caley/internal/utils"
	"github.com/caley/caley/pkg/calendar"
	"github.com/caley/caley/pkg/workout"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Calendar calendar.Calendar
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	// Metrics and MetricsRegistry are nil when metrics are disabled.
	Metrics         *metrics.Manager
	MetricsRegistry *prometheus.Registry

	WorkoutRepository workout.Repository
	WorkoutService    *workout.ServiceImpl
	WorkoutHandler    *workout.Handler

	CalendarService *calendar.ServiceImpl
	CalendarHandler *calendar.Handler
	TextRenderer    *calendar.TextRenderer
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repo workout.Repository, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	cal, err := calendar.NewCalendar(cfg.Calendar.Timezone, cfg.Calendar.WeekFirstDay)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar configuration: %w", err)
	}
	deps.Calendar = cal
	deps.Clock = utils.SystemClock{Location: cal.Location}
	deps.EventBus = event_bus.NewEventBus()

	if cfg.Metrics.Enabled {
		deps.MetricsRegistry = prometheus.NewRegistry()
		deps.MetricsRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		deps.Metrics = metrics.NewManager("caley", "server", deps.MetricsRegistry)
	}
	subscribeWorkoutEvents(deps.EventBus, deps.Metrics)

	deps.WorkoutRepository = repo
	deps.WorkoutService = workout.NewService(repo, cal.Location, deps.EventBus, deps.Metrics)
	deps.WorkoutHandler = workout.NewHandler(deps.WorkoutService, cal.Location)

	deps.CalendarService = calendar.NewService(deps.WorkoutService, cal, deps.Clock)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)
	deps.TextRenderer = calendar.NewTextRenderer()

	return deps, nil
}

func subscribeWorkoutEvents(bus *event_bus.EventBus, metricsManager *metrics.Manager) {
	event_bus.SubscribeWorkoutChanges(bus, func(e event_bus.EventT[event_bus.WorkoutChanged]) error {
		kind := event_bus.WorkoutKind(e.Type)
		if e.Data.Moved() {
			log.Infof("workout %s %s (%s, was %s)", e.Data.Id, kind,
				e.Data.Date.Format("2006-01-02"), e.Data.PreviousDate.Format("2006-01-02"))
		} else {
			log.Infof("workout %s %s (%s)", e.Data.Id, kind, e.Data.Date.Format("2006-01-02"))
		}
		if metricsManager != nil {
			metricsManager.CounterWorkoutChanges.WithLabelValues(kind).Inc()
		}
		return nil
	})
}

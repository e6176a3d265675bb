package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// MetricLogEvents is the fully qualified name of the log event counter.
const MetricLogEvents = "reviews_log_events_total"

var (
	logEvents     *prometheus.CounterVec //nolint:gochecknoglobals
	logEventsOnce sync.Once              //nolint:gochecknoglobals
)

// levelHook feeds every written log event into the per level counter.
type levelHook struct {
	events *prometheus.CounterVec
}

func (h levelHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.NoLevel || level == zerolog.Disabled {
		return
	}

	h.events.WithLabelValues(level.String()).Inc()
}

// newLevelHook registers the counter on first use. The service label is
// fixed by the first Init, later calls reuse the registered vector.
func newLevelHook(service string) levelHook {
	logEventsOnce.Do(func() {
		logEvents = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "reviews",
				Name:        "log_events_total",
				Help:        "Log events written by the reviews service, per level.",
				ConstLabels: prometheus.Labels{"service": service},
			},
			[]string{"level"},
		)
	})

	return levelHook{events: logEvents}
}

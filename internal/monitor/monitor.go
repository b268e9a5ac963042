package monitor

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/service"
)

// Metrics counts room lifecycle events. It implements service.Notifier so it
// can be fanned out next to the websocket hub without the core knowing about
// Prometheus.
type Metrics struct {
	RoomEvents *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		RoomEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_events_total",
			Help:      "Total number of room lifecycle events by type",
		}, []string{"type"}),
	}

	prometheus.MustRegister(m.RoomEvents)

	return m
}

func (m *Metrics) Notify(_ string, event service.Event) {
	m.RoomEvents.WithLabelValues(string(event.Type)).Inc()
}

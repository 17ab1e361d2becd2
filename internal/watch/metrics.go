package watch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the watcher. Registration is the caller's choice;
// a nil *Metrics disables instrumentation entirely.
type Metrics struct {
	messages   prometheus.Counter
	reconnects prometheus.Counter
	polls      prometheus.Counter
	connected  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		messages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_watch_messages_total",
			Help: "Notifications received over the live channel.",
		}),
		reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_watch_reconnects_total",
			Help: "Reconnect attempts after a dropped connection.",
		}),
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_watch_polls_total",
			Help: "Full refetches in polling fallback mode.",
		}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "backoffice_watch_connected",
			Help: "1 while the websocket is open, 0 otherwise.",
		}),
	}

	reg.MustRegister(m.messages, m.reconnects, m.polls, m.connected)

	return m
}

func (m *Metrics) messageReceived() {
	if m != nil {
		m.messages.Inc()
	}
}

func (m *Metrics) reconnectAttempted() {
	if m != nil {
		m.reconnects.Inc()
	}
}

func (m *Metrics) polled() {
	if m != nil {
		m.polls.Inc()
	}
}

func (m *Metrics) setConnected(up bool) {
	if m == nil {
		return
	}

	if up {
		m.connected.Set(1)
	} else {
		m.connected.Set(0)
	}
}

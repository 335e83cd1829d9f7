package channel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	messageReceivedCounter     *prometheus.CounterVec
	messageParseFailureCounter prometheus.Counter
	reconnectAttemptCounter    prometheus.Counter
	droppedSendCounter         prometheus.Counter
	connectionStateGauge       prometheus.Gauge
}

func NewMetrics() *Metrics {
	metrics := new(Metrics)

	metrics.messageReceivedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "merchantplus_console_channel_message_received_count",
		Help: "The number of inbound messages received per message type",
	}, []string{"type"})

	metrics.messageParseFailureCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "merchantplus_console_channel_message_parse_failure_count",
		Help: "The number of inbound frames dropped due to parse failures",
	})

	metrics.reconnectAttemptCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "merchantplus_console_channel_reconnect_attempt_count",
		Help: "The number of reconnect attempts scheduled",
	})

	metrics.droppedSendCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "merchantplus_console_channel_dropped_send_count",
		Help: "The number of outbound messages dropped while the connection was not open",
	})

	metrics.connectionStateGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "merchantplus_console_channel_connection_open",
		Help: "Whether the event channel connection is currently open",
	})

	return metrics
}

var (
	metrics = NewMetrics()
)

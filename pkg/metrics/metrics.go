package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	PlanRequests  *prometheus.CounterVec // result label: direct|transfer|no_route|no_candidate|invalid|error
	PlanDuration  prometheus.Histogram
	PlanTransfers prometheus.Histogram

	VehiclePositionsUpdated prometheus.Counter
	VehicleFeedErrors       prometheus.Counter

	ChatClients  prometheus.Gauge
	ChatMessages prometheus.Counter
}

var Default = NewCollector()

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		PlanRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transitline_planner_requests_total",
			Help: "Route planning requests by result.",
		}, []string{"result"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transitline_planner_duration_seconds",
			Help:    "Time taken to plan a route including loading lines.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		PlanTransfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transitline_planner_transfers",
			Help:    "Number of transfers in returned itineraries.",
			Buckets: prometheus.LinearBuckets(0, 1, 8),
		}),
		VehiclePositionsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitline_vehicle_positions_updated_total",
			Help: "Vehicle positions written from realtime feeds.",
		}),
		VehicleFeedErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitline_vehicle_feed_errors_total",
			Help: "Failed realtime feed fetches.",
		}),
		ChatClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transitline_chat_clients",
			Help: "Currently connected chat clients.",
		}),
		ChatMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitline_chat_messages_total",
			Help: "Chat messages broadcast.",
		}),
	}

	reg.MustRegister(
		c.PlanRequests, c.PlanDuration, c.PlanTransfers,
		c.VehiclePositionsUpdated, c.VehicleFeedErrors,
		c.ChatClients, c.ChatMessages,
	)

	return c
}

func (c *Collector) ObservePlan(result string, duration time.Duration, transfers int) {
	c.PlanRequests.WithLabelValues(result).Inc()
	c.PlanDuration.Observe(duration.Seconds())

	if transfers >= 0 {
		c.PlanTransfers.Observe(float64(transfers))
	}
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

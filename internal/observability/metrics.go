package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "tarot"

type Metrics struct {
	// DeckOperations counts shuffle, draw and reset calls by outcome.
	DeckOperations *prometheus.CounterVec

	// CardsDrawn counts drawn cards by arcana.
	CardsDrawn *prometheus.CounterVec

	// DeckEmpty counts draws refused because the deck ran out.
	DeckEmpty prometheus.Counter

	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the service metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DeckOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "deck",
				Name:      "operations_total",
				Help:      "Deck operations by kind and result",
			},
			[]string{"op", "result"},
		),
		CardsDrawn: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "cards_drawn_total",
				Help:      "Cards drawn by arcana",
			},
			[]string{"arcana"},
		),
		DeckEmpty: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "deck",
				Name:      "empty_total",
				Help:      "Draws refused because the deck was empty",
			},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"route", "method", "status"},
		),
	}
}

// Middleware records request latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

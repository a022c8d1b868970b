package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Notification outcomes.
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeDropped = "dropped"
)

// Repair request sources.
const (
	SourceAPI    = "api"
	SourceImport = "import"
)

var (
	diagnoses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fixnet_diagnoses_total",
		Help: "Diagnoses served, by category.",
	}, []string{"category"})

	estimates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fixnet_price_estimates_total",
		Help: "Price estimates served, by resolved brand and problem bucket.",
	}, []string{"brand", "bucket"})

	requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fixnet_repair_requests_total",
		Help: "Repair requests stored, by source.",
	}, []string{"source"})

	notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fixnet_notifications_total",
		Help: "Repair request notifications, by outcome.",
	}, []string{"outcome"})

	registerOnce sync.Once
)

// Init registers the collectors with the default registry.
// Recording works without it; values are just not exported.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(diagnoses, estimates, requests, notifications)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func Diagnosis(category string) {
	diagnoses.WithLabelValues(category).Inc()
}

func Estimate(brand, bucket string) {
	estimates.WithLabelValues(brand, bucket).Inc()
}

func RepairRequests(source string, n int) {
	requests.WithLabelValues(source).Add(float64(n))
}

func NotificationOutcome(outcome string) {
	notifications.WithLabelValues(outcome).Inc()
}

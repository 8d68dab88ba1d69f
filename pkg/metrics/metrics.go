package metrics

import (
	"context"
	"net/http"
	"time"

	"fastfix/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates marketplace counters on a dedicated registry so tests
// can build isolated instances.
type Collector struct {
	registry *prometheus.Registry

	bookingsCreated   prometheus.Counter
	jobsAccepted      prometheus.Counter
	acceptConflicts   prometheus.Counter
	jobsCompleted     prometheus.Counter
	bookingsCancelled prometheus.Counter
	walletTopUps      prometheus.Counter
	insufficientFunds prometheus.Counter
	operationDuration *prometheus.HistogramVec
	walletBalance     *prometheus.GaugeVec

	log *logger.Logger
}

func NewCollector(log *logger.Logger) *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		bookingsCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of service requests booked",
		}),
		jobsAccepted: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "jobs_accepted_total",
			Help: "Total number of jobs accepted by technicians",
		}),
		acceptConflicts: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "job_accept_conflicts_total",
			Help: "Accept attempts that lost the claim race",
		}),
		jobsCompleted: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "jobs_completed_total",
			Help: "Total number of jobs marked completed by technicians",
		}),
		bookingsCancelled: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "bookings_cancelled_total",
			Help: "Total number of cancelled bookings",
		}),
		walletTopUps: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "wallet_topups_total",
			Help: "Total number of wallet top-ups",
		}),
		insufficientFunds: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "insufficient_funds_total",
			Help: "Operations rejected for insufficient balance",
		}),
		operationDuration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "marketplace_operation_duration_seconds",
			Help:    "Time taken by lifecycle operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		walletBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "wallet_balance_egp",
			Help: "Current wallet balance per account in EGP",
		}, []string{"account_id", "role"}),
		log: log,
	}
}

func (c *Collector) BookingCreated()    { c.bookingsCreated.Inc() }
func (c *Collector) JobAccepted()       { c.jobsAccepted.Inc() }
func (c *Collector) AcceptConflict()    { c.acceptConflicts.Inc() }
func (c *Collector) JobCompleted()      { c.jobsCompleted.Inc() }
func (c *Collector) BookingCancelled()  { c.bookingsCancelled.Inc() }
func (c *Collector) WalletTopUp()       { c.walletTopUps.Inc() }
func (c *Collector) InsufficientFunds() { c.insufficientFunds.Inc() }

func (c *Collector) ObserveOperation(operation string, duration time.Duration) {
	c.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetWalletBalance reports the balance in EGP. Float precision is fine for
// dashboard purposes; the ledger remains the source of truth.
func (c *Collector) SetWalletBalance(accountID, role string, balancePiasters int64) {
	c.walletBalance.WithLabelValues(accountID, role).Set(float64(balancePiasters) / 100)
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on its own listener so the scrape path bypasses
// the application middleware chain.
func (c *Collector) StartServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		c.log.Info("Starting metrics server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.log.Error("Metrics server failed", "error", err)
		}
	}()

	return server
}

func (c *Collector) Shutdown(ctx context.Context, server *http.Server) {
	if err := server.Shutdown(ctx); err != nil {
		c.log.Error("Metrics server shutdown failed", "error", err)
	}
}

package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tkrause/expense-portal/internal/app"
	"github.com/tkrause/expense-portal/internal/config"
	"github.com/tkrause/expense-portal/internal/domain"
)

// MetricsEventBus is the subset of the message bus used by the metrics server.
type MetricsEventBus interface {
	Subscribe(topic string, fn any) error
}

// MetricsServer exposes prometheus counters for domain events on a separate
// listener. The counters are fed from the message bus, the HTTP handlers do
// not touch prometheus directly.
type MetricsServer struct {
	*http.Server

	expensesCreatedTotal   prometheus.Counter
	expensesDeletedTotal   prometheus.Counter
	statusChangesTotal     *prometheus.CounterVec
	receiptsStoredTotal    prometheus.Counter
	receiptBytesTotal      prometheus.Counter
	categoriesCreatedTotal prometheus.Counter
}

// NewMetricsServer returns a new prometheus server.
func NewMetricsServer(cfg *config.Config, bus MetricsEventBus) (*MetricsServer, error) {
	reg := prometheus.NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	m := &MetricsServer{
		Server: &http.Server{
			Addr:    cfg.Statistics.ListeningAddress,
			Handler: mux,
		},

		expensesCreatedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "expense_portal_expenses_created_total",
			Help: "Number of expense records created.",
		}),
		expensesDeletedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "expense_portal_expenses_deleted_total",
			Help: "Number of expense records deleted.",
		}),
		statusChangesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "expense_portal_expense_status_changes_total",
			Help: "Number of expense status transitions.",
		}, []string{"status"}),
		receiptsStoredTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "expense_portal_receipts_stored_total",
			Help: "Number of receipt files stored.",
		}),
		receiptBytesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "expense_portal_receipt_bytes_total",
			Help: "Total size of stored receipt files in bytes.",
		}),
		categoriesCreatedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "expense_portal_categories_created_total",
			Help: "Number of categories created.",
		}),
	}

	if err := m.connectToMessageBus(bus); err != nil {
		return nil, fmt.Errorf("failed to setup message bus: %w", err)
	}

	return m, nil
}

// Run starts the metrics server. The function blocks until the context is cancelled.
func (m *MetricsServer) Run(ctx context.Context) {
	go func() {
		if err := m.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics service exited", "address", m.Addr, "error", err)
		}
	}()
	slog.Info("started metrics service", "address", m.Addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.Shutdown(shutdownCtx)
}

func (m *MetricsServer) connectToMessageBus(bus MetricsEventBus) error {
	if err := bus.Subscribe(app.TopicExpenseCreated, func(domain.Expense) {
		m.expensesCreatedTotal.Inc()
	}); err != nil {
		return err
	}
	if err := bus.Subscribe(app.TopicExpenseDeleted, func(domain.Expense) {
		m.expensesDeletedTotal.Inc()
	}); err != nil {
		return err
	}
	if err := bus.Subscribe(app.TopicExpenseStatusChanged, func(expense domain.Expense) {
		m.statusChangesTotal.WithLabelValues(string(expense.Status)).Inc()
	}); err != nil {
		return err
	}
	if err := bus.Subscribe(app.TopicReceiptStored, func(receipt domain.Receipt) {
		m.receiptsStoredTotal.Inc()
		m.receiptBytesTotal.Add(float64(receipt.SizeBytes))
	}); err != nil {
		return err
	}
	if err := bus.Subscribe(app.TopicCategoryCreated, func(domain.Category) {
		m.categoriesCreatedTotal.Inc()
	}); err != nil {
		return err
	}

	return nil
}

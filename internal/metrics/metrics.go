package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the prometheus collectors for command execution and table arenas.
// A nil *Metrics records nothing.
type Metrics struct {
	commandsTotal  *prometheus.CounterVec
	rowsInserted   *prometheus.CounterVec
	tableRows      *prometheus.GaugeVec
	tableBytesUsed *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		commandsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arenadb_commands_total",
				Help: "Total number of executed commands",
			},
			[]string{"command", "status"},
		),
		rowsInserted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arenadb_rows_inserted_total",
				Help: "Total number of rows appended per table",
			},
			[]string{"table"},
		),
		tableRows: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "arenadb_table_rows",
				Help: "Number of rows stored per table",
			},
			[]string{"table"},
		),
		tableBytesUsed: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "arenadb_table_bytes_used",
				Help: "Arena bytes used per table",
			},
			[]string{"table"},
		),
	}
}

// RecordCommand counts one command by kind and outcome.
func (m *Metrics) RecordCommand(command string, err error) {
	if m == nil {
		return
	}
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.commandsTotal.WithLabelValues(command, status).Inc()
}

func (m *Metrics) RecordInsert(table string) {
	if m == nil {
		return
	}
	m.rowsInserted.WithLabelValues(table).Inc()
}

// UpdateTableStats publishes a table's current bookkeeping.
func (m *Metrics) UpdateTableStats(table string, rows, bytesUsed int) {
	if m == nil {
		return
	}
	m.tableRows.WithLabelValues(table).Set(float64(rows))
	m.tableBytesUsed.WithLabelValues(table).Set(float64(bytesUsed))
}

// Router serves /metrics from g and a trivial /healthz.
func Router(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

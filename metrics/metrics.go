package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gator_orders_submitted_total",
			Help: "Total number of orders submitted (by context).",
		},
		[]string{"ctx"},
	)

	Signals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gator_signals_total",
			Help: "Open and close signals raised by the Gator strategy.",
		},
		[]string{"symbol", "timeframe", "side", "kind"},
	)

	SpreadRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gator_spread_rejections_total",
			Help: "Entries refused because the spread exceeded max_spread.",
		},
		[]string{"symbol"},
	)

	TicksFiltered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gator_ticks_filtered_total",
			Help: "Ticks dropped by the tick filter.",
		},
		[]string{"symbol", "reason"},
	)

	CatalogRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gator_catalog_records",
			Help: "Parameter records in the loaded catalog per schema.",
		},
		[]string{"schema"},
	)

	EquityGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gator_equity",
			Help: "Current equity of the executor (paper or live).",
		},
	)
)

func init() {
	prometheus.MustRegister(OrdersSubmitted, Signals, SpreadRejections, TicksFiltered, CatalogRecords, EquityGauge)
}

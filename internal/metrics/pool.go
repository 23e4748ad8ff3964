package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "blog"

// RegisterPoolStats exports connection pool gauges for pool.
func RegisterPoolStats(registry prometheus.Registerer, pool *pgxpool.Pool) error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "connections_total",
			Help:      "Number of connections currently in the pool",
		}, func() float64 { return float64(pool.Stat().TotalConns()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "connections_idle",
			Help:      "Number of idle connections in the pool",
		}, func() float64 { return float64(pool.Stat().IdleConns()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "connections_acquired",
			Help:      "Number of connections currently checked out",
		}, func() float64 { return float64(pool.Stat().AcquiredConns()) }),
	}

	for _, g := range gauges {
		if err := registry.Register(g); err != nil {
			return err
		}
	}

	return nil
}

package todo

import "github.com/prometheus/client_golang/prometheus"

// RegisterStoreMetrics exposes the store counters as gauges. Values
// are read live on scrape, so no mutation path needs metric plumbing.
func RegisterStoreMetrics(reg prometheus.Registerer, s *Store) {
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "todo_tasks_total",
			Help: "Number of tasks currently in the store",
		}, func() float64 {
			total, _, _ := s.Counts()
			return float64(total)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "todo_tasks_remaining",
			Help: "Number of tasks not yet completed",
		}, func() float64 {
			_, remaining, _ := s.Counts()
			return float64(remaining)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "todo_tasks_completed",
			Help: "Number of completed tasks",
		}, func() float64 {
			_, _, completed := s.Counts()
			return float64(completed)
		}),
	)
}

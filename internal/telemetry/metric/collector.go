package metric

import "github.com/prometheus/client_golang/prometheus"

// KeyspaceCollector reports the number of stored keys at scrape time.
type KeyspaceCollector struct {
	count func() int
	desc  *prometheus.Desc
}

// NewKeyspaceCollector creates a collector that calls count on every scrape.
func NewKeyspaceCollector(count func() int) *KeyspaceCollector {
	return &KeyspaceCollector{
		count: count,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "keys"),
			"Number of keys currently stored.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *KeyspaceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *KeyspaceCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.count()))
}

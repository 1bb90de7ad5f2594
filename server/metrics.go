package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes request statistics and vehicle availability
type Collector struct {
	site Site

	requestsToday *prometheus.Desc
	invokesToday  *prometheus.Desc
	requestsTotal *prometheus.Desc
	invokesTotal  *prometheus.Desc
	available     *prometheus.Desc
	updated       *prometheus.Desc
	vehicles      *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for the site
func NewCollector(site Site) *Collector {
	return &Collector{
		site: site,
		requestsToday: prometheus.NewDesc(
			"zeekr_api_requests_today",
			"API requests since local midnight",
			nil, nil,
		),
		invokesToday: prometheus.NewDesc(
			"zeekr_api_invokes_today",
			"Remote control commands since local midnight",
			nil, nil,
		),
		requestsTotal: prometheus.NewDesc(
			"zeekr_api_requests_total",
			"API requests",
			nil, nil,
		),
		invokesTotal: prometheus.NewDesc(
			"zeekr_api_invokes_total",
			"Remote control commands",
			nil, nil,
		),
		available: prometheus.NewDesc(
			"zeekr_vehicle_data_available",
			"Whether vehicle data is current (1=yes, 0=no)",
			nil, nil,
		),
		updated: prometheus.NewDesc(
			"zeekr_vehicle_data_updated_timestamp_seconds",
			"Time of the last successful status fetch",
			nil, nil,
		),
		vehicles: prometheus.NewDesc(
			"zeekr_vehicles",
			"Number of vehicles",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.requestsToday
	ch <- c.invokesToday
	ch <- c.requestsTotal
	ch <- c.invokesTotal
	ch <- c.available
	ch <- c.updated
	ch <- c.vehicles
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	counters := c.site.Stats().Counters()

	ch <- prometheus.MustNewConstMetric(c.requestsToday, prometheus.GaugeValue, float64(counters.RequestsToday))
	ch <- prometheus.MustNewConstMetric(c.invokesToday, prometheus.GaugeValue, float64(counters.InvokesToday))
	ch <- prometheus.MustNewConstMetric(c.requestsTotal, prometheus.CounterValue, float64(counters.RequestsTotal))
	ch <- prometheus.MustNewConstMetric(c.invokesTotal, prometheus.CounterValue, float64(counters.InvokesTotal))

	var available float64
	if c.site.Available() {
		available = 1
	}
	ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, available)

	if ts := c.site.Updated(); !ts.IsZero() {
		ch <- prometheus.MustNewConstMetric(c.updated, prometheus.GaugeValue, float64(ts.Unix()))
	}

	ch <- prometheus.MustNewConstMetric(c.vehicles, prometheus.GaugeValue, float64(len(c.site.Store().VINs())))
}

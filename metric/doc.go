// Package metric exports refget service and HTTP metrics to Prometheus.
package metric

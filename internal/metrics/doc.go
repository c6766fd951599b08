// Package metrics records counters for one analyzer run and writes them in
// the Prometheus text exposition format, suitable for node_exporter's
// textfile collector.
package metrics

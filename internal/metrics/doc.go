// Package metrics provides build metrics for docnav.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder registers its collectors
// on a caller-supplied registry, which the build can export as a node
// exporter textfile once the run completes:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	// ... run the build with recorder ...
//	_ = recorder.WriteTextfile("/var/lib/node_exporter/docnav.prom")
package metrics

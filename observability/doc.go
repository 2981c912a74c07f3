// Package observability provides OpenTelemetry tracing and metrics for
// seqkit pipelines.
//
// Tracing and metrics export over OTLP HTTP:
//
//	shutdown, err := observability.Init(ctx, observability.ServiceInfo{Name: "seqstat"}, cfg.Observability)
//	defer shutdown(ctx)
//
// Instrumenting a sequence records one span and one set of measurements
// per enumeration:
//
//	metrics, err := observability.NewMetrics(observability.Meter("seqstat"))
//	values = observability.Instrument(values, "input", metrics)
//
// The span "seq.enumerate" starts on the first pull and ends when the
// enumeration is exhausted, fails or is closed early.
package observability

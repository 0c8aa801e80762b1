// Package observability provides OpenTelemetry tracing and metrics for the
// registry lifecycle.
//
// Without an SDK provider installed the global otel providers are no-ops, so
// instrumented code pays nothing. Applications opt in with:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-app"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-app"))
//	defer mp.Shutdown(ctx)
//
// The di package records dime.mount.total, dime.mount.duration,
// dime.providers.installed and dime.resolve.total, and opens a dime.mount
// span around every mount.
package observability

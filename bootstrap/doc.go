// Package bootstrap wires the ambient stack of a seqkit command: config,
// logging, limits and telemetry.
//
//	app, err := bootstrap.New(ctx, "seqstat", bootstrap.WithConfigOptions(config.WithConfigFile(path)))
//	if err != nil { ... }
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    values := bootstrap.Instrument(app, source, "input")
//	    ...
//	})
//
// RunTask cancels the task context on SIGINT or SIGTERM and runs the stop
// hooks, telemetry flush included, once the task returns.
package bootstrap

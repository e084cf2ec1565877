// Package bootstrap orchestrates the lifecycle of a pipeline engine
// application: typed configuration loading, logger initialization,
// executor construction, declarative pipeline loading, and
// startup/shutdown hooks.
//
// # Quick Start
//
//	var cfg MyConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//	app, err := bootstrap.NewApp[MyItem](&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.RunTask(ctx, func(ctx context.Context) error {
//	    _, err := app.RunPipeline(ctx, "ingest")
//	    return err
//	})
package bootstrap

// Package telemetry provides structured logging for stacklint.
//
// Logging is built on zerolog. Components obtain child loggers that carry
// a component field, and enrich them with linting context as they work:
//
//	logger := base.NewComponentLogger("lint")
//	logger = logger.WithFile("network.tf").WithResource("aws_subnet", "public")
//	logger.Warn("skipping positioning check due to user overriding tag")
//
// Loggers travel through context.Context so library entry points can pick
// up the caller's logger without global state. FromContext returns a usable
// default when nothing was attached, which keeps the library functional in
// test suites that do not configure logging.
package telemetry

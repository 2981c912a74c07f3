// Package logger provides structured logging for seqkit using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. The seq package logs
// through the "seq" component at debug level whenever a buffering operator
// materializes its source.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("seq")
//	log.Debug("materialized", logger.Fields(logger.FieldOperator, "OrderBy", logger.FieldCount, 42))
package logger

// Package logging provides structured logging for stepwise runs.
//
// It wraps Go's log/slog to write JSON lines, either to stderr or to a
// stepwise.log file inside a configured directory. Child loggers carry
// persistent attributes so every entry from one solve can be correlated.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	runLogger := logger.WithRun(runID).WithInput("input.txt")
//	runLogger.WithScheduler("team").Info("run complete", "ticks", 15)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"run complete","run_id":"...","input":"input.txt","scheduler":"team","ticks":15}
//
// # Log Rotation
//
// Watch mode can keep a process solving for a long time. NewLoggerWithRotation
// moves stepwise.log aside to stepwise.log.1 once it passes MaxSizeMB and
// keeps at most MaxBackups older files.
//
// # Thread Safety
//
// Logger and RotatingWriter are safe for concurrent use; child loggers
// created via With* share the parent's writer.
package logging

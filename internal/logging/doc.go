// Package logging provides structured logging for the grid and its
// terminal viewer.
//
// It wraps Go's log/slog to write JSON lines. Cell controllers never print;
// recoverable problems such as a failed class-rule expression or a template
// that could not be loaded are reported as warnings through a [Logger]
// tagged with the cell coordinates.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	cellLog := logger.WithComponent("cell").WithCell("row-7", "price")
//	cellLog.Warn("class rule failed", "class", "cg-negative", "error", err)
//
// Output:
//
//	{"time":"...","level":"WARN","msg":"class rule failed","component":"cell","row_id":"row-7","col_id":"price","class":"cg-negative","error":"..."}
//
// While the terminal viewer owns the screen, logs must go to a file; an
// empty directory sends them to stderr, which is only suitable for the
// non-interactive commands.
//
// # Testing
//
// Use [NopLogger] to discard output, or [New] with a bytes.Buffer to assert
// on what was logged.
package logging

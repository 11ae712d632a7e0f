// Package logging provides structured logging for devdeck using slog.
//
// The package supports text and JSON output formats, verbosity-derived log
// levels (including a Trace level below Debug), carrying a logger on a
// context, and helpers for testing. The text handler colorizes output on a
// TTY and masks credential-looking attribute values.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// # Testing
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//	}
package logging

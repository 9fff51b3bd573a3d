// Package logger provides structured logging utilities built on Go's standard slog package:
// a small set of construction options and attribute helpers shared by the delivery providers.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/mailer/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("mailer"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("mailer"))
//
//	// Custom configuration
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("region", "eu-west-1")),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for zero inputs, which slog drops, so they
// can be passed unconditionally:
//
//	log.Error("send failed",
//		logger.Provider("ses"),
//		logger.Error(err),
//		logger.ErrorCode(code),
//		logger.Duration(elapsed),
//	)
//
//	log.Debug("message accepted",
//		logger.Provider("ses"),
//		logger.MessageID(id),
//		logger.Recipients(3),
//	)
//
// Recipient addresses and message bodies are never passed to the logger.
package logger

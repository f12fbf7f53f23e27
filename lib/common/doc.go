// Package common contains the pieces shared by the dcoll cli and the library packages:
// the cli configuration (Config), the logger factory for the dragonboat logger facade
// and small helpers.
//
// Logging:
//
//	All packages log through "github.com/lni/dragonboat/v4/logger". InitLoggers installs
//	a factory producing loggers with the format "LEVEL | package | message" and sets the
//	level of every logger listed in LoggerNames. Until InitLoggers is called the
//	dragonboat default logger is used.
package common

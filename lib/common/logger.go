package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/lni/dragonboat/v4/logger"
)

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// levelTags maps the dragonboat levels to the tag printed in front of a message
var levelTags = map[logger.LogLevel]string{
	logger.CRITICAL: "CRIT",
	logger.ERROR:    "ERROR",
	logger.WARNING:  "WARN",
	logger.INFO:     "INFO",
	logger.DEBUG:    "DEBUG",
}

// dCollLogger writes "LEVEL | package | message" lines to a standard logger
type dCollLogger struct {
	pkg   string
	level logger.LogLevel
	out   *log.Logger
}

func (l *dCollLogger) SetLevel(level logger.LogLevel) { l.level = level }

func (l *dCollLogger) Debugf(format string, args ...interface{}) { l.logf(logger.DEBUG, format, args) }

func (l *dCollLogger) Infof(format string, args ...interface{}) { l.logf(logger.INFO, format, args) }

func (l *dCollLogger) Warningf(format string, args ...interface{}) {
	l.logf(logger.WARNING, format, args)
}

func (l *dCollLogger) Errorf(format string, args ...interface{}) { l.logf(logger.ERROR, format, args) }

// Panicf always panics, the message is logged first if the level allows it
func (l *dCollLogger) Panicf(format string, args ...interface{}) {
	l.logf(logger.CRITICAL, format, args)
	panic(fmt.Sprintf(format, args...))
}

// logf drops messages above the configured level
func (l *dCollLogger) logf(level logger.LogLevel, format string, args []interface{}) {
	if level > l.level {
		return
	}
	l.out.Printf("%-5s | %-10s | %s", levelTags[level], l.pkg, fmt.Sprintf(format, args...))
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// logOutput is where all loggers write to. The cli writes documents to stdout,
// so logs go to stderr.
var logOutput io.Writer = os.Stderr

// CreateLogger implements the dragonboat logger.Factory
func CreateLogger(pkgName string) logger.ILogger {
	return &dCollLogger{
		pkg:   pkgName,
		level: logger.WARNING,
		out:   log.New(logOutput, "", log.Ldate|log.Ltime),
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.ERROR, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// LoggerNames lists the loggers used by the dColl packages
var LoggerNames = []string{"collection", "store", "registry", "serializer", "cmd"}

// installFactory guards logger.SetLoggerFactory, dragonboat panics when it is set twice
var installFactory sync.Once

// InitLoggers installs the custom logger factory (once per process) and sets the
// level of all dColl loggers. It may be called again to change the level.
func InitLoggers(config Config) error {
	level, err := ParseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}

	installFactory.Do(func() { logger.SetLoggerFactory(CreateLogger) })

	for _, name := range LoggerNames {
		logger.GetLogger(name).SetLevel(level)
	}
	return nil
}

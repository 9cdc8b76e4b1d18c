// internal/utils/logger.go
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"qo100-console/internal/config"
)

// LoggerManager manages application logging
type LoggerManager struct {
	logger *zap.Logger
	config *config.LoggingConfig
}

// NewLogger creates a new logger instance based on configuration
func NewLogger(cfg *config.LoggingConfig) (*zap.Logger, error) {
	manager := &LoggerManager{
		config: cfg,
	}

	logger, err := manager.createLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	manager.logger = logger
	return logger, nil
}

// createLogger creates the zap logger with proper configuration
func (lm *LoggerManager) createLogger() (*zap.Logger, error) {
	// Create encoder configuration
	encoderConfig := lm.getEncoderConfig()

	// Create encoder
	var encoder zapcore.Encoder
	switch lm.config.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	// Create write syncer
	writeSyncer, err := lm.getWriteSyncer()
	if err != nil {
		return nil, fmt.Errorf("failed to create write syncer: %w", err)
	}

	// Get log level
	level, err := lm.getLogLevel()
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	// Create core
	core := zapcore.NewCore(encoder, writeSyncer, level)

	// Create logger with options
	logger := zap.New(core, lm.getLoggerOptions()...)

	return logger, nil
}

// getEncoderConfig returns encoder configuration based on format
func (lm *LoggerManager) getEncoderConfig() zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()

	// Customize time format
	config.TimeKey = "timestamp"
	config.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)

	// Customize level format
	config.LevelKey = "level"
	config.EncodeLevel = zapcore.LowercaseLevelEncoder

	// Customize caller format
	config.CallerKey = "caller"
	config.EncodeCaller = zapcore.ShortCallerEncoder

	// Message key
	config.MessageKey = "message"

	// Stack trace key
	config.StacktraceKey = "stacktrace"

	// Console format customizations
	if lm.config.Format == "console" {
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	}

	return config
}

// getWriteSyncer returns write syncer based on output configuration
func (lm *LoggerManager) getWriteSyncer() (zapcore.WriteSyncer, error) {
	switch lm.config.Output {
	case "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	default:
		// File output with rotation
		if lm.config.Output == "" {
			lm.config.Output = "./logs/qo100-console.log"
		}

		// Ensure log directory exists
		logDir := filepath.Dir(lm.config.Output)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		// Create lumberjack logger for rotation
		lumber := &lumberjack.Logger{
			Filename:   lm.config.Output,
			MaxSize:    lm.config.MaxSize, // MB
			MaxBackups: lm.config.MaxBackups,
			MaxAge:     lm.config.MaxAge, // days
			Compress:   lm.config.Compress,
		}

		return zapcore.AddSync(lumber), nil
	}
}

// getLogLevel parses and returns log level
func (lm *LoggerManager) getLogLevel() (zapcore.Level, error) {
	switch lm.config.Level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", lm.config.Level)
	}
}

// getLoggerOptions returns logger options
func (lm *LoggerManager) getLoggerOptions() []zap.Option {
	options := []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	}

	// Add stack trace for error level and above
	options = append(options, zap.AddStacktrace(zapcore.ErrorLevel))

	return options
}

// LinkLogger wraps zap.Logger with serial link context
type LinkLogger struct {
	*zap.Logger
	port string
}

// NewLinkLogger creates a logger scoped to one serial port
func NewLinkLogger(baseLogger *zap.Logger, port string, baudRate int) *LinkLogger {
	logger := baseLogger.With(
		zap.String("port", port),
		zap.Int("baud_rate", baudRate),
		zap.String("component", "link"),
	)

	return &LinkLogger{
		Logger: logger,
		port:   port,
	}
}

// LogConnection logs connect and disconnect events
func (ll *LinkLogger) LogConnection(action string, success bool, err error) {
	fields := []zap.Field{
		zap.String("action", action),
		zap.Bool("success", success),
	}

	if err != nil {
		fields = append(fields, zap.Error(err))
		ll.Error("Serial link event", fields...)
	} else {
		ll.Info("Serial link event", fields...)
	}
}

// LogCommand logs a dispatched command line
func (ll *LinkLogger) LogCommand(command string, err error) {
	if err != nil {
		ll.Error("Command send failed",
			zap.String("command", command),
			zap.Error(err),
		)
		return
	}
	ll.Debug("Command sent", zap.String("command", command))
}

// SessionLogger provides structured logging for one operator session
type SessionLogger struct {
	logger    *zap.Logger
	sessionID string
	startTime time.Time
}

// NewSessionLogger creates a session-specific logger
func NewSessionLogger(baseLogger *zap.Logger, sessionID, port string) *SessionLogger {
	logger := baseLogger.With(
		zap.String("session_id", sessionID),
		zap.String("port", port),
		zap.String("component", "session"),
	)

	return &SessionLogger{
		logger:    logger,
		sessionID: sessionID,
		startTime: time.Now(),
	}
}

// Opened logs session start
func (sl *SessionLogger) Opened(variant string, baudRate int) {
	sl.logger.Info("Session opened",
		zap.String("variant", variant),
		zap.Int("baud_rate", baudRate),
		zap.Time("start_time", sl.startTime),
	)
}

// SyncCompleted logs a full settings push to the transmitter
func (sl *SessionLogger) SyncCompleted(commands int) {
	sl.logger.Info("Settings sync completed",
		zap.Int("commands", commands),
		zap.Duration("elapsed", time.Since(sl.startTime)),
	)
}

// Closed logs session end with its close reason
func (sl *SessionLogger) Closed(reason string) {
	sl.logger.Info("Session closed",
		zap.String("reason", reason),
		zap.Duration("uptime", time.Since(sl.startTime)),
	)
}

// Failed logs an aborted session
func (sl *SessionLogger) Failed(err error) {
	sl.logger.Error("Session failed",
		zap.Duration("uptime", time.Since(sl.startTime)),
		zap.Error(err),
	)
}

// ServiceLogger provides service-level logging functionality
type ServiceLogger struct {
	*zap.Logger
	serviceName string
}

// NewServiceLogger creates a service-specific logger
func NewServiceLogger(baseLogger *zap.Logger, serviceName string) *ServiceLogger {
	logger := baseLogger.With(
		zap.String("service", serviceName),
		zap.String("component", "service"),
	)

	return &ServiceLogger{
		Logger:      logger,
		serviceName: serviceName,
	}
}

// LogServiceStart logs service startup
func (sl *ServiceLogger) LogServiceStart(version string, config interface{}) {
	sl.Info("Service starting",
		zap.String("version", version),
		zap.Any("config", config),
	)
}

// LogServiceStop logs service shutdown
func (sl *ServiceLogger) LogServiceStop(reason string) {
	sl.Info("Service stopping",
		zap.String("reason", reason),
	)
}

// LogAPIRequest logs HTTP API requests
func (sl *ServiceLogger) LogAPIRequest(method, path, userAgent, clientIP string, statusCode int, duration time.Duration) {
	level := zapcore.InfoLevel
	if statusCode >= 400 {
		level = zapcore.WarnLevel
	}
	if statusCode >= 500 {
		level = zapcore.ErrorLevel
	}

	if ce := sl.Check(level, "API request"); ce != nil {
		ce.Write(
			zap.String("method", method),
			zap.String("path", path),
			zap.String("user_agent", userAgent),
			zap.String("client_ip", clientIP),
			zap.Int("status_code", statusCode),
			zap.Duration("duration", duration),
		)
	}
}

// LogDatabaseQuery logs database queries (for debugging)
func (sl *ServiceLogger) LogDatabaseQuery(query string, args []interface{}, duration time.Duration, err error) {
	fields := []zap.Field{
		zap.String("query", query),
		zap.Any("args", args),
		zap.Duration("duration", duration),
	}

	if err != nil {
		fields = append(fields, zap.Error(err))
		sl.Error("Database query failed", fields...)
	} else {
		sl.Debug("Database query executed", fields...)
	}
}

// AuditLogger records the operator actions that change transmitter state
type AuditLogger struct {
	logger *zap.Logger
}

// NewAuditLogger creates an audit-specific logger
func NewAuditLogger(baseLogger *zap.Logger) *AuditLogger {
	logger := baseLogger.With(
		zap.String("component", "audit"),
	)

	return &AuditLogger{
		logger: logger,
	}
}

// LogSessionOpened logs a new transmitter session
func (al *AuditLogger) LogSessionOpened(sessionID, port string, baudRate int, variant string) {
	al.logger.Info("Transmitter session opened",
		zap.String("session_id", sessionID),
		zap.String("port", port),
		zap.Int("baud_rate", baudRate),
		zap.String("variant", variant),
		zap.String("action", "open_session"),
	)
}

// LogSessionClosed logs the end of a transmitter session
func (al *AuditLogger) LogSessionClosed(sessionID, reason string) {
	al.logger.Info("Transmitter session closed",
		zap.String("session_id", sessionID),
		zap.String("reason", reason),
		zap.String("action", "close_session"),
	)
}

// LogParamChange logs a DSP parameter update
func (al *AuditLogger) LogParamChange(sessionID, param, value, command string) {
	al.logger.Info("Parameter changed",
		zap.String("session_id", sessionID),
		zap.String("param", param),
		zap.String("value", value),
		zap.String("command", command),
		zap.String("action", "set_param"),
	)
}

// LogFrequencyChange logs an uplink retune
func (al *AuditLogger) LogFrequencyChange(sessionID string, uplinkHz, downlinkHz int64) {
	al.logger.Info("Frequency changed",
		zap.String("session_id", sessionID),
		zap.Int64("uplink_hz", uplinkHz),
		zap.Int64("downlink_hz", downlinkHz),
		zap.String("action", "set_frequency"),
	)
}

// LogCarrierToggle logs test carrier on and off switches
func (al *AuditLogger) LogCarrierToggle(sessionID string, enabled bool) {
	al.logger.Info("Test carrier toggled",
		zap.String("session_id", sessionID),
		zap.Bool("enabled", enabled),
		zap.String("action", "carrier_toggle"),
	)
}

// Helper functions for common logging patterns

// LoggerWithRequestID adds request ID to logger
func LoggerWithRequestID(logger *zap.Logger, requestID string) *zap.Logger {
	return logger.With(zap.String("request_id", requestID))
}

// LogPanic logs and recovers from panics
func LogPanic(logger *zap.Logger) {
	if r := recover(); r != nil {
		logger.Fatal("Application panic",
			zap.Any("panic", r),
			zap.Stack("stacktrace"),
		)
	}
}

func CloseLogger(logger *zap.Logger) error {
	return logger.Sync()
}

package log

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zap.Field

const (
	LogOptionConsole = "console"
	LogOptionJSON    = "json"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

type options struct {
	appName    string
	env        string
	logOption  string
	level      zapcore.Level
	caller     bool
	callerSkip int
}

type Option func(*options)

func WithLogEnvOption(env string) Option {
	return func(o *options) { o.env = env }
}

func WithLogToOption(logOption string) Option {
	return func(o *options) { o.logOption = logOption }
}

func WithCaller(enabled bool) Option {
	return func(o *options) { o.caller = enabled }
}

func AddCallerSkip(skip int) Option {
	return func(o *options) { o.callerSkip = skip }
}

func DebugLogLevel() Option {
	return func(o *options) { o.level = zapcore.DebugLevel }
}

func InfoLogLevel() Option {
	return func(o *options) { o.level = zapcore.InfoLevel }
}

// Init replaces the process logger. It is safe to call more than once.
func Init(appName string, opts ...Option) error {
	o := &options{
		appName:    appName,
		logOption:  LogOptionJSON,
		level:      zapcore.InfoLevel,
		callerSkip: 1,
	}
	for _, opt := range opts {
		opt(o)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	switch o.logOption {
	case LogOptionConsole:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case LogOptionJSON, "":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return fmt.Errorf("unsupported log option: %s", o.logOption)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(o.level))

	zapOpts := []zap.Option{zap.AddCallerSkip(o.callerSkip)}
	if o.caller {
		zapOpts = append(zapOpts, zap.AddCaller())
	}

	l := zap.New(core, zapOpts...).With(zap.String("app", o.appName))
	if o.env != "" {
		l = l.With(zap.String("env", o.env))
	}

	SetLogger(l)
	return nil
}

// InitForTest routes every entry to the given core, usually a zaptest observer.
func InitForTest(core zapcore.Core) {
	SetLogger(zap.New(core))
}

func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Logger returns the underlying zap logger, mainly for integrations that need it (nrzap).
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Sync() error {
	return Logger().Sync()
}

func withContext(ctx context.Context, fields []Field) []Field {
	if id := CorrelationID(ctx); id != "" {
		fields = append(fields, zap.String("correlation_id", id))
	}
	return fields
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	Logger().Debug(msg, withContext(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	Logger().Info(msg, withContext(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	Logger().Warn(msg, withContext(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	Logger().Error(msg, withContext(ctx, fields)...)
}

func Debugf(ctx context.Context, format string, args ...any) {
	Debug(ctx, fmt.Sprintf(format, args...))
}

func Infof(ctx context.Context, format string, args ...any) {
	Info(ctx, fmt.Sprintf(format, args...))
}

func Warnf(ctx context.Context, format string, args ...any) {
	Warn(ctx, fmt.Sprintf(format, args...))
}

func Errorf(ctx context.Context, format string, args ...any) {
	Error(ctx, fmt.Sprintf(format, args...))
}

func Fatalf(ctx context.Context, format string, args ...any) {
	Logger().Fatal(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}

func String(key, val string) Field { return zap.String(key, val) }

func Int(key string, val int) Field { return zap.Int(key, val) }

func Int64(key string, val int64) Field { return zap.Int64(key, val) }

func Float64(key string, val float64) Field { return zap.Float64(key, val) }

func Bool(key string, val bool) Field { return zap.Bool(key, val) }

func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }

func Any(key string, val any) Field { return zap.Any(key, val) }

func Err(err error) Field { return zap.Error(err) }

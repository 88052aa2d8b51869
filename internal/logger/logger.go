package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the process-wide logger, also installed as slog's default.
var Log *slog.Logger

type Options struct {
	AppName   string
	AppEnv    string
	SentryDSN string
}

// Init builds the logger and installs it as slog's default.
// Development: text at debug level. Anything else: JSON at info level.
// Errors additionally go to Sentry when a DSN is configured.
func Init(opts Options) {
	Log = New(os.Stdout, opts)
	slog.SetDefault(Log)
}

func New(w io.Writer, opts Options) *slog.Logger {
	var handlers []slog.Handler

	if opts.AppEnv == "development" {
		handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.AppEnv,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	l := slog.New(handler)
	if opts.AppName != "" {
		l = l.With("app", opts.AppName)
	}
	return l
}

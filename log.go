package symbol

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/alexdcox/symbol-go/catbuffer"
	"github.com/alexdcox/symbol-go/eddsa"
	"github.com/alexdcox/symbol-go/edwards"
)

var log = zerolog.New(nil).Output(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.TimeOnly,
}).With().Timestamp().Logger()

func Log() *zerolog.Logger {
	return &log
}

func init() {
	zerolog.TimeFieldFormat = time.TimeOnly
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetLogger(log)
}

// SetLogger replaces the logger used here and in the codec, curve and
// signature packages.
func SetLogger(l zerolog.Logger) {
	log = l
	catbuffer.SetLogger(l.With().Str("pkg", "catbuffer").Logger())
	edwards.SetLogger(l.With().Str("pkg", "edwards").Logger())
	eddsa.SetLogger(l.With().Str("pkg", "eddsa").Logger())
}

// SetLogLevel parses a zerolog level name ("trace", "debug", "info", ...)
// and applies it globally.
func SetLogLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level '%s'", level)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// StackTracerMessage renders the stack attached to a pkg/errors error, one
// frame per line.
func StackTracerMessage(err error) string {
	type StackTracer interface {
		StackTrace() errors.StackTrace
	}

	var errString string

	var stackTracer StackTracer
	if errors.As(err, &stackTracer) {
		for _, f := range stackTracer.StackTrace() {
			errString += fmt.Sprintf("%+v\n", f)
		}
	}

	return errString
}

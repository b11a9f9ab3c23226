package ossim

import (
	"os"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

// logger is the package-level structured logger. It defaults to a
// zerolog-backed logger at informational level, writing to stderr; override
// with SetLogger (e.g. in tests, to silence output or capture it).
var logger = defaultLogger()

func defaultLogger() *logiface.Logger[logiface.Event] {
	return logiface.New[*izerolog.Event](
		izerolog.WithZerolog(zerolog.New(os.Stderr).With().Timestamp().Logger()),
		logiface.WithLevel[*izerolog.Event](logiface.LevelInformational),
	).Logger()
}

// SetLogger overrides the package-level logger. A nil logger restores the
// default.
func SetLogger(l *logiface.Logger[logiface.Event]) {
	if l == nil {
		logger = defaultLogger()
		return
	}
	logger = l
}

func getLogger() *logiface.Logger[logiface.Event] {
	return logger
}

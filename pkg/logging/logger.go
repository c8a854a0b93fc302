package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

type Options struct {
	Name   string
	Level  string
	JSON   bool
	Output io.Writer
}

// NewLogger creates a new hclog logger with standard settings
func NewLogger(opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      hclog.LevelFromString(opts.Level),
		JSONFormat: opts.JSON,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

func OrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}

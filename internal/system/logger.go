package system

import (
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger for CLI output.
// It prints to stderr with timestamps enabled.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "echopaint",
})

// SetDebug lowers the log level to debug.
func SetDebug(on bool) {
	if on {
		Logger.SetLevel(clog.DebugLevel)
		return
	}
	Logger.SetLevel(clog.InfoLevel)
}

// RedirectToFile sends log output to path, appending. The returned func
// restores stderr and closes the file. While the TUI owns the terminal this
// keeps log lines out of the frame.
func RedirectToFile(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	Logger.SetOutput(f)
	return func() {
		Logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

// Silence discards log output until the returned func is called.
func Silence() func() {
	Logger.SetOutput(io.Discard)
	return func() { Logger.SetOutput(os.Stderr) }
}

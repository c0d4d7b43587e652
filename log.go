package imguidesktop

import (
	"log/slog"

	"github.com/PazerOP/imgui-desktop/logsink"
)

// SetLogFunction routes every log message of the desktop layer to fn.
// Passing nil restores logging through slog.Default.
func SetLogFunction(fn logsink.Func) {
	logsink.SetFunc(fn)
}

func log() *slog.Logger {
	return logsink.Logger()
}

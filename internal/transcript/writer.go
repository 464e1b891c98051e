package transcript

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
	apperrors "github.com/mjosborne1/check-sparked-server/internal/errors"
)

const filenameTimestampLayout = "20060102_150405"

// Writer persists a console transcript to a timestamped file. Timestamps
// have second precision, so two runs within the same second collide and the
// later write wins.
type Writer struct {
	dir    string
	logger ports.Logger
	now    func() time.Time
}

func NewWriter(dir string, logger ports.Logger) *Writer {
	return &Writer{dir: dir, logger: logger, now: time.Now}
}

// Save writes the full transcript in one shot and reports the resulting
// path on the console. Failures are printed, never propagated: a broken
// output directory must not turn a completed audit into a process failure.
func (w *Writer) Save(ctx context.Context, console *Console) {
	dir := ExpandPath(w.dir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.fail(ctx, console, err)
		return
	}

	name := "check_results_" + w.now().Local().Format(filenameTimestampLayout) + ".txt"
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(console.Contents()), 0o644); err != nil {
		w.fail(ctx, console, err)
		return
	}

	console.Printf("\nResults saved to %s\n", path)
}

func (w *Writer) fail(ctx context.Context, console *Console, err error) {
	wrapped := apperrors.Wrap(err, apperrors.CodeTranscriptWriteError, "failed to save transcript")
	w.logger.Errorf(ctx, wrapped, "transcript write failed")
	console.Printf("\n[X] Could not save results file: %v\n", err)
}

// ExpandPath resolves a leading ~ and any $VAR references in an output
// directory setting.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

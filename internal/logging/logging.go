// Package logging wires up the server's one shared commonlog.Logger:
// stderr redirected to a timestamped file under the OS temp directory, and
// a per-request trace id (see Trace) that the didOpen/didChange handlers put
// on their log lines.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Name is the commonlog logger name every component logs under.
const Name = "aster-ls"

// Setup configures commonlog's simple backend at the given verbosity and
// redirects stderr to a timestamped log file under dir (os.TempDir() if
// dir is empty), returning the shared logger and a close function the
// caller must run before exiting.
func Setup(verbosity int, dir string) (commonlog.Logger, func() error, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, fmt.Sprintf("aster-ls-%s.log", time.Now().Format("20060102-150405")))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	os.Stderr = f
	commonlog.Configure(verbosity, &path)

	logger := commonlog.GetLogger(Name)
	return logger, f.Close, nil
}

// Trace returns a short request-scoped trace id. The didOpen and didChange
// handlers prefix their log lines (rejections and check() failures) with
// it; the other handlers do not use it.
func Trace() string {
	return uuid.NewString()[:8]
}

package cli

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type runFunc func(cmd *cobra.Command, args []string) error

// RunIDHook stamps every log entry of one invocation with its run id.
type RunIDHook struct {
	RunID string
}

func (h *RunIDHook) Levels() []log.Level { return log.AllLevels }

func (h *RunIDHook) Fire(entry *log.Entry) error {
	if _, ok := entry.Data["run_id"]; !ok {
		entry.Data["run_id"] = h.RunID
	}
	return nil
}

// logged wraps a command and logs its outcome and latency.
func logged(run runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		err := run(cmd, args)

		entry := log.WithFields(log.Fields{
			"command":    cmd.Name(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if err != nil {
			entry.WithError(err).Debug("command failed")
		} else {
			entry.Debug("command completed")
		}
		return err
	}
}

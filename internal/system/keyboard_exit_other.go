//go:build !linux

package system

import "context"

// StartExitOnF4 is a no-op outside linux; window and terminal shells handle their own keys.
func StartExitOnF4(ctx context.Context, logger logger, onExit func()) {
	if logger != nil {
		logger.Infof("input", "F4 exit watcher not available on this platform")
	}
}

// Package goroutine launches background goroutines that log panics instead
// of crashing the server.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine and recovers any panic.
func SafeGo(log logger.Interface, name string, fn func()) {
	go Run(log, name, fn)
}

// Run calls fn on the current goroutine and recovers any panic.
func Run(log logger.Interface, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}

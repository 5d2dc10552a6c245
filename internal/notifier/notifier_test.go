package notifier

import "JaxSpot/pkg/logger"

func testLogger() *logger.Logger {
	l, _ := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	return l
}

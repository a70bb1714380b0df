package mail

import "github.com/formrelay/formrelay/internal/logger"

func testLogger() *logger.Logger {
	return logger.New("disabled", "json")
}

package logger

import (
	"go.uber.org/zap/zaptest"
)

// NewTestLogger routes log output through t.Log so a failing test
// shows the client's request trace.
func NewTestLogger(tb zaptest.TestingT) *Logger {
	return &Logger{Logger: zaptest.NewLogger(tb)}
}

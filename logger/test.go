package logger

// TestLogEntry captures one logged message for assertions in tests.
type TestLogEntry struct {
	Severity  string
	Message   string
	Arguments []any
}

// TestLogger accumulates log entries in memory.
type TestLogger struct {
	metadata map[string]any
	Logs     []TestLogEntry
}

var _ Logger = (*TestLogger)(nil)

func NewTestLogger() *TestLogger {
	return &TestLogger{}
}

func (c *TestLogger) With(metadata map[string]any) Logger {
	kv := make(map[string]any, len(c.metadata)+len(metadata))
	for k, v := range c.metadata {
		kv[k] = v
	}
	for k, v := range metadata {
		kv[k] = v
	}
	// entries still land on the parent so tests can see everything
	c.metadata = kv
	return c
}

func (c *TestLogger) IsLevelEnabled(level LogLevel) bool {
	return true
}

func (c *TestLogger) record(severity, msg string, args ...any) {
	c.Logs = append(c.Logs, TestLogEntry{Severity: severity, Message: msg, Arguments: args})
}

func (c *TestLogger) Trace(msg string, args ...any) { c.record("trace", msg, args...) }
func (c *TestLogger) Debug(msg string, args ...any) { c.record("debug", msg, args...) }
func (c *TestLogger) Info(msg string, args ...any)  { c.record("info", msg, args...) }
func (c *TestLogger) Warn(msg string, args ...any)  { c.record("warn", msg, args...) }
func (c *TestLogger) Error(msg string, args ...any) { c.record("error", msg, args...) }

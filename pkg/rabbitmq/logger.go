package rabbitmq

// Logger - логгер pkg-уровня в стиле key/value, чтобы пакет не зависел от internal.
// Сервис подключает свой логгер через мост (adapters/rabbitmq.PkgLoggerBridge).
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

// discardLogger используется, когда PublisherConfig.Logger не задан.
type discardLogger struct{}

func (discardLogger) Debug(string, ...interface{})        {}
func (discardLogger) Info(string, ...interface{})         {}
func (discardLogger) Warn(string, ...interface{})         {}
func (discardLogger) Error(error, string, ...interface{}) {}

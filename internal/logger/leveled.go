package logger

import "fmt"

// Leveled adapts a Logger to the key/value LeveledLogger interface used by
// github.com/hashicorp/go-retryablehttp.
//
// Errors are written at WARN: the HTTP client logs every failed attempt,
// and a failure that is later retried is not an error for the run.
type Leveled struct {
	inner Logger
}

// NewLeveled wraps l.
func NewLeveled(l Logger) Leveled {
	return Leveled{inner: l}
}

func (l Leveled) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Warn(msg, toFields(keysAndValues)...)
}

func (l Leveled) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Warn(msg, toFields(keysAndValues)...)
}

func (l Leveled) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Info(msg, toFields(keysAndValues)...)
}

func (l Leveled) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Debug(msg, toFields(keysAndValues)...)
}

// toFields pairs up alternating keys and values. A trailing key without a
// value is logged with the value "MISSING".
func toFields(keysAndValues []interface{}) []Field {
	fields := make([]Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		var value any = "MISSING"
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}
		fields = append(fields, F(key, value))
	}
	return fields
}

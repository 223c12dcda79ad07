package enums

import "strings"

// LogLevel is the normalized name of a logger severity.
type LogLevel string

const (
	LogLevelDebug  LogLevel = "debug"
	LogLevelInfo   LogLevel = "info"
	LogLevelWarn   LogLevel = "warn"
	LogLevelError  LogLevel = "error"
	LogLevelDPanic LogLevel = "dpanic"
	LogLevelPanic  LogLevel = "panic"
	LogLevelFatal  LogLevel = "fatal"
)

var logLevelAliases = map[string]LogLevel{
	"dbg":         LogLevelDebug,
	"information": LogLevelInfo,
	"warning":     LogLevelWarn,
	"err":         LogLevelError,
}

// ParseLogLevel maps a LOG_LEVEL value to a LogLevel. Case and surrounding
// whitespace are ignored; unknown values fall back to LogLevelInfo.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := logLevelAliases[s]; ok {
		return l
	}
	switch l := LogLevel(s); l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError,
		LogLevelDPanic, LogLevelPanic, LogLevelFatal:
		return l
	}
	return LogLevelInfo
}

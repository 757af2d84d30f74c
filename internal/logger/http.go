package logger

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// HTTPLogger records the outbound exchange of a dispatch: one request line,
// then either a response status or a transport error.
type HTTPLogger interface {
	Request(issueID, method, url string, bodyBytes int)
	Response(issueID string, status int, bodyBytes int)
	Error(issueID string, err error)
}

// StdHTTPLogger writes exchanges through logrus under the "http" component.
type StdHTTPLogger struct {
	logger *logrus.Entry
}

// NewHTTPLogger returns a logger bound to l, or to the shared logger when l is nil.
func NewHTTPLogger(l *Logger) *StdHTTPLogger {
	if l == nil {
		l = root()
	}
	return &StdHTTPLogger{logger: logrus.NewEntry(l).WithField("component", "http")}
}

func (l *StdHTTPLogger) Request(issueID, method, url string, bodyBytes int) {
	l.log(logrus.InfoLevel, issueID, "-> %s %s bytes=%d", method, url, bodyBytes)
}

func (l *StdHTTPLogger) Response(issueID string, status int, bodyBytes int) {
	level := logrus.InfoLevel
	if status < 200 || status >= 300 {
		level = logrus.WarnLevel
	}
	l.log(level, issueID, "<- status=%d bytes=%d", status, bodyBytes)
}

func (l *StdHTTPLogger) Error(issueID string, err error) {
	l.log(logrus.ErrorLevel, issueID, "!! err=%v", err)
}

func (l *StdHTTPLogger) log(level logrus.Level, issueID, format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	if !l.logger.Logger.IsLevelEnabled(level) {
		return
	}
	entry := l.logger
	if issueID != "" {
		entry = entry.WithField(IssueField, issueID)
	}
	if caller := findCaller(); caller != "" {
		entry = entry.WithField("caller", caller)
	}
	entry.Log(level, fmt.Sprintf(format, args...))
}

// NoopHTTPLogger drops everything.
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) Request(issueID, method, url string, bodyBytes int) {}
func (NoopHTTPLogger) Response(issueID string, status int, bodyBytes int) {}
func (NoopHTTPLogger) Error(issueID string, err error)                    {}

func findCaller() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.File != "" && !strings.HasSuffix(frame.File, "logger/http.go") {
			return fmt.Sprintf("%s:%d", shortenFilePath(frame.File), frame.Line)
		}
		if !more {
			break
		}
	}
	return ""
}

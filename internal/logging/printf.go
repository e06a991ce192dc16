package logging

import (
	"context"
	"fmt"
)

// PrintfLogger adapts a Logger to libraries that log with printf-style
// Errorf/Warnf/Debugf methods, such as resty.
type PrintfLogger struct {
	L Logger
}

func (p PrintfLogger) Errorf(format string, v ...any) {
	p.L.Error(context.Background(), fmt.Sprintf(format, v...))
}

func (p PrintfLogger) Warnf(format string, v ...any) {
	p.L.Warn(context.Background(), fmt.Sprintf(format, v...))
}

func (p PrintfLogger) Debugf(format string, v ...any) {
	p.L.Debug(context.Background(), fmt.Sprintf(format, v...))
}

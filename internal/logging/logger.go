package logging

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// New สร้าง logger แบบข้อความอ่านง่ายเขียนลง stderr
func New(level string) *log.Logger {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter เหมือน New แต่กำหนดปลายทางเอง ใช้ในเทสต์
func NewWithWriter(level string, w io.Writer) *log.Logger {
	if level == "" {
		level = "info"
	}
	return &log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:         w,
			ColorOutput:    false,
			QuoteString:    true,
			EndWithMessage: true,
		},
	}
}

// Discard คืน logger ที่ไม่เขียนอะไรเลย
func Discard() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: log.IOWriter{Writer: io.Discard},
	}
}

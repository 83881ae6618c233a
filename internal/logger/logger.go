// Package logger уровневое логирование процесса поверх go-logging.
package logger

import (
	"os"
	"strings"

	"github.com/op/go-logging"
)

const module = "geoguess"

var logger = logging.MustGetLogger(module)

func init() {
	InitLogger(logging.INFO)
}

// InitLogger настраивает вывод в stderr с заданным уровнем
func InitLogger(level logging.Level) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter(`%{time:2006/01/02 15:04:05} %{level:.4s} - %{message}`)

	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(level, module)
	logger.SetBackend(leveled)
}

// ParseLevel переводит строку из конфигурации в уровень go-logging
func ParseLevel(level string) logging.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logging.DEBUG
	case "warning", "warn":
		return logging.WARNING
	case "error":
		return logging.ERROR
	default:
		return logging.INFO
	}
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	logger.Fatalf(format, args...)
}

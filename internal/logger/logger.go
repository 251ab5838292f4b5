package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/moodverse/internal/constants"
)

// Logger is the process-wide logger. It stays nil until Init, and every helper below is a no-op until then.
var Logger *log.Logger

var file *lumberjack.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr receives a copy of every record in debug mode. Defaults to os.Stderr.
	Stderr io.Writer
}

// LogFile returns the rotated log file path for a config directory.
func LogFile(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init points the global logger at a rotated file under cfg.ConfigDir.
// Only warnings and errors are kept unless cfg.Debug is set.
func Init(cfg Config) error {
	path := LogFile(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	Close()
	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	opts := log.Options{
		ReportTimestamp: true,
		Level:           log.WarnLevel,
		Prefix:          constants.AppName,
	}
	// The TUI owns the terminal, so stderr only gets records in debug mode.
	var out io.Writer = file
	if cfg.Debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		out = io.MultiWriter(stderr, file)
	}

	Logger = log.NewWithOptions(out, opts)
	return nil
}

// Close releases the log file. The global logger is dropped with it.
func Close() {
	if file != nil {
		_ = file.Close()
		file = nil
	}
	Logger = nil
}

func emit(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...interface{})  { emit(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...interface{})  { emit(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals) }

package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// terminalHook renders Info and above as human-readable text. Debug entries
// (state transitions, per-attempt match scores) stay off the terminal but
// still reach the session file hook.
type terminalHook struct {
	out       io.Writer
	formatter logrus.Formatter
}

func (h *terminalHook) Levels() []logrus.Level {
	return logrus.AllLevels[:logrus.InfoLevel+1]
}

func (h *terminalHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.out.Write(line)
	return err
}

// fileHook mirrors every entry, transitions and misses included, into the
// session log file as one JSON line.
type fileHook struct {
	writer    *lumberjack.Logger
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *fileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}

// NewSessionLogger builds the logger shared by every component: timestamped
// text on the terminal at Info and above, append-only JSON for every entry in
// the rotated session log file.
func NewSessionLogger(logFile string) *logrus.Logger {
	return newLogger(os.Stderr, logFile)
}

func newLogger(terminal io.Writer, logFile string) *logrus.Logger {
	logger := logrus.New()
	// Level filtering happens per hook; the logger itself must pass every
	// entry through or the file hook never sees Debug.
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(io.Discard)

	logger.AddHook(&terminalHook{
		out:       terminal,
		formatter: &logrus.TextFormatter{FullTimestamp: true},
	})

	if logFile != "" {
		logger.AddHook(&fileHook{
			writer: &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     30, // days
			},
			formatter: &logrus.JSONFormatter{},
		})
	}

	return logger
}

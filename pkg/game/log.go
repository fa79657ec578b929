package game

import (
	"fmt"
	"log"
	"os"
)

const (
	LogStandard = iota
	LogDebug
	LogVerbose
)

// InitLog sends the standard logger to a file. The terminal belongs to the
// UI while a game is running.
func InitLog(dest, prefix string) error {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}

	log.SetOutput(f)
	log.SetPrefix(prefix)
	return nil
}

func (g *Engine) Log(level int, a ...interface{}) {
	if g.logger == nil || level > g.LogLevel {
		return
	}

	g.logger.Print(a...)
}

func (g *Engine) Logf(level int, format string, a ...interface{}) {
	if g.logger == nil || level > g.LogLevel {
		return
	}

	g.logger.Printf(format, a...)
}

package log

import (
	"fmt"
	"os"
)

func formatLine(line *logLine) string {
	if line.line == 0 {
		return fmt.Sprintf("%s ? %s %s", line.timestamp.Format("060102 15:04:05.000"), line.level, line.msg)
	}
	return fmt.Sprintf("%s %s:%03d %s %s", line.timestamp.Format("060102 15:04:05.000"), line.file, line.line, line.level, line.msg)
}

func writeLine(line *logLine) {
	fmt.Fprintln(os.Stderr, formatLine(line))
}

func writerService() {
	defer shutdownWaitGroup.Done()

	for {
		select {
		case line := <-logBuffer:
			writeLine(line)
		case <-shutdownSignal:
			// Flush what is left.
			for {
				select {
				case line := <-logBuffer:
					writeLine(line)
				default:
					return
				}
			}
		}
	}
}

package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const maxHistoryLines = 500

// cmdHistory is the recall list shared by the shell and the command bar.
// Entries are appended to file as they are added; an empty file keeps the
// history in memory only.
type cmdHistory struct {
	lines []string
	pos   int // len(lines) means "past the newest entry"
	file  string
}

func newCmdHistory(file string) *cmdHistory {
	lines := loadHistoryFromPath(file)
	return &cmdHistory{lines: lines, pos: len(lines), file: file}
}

// add records line and resets recall to the newest entry.
func (h *cmdHistory) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	h.lines = append(h.lines, line)
	h.pos = len(h.lines)
	appendHistoryToPath(h.file, line)
}

// prev steps back one entry. ok is false at the oldest entry.
func (h *cmdHistory) prev() (line string, ok bool) {
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.lines[h.pos], true
}

// next steps forward one entry; past the newest it returns "".
func (h *cmdHistory) next() string {
	if h.pos < len(h.lines)-1 {
		h.pos++
		return h.lines[h.pos]
	}
	h.pos = len(h.lines)
	return ""
}

// loadHistoryFromPath reads non-blank lines from path, keeping the newest
// maxHistoryLines. A missing or unreadable file yields nil.
func loadHistoryFromPath(path string) []string {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if n := len(lines); n > maxHistoryLines {
		lines = lines[n-maxHistoryLines:]
	}
	return lines
}

// appendHistoryToPath appends line to path, creating its directory.
// History is best-effort, so failures are dropped.
func appendHistoryToPath(path, line string) {
	line = strings.TrimSpace(line)
	if path == "" || line == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line + "\n")
}

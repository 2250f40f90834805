package repl

import (
	"bufio"
	"os"
	"path/filepath"
)

// maxHistoryEntries caps the persisted history size.
const maxHistoryEntries = 500

// History stores REPL command history, persisted across sessions.
type History struct {
	entries []string
	path    string
}

// NewHistory creates a History backed by the default history file.
func NewHistory() *History {
	homeDir, _ := os.UserHomeDir()
	return &History{
		path: filepath.Join(homeDir, ".voteledger", "history"),
	}
}

// Add appends a line, skipping consecutive duplicates.
func (h *History) Add(line string) {
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > maxHistoryEntries {
		h.entries = h.entries[len(h.entries)-maxHistoryEntries:]
	}
}

// Entries returns the history, oldest first.
func (h *History) Entries() []string {
	return h.entries
}

// Load reads history from disk. A missing file is not an error.
func (h *History) Load() error {
	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.Add(scanner.Text())
	}
	return scanner.Err()
}

// Save writes history to disk.
func (h *History) Save() error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range h.entries {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

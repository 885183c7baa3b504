package prevwin

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"winterreise/pkg/core"
)

// Store holds the file recording the window that was focused before the
// switcher opened. The handle stays open for the whole session.
type Store struct {
	file *os.File
	log  core.Logger
}

// Open opens the store at path, creating the file if needed. Existing
// content is left untouched until Write.
func Open(path string, log core.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open previous-window file: %w", err)
	}
	log.Debug("Opened previous-window file", "path", path)
	return &Store{file: f, log: log}, nil
}

func (s *Store) Close() error {
	return s.file.Close()
}

// Read returns the stored window id. An empty or unparsable file yields false.
func (s *Store) Read() (uint64, bool) {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		s.log.Warn("Failed to rewind previous-window file", "error", err.Error())
		return 0, false
	}

	scanner := bufio.NewScanner(s.file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			s.log.Warn("Failed to read previous-window file", "error", err.Error())
		}
		return 0, false
	}

	id, err := strconv.ParseUint(strings.TrimSpace(scanner.Text()), 10, 64)
	if err != nil {
		s.log.Debug("Ignoring previous-window content", "content", scanner.Text())
		return 0, false
	}
	return id, true
}

// Write replaces the file content with id.
func (s *Store) Write(id uint64) error {
	if err := s.file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate previous-window file: %w", err)
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind previous-window file: %w", err)
	}
	if _, err := s.file.WriteString(strconv.FormatUint(id, 10)); err != nil {
		return fmt.Errorf("failed to write previous-window file: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync previous-window file: %w", err)
	}
	s.log.Debug("Stored previous window", "id", id)
	return nil
}

// ReadFile reads the stored id from path without keeping the file open.
// A missing file yields false.
func ReadFile(path string, log core.Logger) (uint64, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	s := &Store{file: f, log: log}
	defer s.Close()
	return s.Read()
}

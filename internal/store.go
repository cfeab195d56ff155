package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDataFile is used when neither flags nor config name a data file
const DefaultDataFile = "expenses.txt"

var ErrFileNotFound = errors.New("data file not found")

// LoadStats describes what happened while reading a data file
type LoadStats struct {
	Loaded     int
	Skipped    int
	Categories int
	Missing    bool
}

// ReadAllLines returns every line of the file at path, without terminators.
// A missing file is reported as ErrFileNotFound. Line length is not limited.
func ReadAllLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// WriteAllLines overwrites the file at path with one line per entry
func WriteAllLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// DecodeRecords turns data-file lines into expenses. Blank lines, lines with
// the wrong field count and lines with invalid values are skipped and counted.
func DecodeRecords(source string, lines []string) ([]Expense, int) {
	var expenses []Expense
	skipped := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := ParseRecord(line)
		if err != nil {
			skipped++
			logger.Warn().Str("path", source).Int("line", i+1).Err(err).Msg("skipping record")
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, skipped
}

// LoadExpenses reads the data file. A missing file is not an error: the
// tracker starts empty and stats.Missing is set.
func LoadExpenses(path string) ([]Expense, LoadStats, error) {
	lines, err := ReadAllLines(path)
	if errors.Is(err, ErrFileNotFound) {
		logger.Info().Str("path", path).Msg("data file not found, starting empty")
		return nil, LoadStats{Missing: true}, nil
	}
	if err != nil {
		return nil, LoadStats{}, err
	}

	expenses, skipped := DecodeRecords(path, lines)
	stats := LoadStats{
		Loaded:     len(expenses),
		Skipped:    skipped,
		Categories: len(UniqueCategories(expenses)),
	}
	logger.Info().Str("path", path).Int("loaded", stats.Loaded).Int("skipped", stats.Skipped).Msg("loaded expenses")
	return expenses, stats, nil
}

// SaveExpenses overwrites the data file with the whole collection
func SaveExpenses(path string, expenses []Expense) error {
	lines := make([]string, len(expenses))
	for i, e := range expenses {
		lines[i] = e.Record()
	}
	if err := WriteAllLines(path, lines); err != nil {
		return err
	}
	logger.Info().Str("path", path).Int("count", len(expenses)).Msg("saved expenses")
	return nil
}

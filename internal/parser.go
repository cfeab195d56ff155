package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FormatRecords is the flat data-file format, usable as an import source too
const FormatRecords = "expenses-txt"

// Parser reads expenses from an import source
type Parser interface {
	Parse(path string) ([]Expense, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) ([]Expense, error)

func (f ParserFunc) Parse(path string) ([]Expense, error) {
	return f(path)
}

// parsers is the registry of available parsers
var parsers = map[string]Parser{}

// RegisterParser registers a parser with the given name
func RegisterParser(name string, p Parser) {
	parsers[name] = p
}

// GetParser returns the parser for the given source type
func GetParser(source string) (Parser, error) {
	p, ok := parsers[source]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return p, nil
}

// AvailableSources returns the registered source types in alphabetical order
func AvailableSources() []string {
	var sources []string
	for name := range parsers {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "simple-json:old.json" → ("simple-json", "old.json")
// Example: "backup.txt" → ("", "backup.txt")
// Example: "C:\path\book.xlsx" → ("", "C:\path\book.xlsx") // Windows path
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg // Not a known parser, treat whole thing as path
}

// ParserForFile picks a parser from an explicit format or, failing that,
// from the file extension. Anything unrecognised is read as the flat record format.
func ParserForFile(format, path string) (Parser, error) {
	if format != "" {
		return GetParser(format)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return GetParser(FormatSimpleJSON)
	case ".xlsx":
		return GetParser(FormatXLSX)
	default:
		return GetParser(FormatRecords)
	}
}

// ImportExpenses reads expenses from a "[format:]path" argument
func ImportExpenses(arg string) ([]Expense, error) {
	format, path := ParseFileArg(arg)
	p, err := ParserForFile(format, path)
	if err != nil {
		return nil, err
	}
	expenses, err := p.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}
	logger.Info().Str("path", path).Int("count", len(expenses)).Msg("imported expenses")
	return expenses, nil
}

// ParseRecordFile reads a flat record file for import. Unlike LoadExpenses a
// missing file is an error here.
func ParseRecordFile(path string) ([]Expense, error) {
	lines, err := ReadAllLines(path)
	if err != nil {
		return nil, err
	}
	expenses, _ := DecodeRecords(path, lines)
	return expenses, nil
}

func init() {
	// Register built-in parsers
	RegisterParser(FormatRecords, ParserFunc(ParseRecordFile))
}

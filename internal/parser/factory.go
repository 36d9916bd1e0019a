package parser

import (
	"errors"
	"fmt"
)

// ErrNoParser is returned when no registered parser understands a report file.
var ErrNoParser = errors.New("no suitable parser found")

var registeredParsers []IParser

// RegisterParser adds a parser to the list of available parsers.
// This should be called by each parser implementation in its init() function.
func RegisterParser(p IParser) {
	registeredParsers = append(registeredParsers, p)
}

// GetParsers returns all registered parsers.
func GetParsers() []IParser {
	return registeredParsers
}

// FindParserForFile returns the first registered parser whose SupportsFile accepts the file.
func FindParserForFile(filePath string) (IParser, error) {
	for _, p := range registeredParsers {
		if p.SupportsFile(filePath) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w for file: %s", ErrNoParser, filePath)
}

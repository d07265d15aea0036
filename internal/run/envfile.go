package run

import (
	"fmt"
	"os"
	"strings"
)

// Reads a dotenv-style file into "key=value" entries in declaration order.
//
// Supported format: blank lines and #-comments are skipped, an "export "
// prefix is ignored, values may be unquoted, double-quoted (with \n, \r,
// \t, \\ and \" escapes), or single-quoted (literal). Unquoted values have
// trailing inline comments stripped.
func loadEnvFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnvFile, err)
	}
	return parseEnvFile(content, path)
}

// Parses dotenv content into "key=value" entries.
//
// Later entries for the same key are kept as-is; the container runtime
// resolves duplicates in favor of the last occurrence.
func parseEnvFile(content []byte, filename string) ([]string, error) {
	var entries []string

	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("%w: %s:%d: missing '='", ErrEnvFile, filename, i+1)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: %s:%d: empty variable name", ErrEnvFile, filename, i+1)
		}

		parsed, err := parseEnvValue(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %w", ErrEnvFile, filename, i+1, err)
		}

		entries = append(entries, key+"="+parsed)
	}

	return entries, nil
}

// Parses a dotenv value, handling quoting and escape sequences.
func parseEnvValue(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	switch value[0] {
	case '"':
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", fmt.Errorf("unterminated double quote")
		}
		return unescape(value[1 : len(value)-1]), nil
	case '\'':
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", fmt.Errorf("unterminated single quote")
		}
		return value[1 : len(value)-1], nil
	}

	// Unquoted: strip a trailing inline comment.
	if idx := strings.Index(value, " #"); idx != -1 {
		value = strings.TrimSpace(value[:idx])
	}
	return value, nil
}

// Processes escape sequences in a double-quoted value. Unknown escapes are
// kept verbatim.
func unescape(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i+1 >= len(value) {
			b.WriteByte(value[i])
			continue
		}

		i++
		switch value[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}

	return b.String()
}

// Package wordlist loads typing snippet catalogs from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// MaxLineBytes bounds a single snippet line.
const MaxLineBytes = 1 << 20

// LoadSnippets reads one snippet per line from the provided file path.
// Blank lines, lines starting with '#' and lines rejected by keep are skipped.
func LoadSnippets(path string, keep FilterFunc) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snippets %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only snippet file.
			_ = cerr
		}
	}()

	if keep == nil {
		keep = Typeable
	}
	var snippets []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !keep(line) {
			continue
		}
		snippets = append(snippets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snippets %s: %w", path, err)
	}
	if len(snippets) == 0 {
		return nil, fmt.Errorf("snippet list %s is empty", path)
	}
	return snippets, nil
}

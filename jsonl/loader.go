// Package jsonl provides JSONL file handling for evaluation datasets and
// case results.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mskalski/grader"
)

// Compile-time interface verification.
var _ grader.DatasetLoader = (*Loader)(nil)

// Loader loads TestCase records from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// maxLineSize is the maximum size for a single JSONL line (4MB). This
// accommodates test cases carrying large expected responses or schemas
// while preventing memory issues.
const maxLineSize = 4 * 1024 * 1024

// Load reads a JSONL file and returns all TestCase records.
func (l *Loader) Load(path string) ([]grader.TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []grader.TestCase
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, maxLineSize), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var tc grader.TestCase
		if err := json.Unmarshal([]byte(line), &tc); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		cases = append(cases, tc)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cases, nil
}

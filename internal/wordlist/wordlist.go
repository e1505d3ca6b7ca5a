// Package wordlist extracts words from text and reads text files.
package wordlist

import (
	"bufio"
	"os"
)

// MaxLineBytes bounds a single line handed to the tokenizer.
const MaxLineBytes = 256 * 1024 * 1024

// ReadLines reads every line of the text file at path.
// Both LF and CRLF terminators are stripped; a final unterminated line is kept.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only upload file.
			_ = cerr
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

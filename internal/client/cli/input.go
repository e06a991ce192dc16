package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// MultilineTerminator on a line of its own ends multi-line input.
const MultilineTerminator = "."

// GetMultiline prints a prompt to w and reads lines until a line holding only
// MultilineTerminator, or until input ends (Ctrl-D). Blank lines are part of
// the text; line breaks are kept and the text is returned as typed.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n(type %q on a line of its own or press Ctrl-D to finish)\n", prompt, MultilineTerminator); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == MultilineTerminator {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.Join(lines, "\n"), nil
}

// ReadAll consumes the rest of reader, for text piped into a one-shot command.
func ReadAll(reader *bufio.Reader) (string, error) {
	b, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

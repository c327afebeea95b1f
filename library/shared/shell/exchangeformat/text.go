package exchangeformat

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

const textSeparator = ","

// TextBook is one book in the text format.
// Line is the 1-based line a decoded book came from, zero for books that were not decoded.
type TextBook struct {
	Title string
	Label string
	Line  int
}

// MalformedLine is a non-blank line with fewer than two fields. Number is 1-based.
type MalformedLine struct {
	Number  int
	Content string
}

// EncodeText writes one "title,label" line per book, in the given order.
func EncodeText(w io.Writer, books []TextBook) error {
	bw := bufio.NewWriter(w)

	for _, book := range books {
		if _, err := bw.WriteString(book.Title + textSeparator + book.Label + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// DecodeText splits data into books. Blank lines are ignored.
// Only the first two comma-separated fields of a line are used, further fields are dropped.
func DecodeText(data []byte) ([]TextBook, []MalformedLine) {
	books := make([]TextBook, 0)
	malformed := make([]MalformedLine, 0)

	for i, line := range strings.Split(string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, textSeparator)
		if len(fields) < 2 {
			malformed = append(malformed, MalformedLine{Number: i + 1, Content: line})
			continue
		}

		books = append(books, TextBook{Title: fields[0], Label: fields[1], Line: i + 1})
	}

	return books, malformed
}

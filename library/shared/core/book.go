package core

import (
	"strings"
	"unicode/utf8"
)

// Length limits of the persisted book fields, counted in characters.
const (
	MaxISBNLength   = 20
	MaxTitleLength  = 255
	MaxAuthorLength = 255
)

// Book is a title in the catalog. Copies counts the copies that are not on loan.
type Book struct {
	ISBN   string
	Title  string
	Author string
	Year   int
	Copies int
	Label  Label
}

// BuildBook creates a Book. Surrounding whitespace is trimmed from the ISBN, the title and the author.
// Returns ErrInvalidBook if the ISBN is empty, a field is too long, or copies is negative,
// and ErrUnknownLabel for an invalid label.
func BuildBook(isbn, title, author string, year, copies int, label Label) (Book, error) {
	isbn = strings.TrimSpace(isbn)
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if isbn == "" || copies < 0 {
		return Book{}, ErrInvalidBook
	}

	if tooLong(isbn, MaxISBNLength) || tooLong(title, MaxTitleLength) || tooLong(author, MaxAuthorLength) {
		return Book{}, ErrInvalidBook
	}

	if label != LabelGeneral && label != LabelForChildren {
		return Book{}, ErrUnknownLabel
	}

	return Book{
		ISBN:   isbn,
		Title:  title,
		Author: author,
		Year:   year,
		Copies: copies,
		Label:  label,
	}, nil
}

// InStock reports whether at least one copy is available.
func (b Book) InStock() bool {
	return b.Copies > 0
}

func tooLong(value string, limit int) bool {
	return utf8.RuneCountInString(value) > limit
}

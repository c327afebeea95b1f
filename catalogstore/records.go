package catalogstore

import (
	"slices"
	"strings"
)

// BorrowerKind tells which borrower table a BorrowerRecord belongs to.
type BorrowerKind string

const (
	KindStudent BorrowerKind = "student"
	KindPupil   BorrowerKind = "pupil"
)

// BorrowerKinds lists all kinds in the order engines process them.
func BorrowerKinds() []BorrowerKind {
	return []BorrowerKind{KindStudent, KindPupil}
}

// Validate returns ErrUnknownBorrowerKind for anything but KindStudent and KindPupil.
func (k BorrowerKind) Validate() error {
	switch k {
	case KindStudent, KindPupil:
		return nil
	default:
		return ErrUnknownBorrowerKind
	}
}

// BookRecord is a DTO (data transfer object) used by the catalog engines to store books and read them back.
//
// It is built on scalars to be completely agnostic of the domain model in the client code.
// Copies is the number of copies that are currently not on loan.
type BookRecord struct {
	ISBN   string
	Title  string
	Author string
	Year   int
	Copies int
	Label  string
}

// BuildBookRecord is a factory method for BookRecord.
//
// Returns ErrInvalidRecord if the ISBN or the label is empty or if copies is negative.
func BuildBookRecord(isbn, title, author string, year, copies int, label string) (BookRecord, error) {
	isbn = strings.TrimSpace(isbn)

	if isbn == "" || label == "" || copies < 0 {
		return BookRecord{}, ErrInvalidRecord
	}

	return BookRecord{
		ISBN:   isbn,
		Title:  title,
		Author: author,
		Year:   year,
		Copies: copies,
		Label:  label,
	}, nil
}

// BorrowerRecord is a DTO for students and pupils.
//
// Age is only meaningful for KindPupil. BorrowedISBNs is the borrower's held set, sorted ascending,
// and is ignored by InsertBorrower and UpsertBorrower: the borrowing relation is only written
// through AddHolding, RemoveHolding, and ClearHoldings.
type BorrowerRecord struct {
	Kind          BorrowerKind
	UserID        string
	Name          string
	Surname       string
	Group         string
	Age           int
	BorrowedISBNs []string
}

// BuildBorrowerRecord is a factory method for BorrowerRecord without any held books.
//
// Returns ErrUnknownBorrowerKind for an invalid kind and ErrInvalidRecord for an empty user id or a negative age.
func BuildBorrowerRecord(kind BorrowerKind, userID, name, surname, group string, age int) (BorrowerRecord, error) {
	if err := kind.Validate(); err != nil {
		return BorrowerRecord{}, err
	}

	if userID == "" || age < 0 {
		return BorrowerRecord{}, ErrInvalidRecord
	}

	if kind == KindStudent {
		age = 0
	}

	return BorrowerRecord{
		Kind:          kind,
		UserID:        userID,
		Name:          name,
		Surname:       surname,
		Group:         group,
		Age:           age,
		BorrowedISBNs: []string{},
	}, nil
}

// Holds reports whether isbn is in the borrower's held set.
func (r BorrowerRecord) Holds(isbn string) bool {
	return slices.Contains(r.BorrowedISBNs, isbn)
}

// Counts holds per-category record counts.
type Counts struct {
	Books    int
	Students int
	Pupils   int
}

// UpsertOutcome tells whether an upsert created a new record or updated an existing one.
type UpsertOutcome int

const (
	Created UpsertOutcome = iota + 1
	Updated
)

func (o UpsertOutcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

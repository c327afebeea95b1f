package shell

import (
	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

// KindFor maps a borrower category to the store's borrower kind.
func KindFor(category core.Category) (catalogstore.BorrowerKind, error) {
	switch category {
	case core.CategoryStudent:
		return catalogstore.KindStudent, nil
	case core.CategoryPupil:
		return catalogstore.KindPupil, nil
	default:
		return "", core.ErrUnknownCategory
	}
}

// CategoryFor maps a store borrower kind to the borrower category.
func CategoryFor(kind catalogstore.BorrowerKind) (core.Category, error) {
	switch kind {
	case catalogstore.KindStudent:
		return core.CategoryStudent, nil
	case catalogstore.KindPupil:
		return core.CategoryPupil, nil
	default:
		return "", catalogstore.ErrUnknownBorrowerKind
	}
}

// BookFromRecord converts a store record into a domain Book.
func BookFromRecord(record catalogstore.BookRecord) (core.Book, error) {
	label, err := core.ParseLabel(record.Label)
	if err != nil {
		return core.Book{}, err
	}

	return core.BuildBook(record.ISBN, record.Title, record.Author, record.Year, record.Copies, label)
}

// RecordFromBook converts a domain Book into a store record.
func RecordFromBook(book core.Book) catalogstore.BookRecord {
	return catalogstore.BookRecord{
		ISBN:   book.ISBN,
		Title:  book.Title,
		Author: book.Author,
		Year:   book.Year,
		Copies: book.Copies,
		Label:  book.Label.String(),
	}
}

// BorrowerFromRecord converts a store record into a core.Student or a core.Pupil, depending on its kind.
func BorrowerFromRecord(record catalogstore.BorrowerRecord) (core.Borrower, error) {
	switch record.Kind {
	case catalogstore.KindStudent:
		return core.BuildStudent(record.UserID, record.Name, record.Surname, record.Group, record.BorrowedISBNs)
	case catalogstore.KindPupil:
		return core.BuildPupil(record.UserID, record.Name, record.Surname, record.Group, record.Age, record.BorrowedISBNs)
	default:
		return nil, catalogstore.ErrUnknownBorrowerKind
	}
}

// RecordFromBorrower converts a domain Borrower into a store record, including its held set.
func RecordFromBorrower(borrower core.Borrower) catalogstore.BorrowerRecord {
	switch b := borrower.(type) {
	case core.Student:
		return recordFromProfile(catalogstore.KindStudent, b.Profile, 0)
	case core.Pupil:
		return recordFromProfile(catalogstore.KindPupil, b.Profile, b.Age)
	default:
		return catalogstore.BorrowerRecord{}
	}
}

func recordFromProfile(kind catalogstore.BorrowerKind, profile core.Profile, age int) catalogstore.BorrowerRecord {
	return catalogstore.BorrowerRecord{
		Kind:          kind,
		UserID:        profile.UserID,
		Name:          profile.Name,
		Surname:       profile.Surname,
		Group:         profile.Group,
		Age:           age,
		BorrowedISBNs: profile.HeldISBNs(),
	}
}

package core

import "regexp"

// Category is the borrower category encoded in the first digit of an identifier.
type Category string

const (
	CategoryStudent Category = "student"
	CategoryPupil   Category = "pupil"

	studentPrefix = '2'
	pupilPrefix   = '1'
)

var identifierPattern = regexp.MustCompile(`^[0-9]{5}$`)

// Classify derives the borrower category from an identifier.
//
// Rules:
//
//	exactly 5 decimal digits, otherwise ErrInvalidIdentifier
//	leading "2" is a student, leading "1" is a pupil
//	any other leading digit is ErrUnknownCategory
func Classify(identifier string) (Category, error) {
	if !identifierPattern.MatchString(identifier) {
		return "", ErrInvalidIdentifier
	}

	switch identifier[0] {
	case studentPrefix:
		return CategoryStudent, nil
	case pupilPrefix:
		return CategoryPupil, nil
	default:
		return "", ErrUnknownCategory
	}
}

// ValidateIdentifierFor checks that identifier is valid and belongs to category.
func ValidateIdentifierFor(category Category, identifier string) error {
	actual, err := Classify(identifier)
	if err != nil {
		return err
	}

	if actual != category {
		return ErrCategoryMismatch
	}

	return nil
}

// ParseCategory accepts "student" and "pupil".
func ParseCategory(value string) (Category, error) {
	switch Category(value) {
	case CategoryStudent, CategoryPupil:
		return Category(value), nil
	default:
		return "", ErrUnknownCategory
	}
}

func (c Category) String() string {
	return string(c)
}

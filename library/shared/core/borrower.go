package core

import (
	"slices"
	"strings"
)

// MinimumPupilAge is the age from which pupils may borrow books. It is also the default age of a new pupil.
const MinimumPupilAge = 7

// Length limits of the persisted borrower fields, counted in characters.
const (
	MaxNameLength  = 100
	MaxGroupLength = 50
)

// Borrower is either a Student or a Pupil. No other implementations exist.
type Borrower interface {
	Category() Category
	ID() string
	Holds(isbn string) bool
	HeldISBNs() []string
	isBorrower()
}

// Profile holds the data both borrower variants share.
// Borrowed is the set of held ISBNs, sorted ascending.
type Profile struct {
	UserID   string
	Name     string
	Surname  string
	Group    string
	Borrowed []string
}

// Student may borrow any book.
type Student struct {
	Profile
}

// Pupil may only borrow books labeled for children, and only from MinimumPupilAge on.
type Pupil struct {
	Profile
	Age int
}

// BuildStudent creates a Student. The identifier must classify as CategoryStudent.
func BuildStudent(userID, name, surname, group string, borrowed []string) (Student, error) {
	profile, err := buildProfile(CategoryStudent, userID, name, surname, group, borrowed)
	if err != nil {
		return Student{}, err
	}

	return Student{Profile: profile}, nil
}

// BuildPupil creates a Pupil. The identifier must classify as CategoryPupil and age must not be negative.
func BuildPupil(userID, name, surname, group string, age int, borrowed []string) (Pupil, error) {
	profile, err := buildProfile(CategoryPupil, userID, name, surname, group, borrowed)
	if err != nil {
		return Pupil{}, err
	}

	if age < 0 {
		return Pupil{}, ErrInvalidBorrower
	}

	return Pupil{Profile: profile, Age: age}, nil
}

func buildProfile(category Category, userID, name, surname, group string, borrowed []string) (Profile, error) {
	userID = strings.TrimSpace(userID)

	if err := ValidateIdentifierFor(category, userID); err != nil {
		return Profile{}, err
	}

	if tooLong(name, MaxNameLength) || tooLong(surname, MaxNameLength) || tooLong(group, MaxGroupLength) {
		return Profile{}, ErrInvalidBorrower
	}

	held := slices.Clone(borrowed)
	if held == nil {
		held = []string{}
	}

	slices.Sort(held)

	return Profile{
		UserID:   userID,
		Name:     name,
		Surname:  surname,
		Group:    group,
		Borrowed: slices.Compact(held),
	}, nil
}

// ID returns the borrower's identifier.
func (p Profile) ID() string {
	return p.UserID
}

// Holds reports whether the borrower holds the book with isbn.
func (p Profile) Holds(isbn string) bool {
	return slices.Contains(p.Borrowed, isbn)
}

// HeldISBNs returns a copy of the held set.
func (p Profile) HeldISBNs() []string {
	return slices.Clone(p.Borrowed)
}

func (Student) Category() Category { return CategoryStudent }
func (Pupil) Category() Category   { return CategoryPupil }

func (Student) isBorrower() {}
func (Pupil) isBorrower()   {}

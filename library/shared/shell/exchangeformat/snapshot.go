package exchangeformat

import (
	"errors"
	"slices"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

// SnapshotVersion is the only snapshot version this package reads and writes.
const SnapshotVersion = 1

const (
	fieldVersion  = "version"
	groupBooks    = "books"
	groupStudents = "students"
	groupPupils   = "pupils"
)

// ErrMalformedSnapshot is returned if a snapshot is not valid BSON, lacks one of the three record groups,
// or has an unknown version.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot is the complete catalog state.
type Snapshot struct {
	Version  int                `bson:"version"`
	Books    []SnapshotBook     `bson:"books"`
	Students []SnapshotBorrower `bson:"students"`
	Pupils   []SnapshotPupil    `bson:"pupils"`
}

// SnapshotBook is a book in a Snapshot.
type SnapshotBook struct {
	ISBN   string `bson:"isbn"`
	Title  string `bson:"title"`
	Author string `bson:"author"`
	Year   int    `bson:"year"`
	Copies int    `bson:"copies"`
	Label  string `bson:"label"`
}

// SnapshotBorrower is a student in a Snapshot, and the common part of a pupil.
// Borrowed lists the ISBNs of the held books.
type SnapshotBorrower struct {
	UserID   string   `bson:"user_id"`
	Name     string   `bson:"name"`
	Surname  string   `bson:"surname"`
	Group    string   `bson:"group"`
	Borrowed []string `bson:"borrowed"`
}

// SnapshotPupil is a pupil in a Snapshot.
type SnapshotPupil struct {
	SnapshotBorrower `bson:",inline"`
	Age              int `bson:"age"`
}

// BuildSnapshot creates a Snapshot from store records.
func BuildSnapshot(books []catalogstore.BookRecord, students, pupils []catalogstore.BorrowerRecord) Snapshot {
	snapshot := Snapshot{
		Version:  SnapshotVersion,
		Books:    make([]SnapshotBook, 0, len(books)),
		Students: make([]SnapshotBorrower, 0, len(students)),
		Pupils:   make([]SnapshotPupil, 0, len(pupils)),
	}

	for _, book := range books {
		snapshot.Books = append(snapshot.Books, SnapshotBook{
			ISBN:   book.ISBN,
			Title:  book.Title,
			Author: book.Author,
			Year:   book.Year,
			Copies: book.Copies,
			Label:  book.Label,
		})
	}

	for _, student := range students {
		snapshot.Students = append(snapshot.Students, snapshotBorrowerFrom(student))
	}

	for _, pupil := range pupils {
		snapshot.Pupils = append(snapshot.Pupils, SnapshotPupil{SnapshotBorrower: snapshotBorrowerFrom(pupil), Age: pupil.Age})
	}

	return snapshot
}

func snapshotBorrowerFrom(record catalogstore.BorrowerRecord) SnapshotBorrower {
	borrowed := slices.Clone(record.BorrowedISBNs)
	if borrowed == nil {
		borrowed = []string{}
	}

	return SnapshotBorrower{
		UserID:   record.UserID,
		Name:     record.Name,
		Surname:  record.Surname,
		Group:    record.Group,
		Borrowed: borrowed,
	}
}

// EncodeSnapshot serializes s as BSON. Nil groups are written as empty arrays.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	if s.Books == nil {
		s.Books = []SnapshotBook{}
	}

	if s.Students == nil {
		s.Students = []SnapshotBorrower{}
	}

	if s.Pupils == nil {
		s.Pupils = []SnapshotPupil{}
	}

	return bson.Marshal(s)
}

// DecodeSnapshot validates and deserializes a snapshot.
// Any structural problem is reported as ErrMalformedSnapshot before a single record is returned.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	raw := bson.Raw(data)

	if err := raw.Validate(); err != nil {
		return Snapshot{}, errors.Join(ErrMalformedSnapshot, err)
	}

	for _, group := range []string{groupBooks, groupStudents, groupPupils} {
		value, err := raw.LookupErr(group)
		if err != nil {
			return Snapshot{}, errors.Join(ErrMalformedSnapshot, errors.New("missing record group "+group))
		}

		if value.Type != bson.TypeArray {
			return Snapshot{}, errors.Join(ErrMalformedSnapshot, errors.New("record group "+group+" is not an array"))
		}
	}

	if err := checkVersion(raw); err != nil {
		return Snapshot{}, err
	}

	var snapshot Snapshot
	if err := bson.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, errors.Join(ErrMalformedSnapshot, err)
	}

	return snapshot, nil
}

func checkVersion(raw bson.Raw) error {
	value, err := raw.LookupErr(fieldVersion)
	if err != nil {
		return errors.Join(ErrMalformedSnapshot, errors.New("missing version"))
	}

	version, ok := int64(0), false
	if v32, isInt32 := value.Int32OK(); isInt32 {
		version, ok = int64(v32), true
	} else if v64, isInt64 := value.Int64OK(); isInt64 {
		version, ok = v64, true
	}

	if !ok || version != SnapshotVersion {
		return errors.Join(ErrMalformedSnapshot, errors.New("unsupported version"))
	}

	return nil
}

// BookRecord converts a snapshot book into a store record without validating it.
func (b SnapshotBook) BookRecord() catalogstore.BookRecord {
	return catalogstore.BookRecord{
		ISBN:   b.ISBN,
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
		Copies: b.Copies,
		Label:  b.Label,
	}
}

package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper" //nolint:revive
)

func Test_BookFromRecord(t *testing.T) {
	// arrange
	record := FixtureBook("978-3-16-148410-0", 2, "For Children")

	// act
	book, err := shell.BookFromRecord(record)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.LabelForChildren, book.Label, "Should accept the legacy label spelling")
	assert.Equal(t, 2, book.Copies)
	assert.Equal(t, record.ISBN, shell.RecordFromBook(book).ISBN)
	assert.Equal(t, LabelForChildren, shell.RecordFromBook(book).Label, "Should write the canonical label")
}

func Test_BookFromRecord_Errors(t *testing.T) {
	_, err := shell.BookFromRecord(FixtureBook("978-3-16-148410-0", 1, "adults-only"))
	assert.ErrorIs(t, err, core.ErrUnknownLabel)

	_, err = shell.BookFromRecord(FixtureBook("978-3-16-148410-0", -1, LabelGeneral))
	assert.ErrorIs(t, err, core.ErrInvalidBook)
}

func Test_BorrowerFromRecord(t *testing.T) {
	// arrange
	studentRecord := FixtureStudent("20001")
	studentRecord.BorrowedISBNs = []string{"b", "a"}
	pupilRecord := FixturePupil("10001", 9)

	// act
	student, studentErr := shell.BorrowerFromRecord(studentRecord)
	pupil, pupilErr := shell.BorrowerFromRecord(pupilRecord)

	// assert
	require.NoError(t, studentErr)
	require.NoError(t, pupilErr)

	assert.IsType(t, core.Student{}, student)
	assert.Equal(t, []string{"a", "b"}, student.HeldISBNs())
	assert.Equal(t, 9, pupil.(core.Pupil).Age)

	assert.Equal(t, catalogstore.KindStudent, shell.RecordFromBorrower(student).Kind)
	assert.Equal(t, pupilRecord, shell.RecordFromBorrower(pupil))
}

func Test_BorrowerFromRecord_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		record      catalogstore.BorrowerRecord
		expectedErr error
	}{
		{
			name:        "student with pupil identifier",
			record:      FixtureStudent("10001"),
			expectedErr: core.ErrCategoryMismatch,
		},
		{
			name:        "malformed identifier",
			record:      FixturePupil("1001", 7),
			expectedErr: core.ErrInvalidIdentifier,
		},
		{
			name:        "negative age",
			record:      FixturePupil("10001", -1),
			expectedErr: core.ErrInvalidBorrower,
		},
		{
			name:        "unknown kind",
			record:      catalogstore.BorrowerRecord{Kind: "staff", UserID: "30001"},
			expectedErr: catalogstore.ErrUnknownBorrowerKind,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := shell.BorrowerFromRecord(tc.record)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_KindFor_CategoryFor(t *testing.T) {
	for _, category := range []core.Category{core.CategoryStudent, core.CategoryPupil} {
		kind, err := shell.KindFor(category)
		require.NoError(t, err)

		back, err := shell.CategoryFor(kind)
		require.NoError(t, err)
		assert.Equal(t, category, back)
	}

	_, err := shell.KindFor("staff")
	assert.ErrorIs(t, err, core.ErrUnknownCategory)

	_, err = shell.CategoryFor("staff")
	assert.ErrorIs(t, err, catalogstore.ErrUnknownBorrowerKind)
}

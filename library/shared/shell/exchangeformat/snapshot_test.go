package exchangeformat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/exchangeformat"
)

func Test_Snapshot_RoundTrip(t *testing.T) {
	// arrange
	books := []catalogstore.BookRecord{
		{ISBN: "978-0", Title: "Dune", Author: "Frank Herbert", Year: 1965, Copies: 2, Label: "general"},
		{ISBN: "978-1", Title: "The Gruffalo", Author: "Julia Donaldson", Year: 1999, Copies: 0, Label: "for-children"},
	}
	students := []catalogstore.BorrowerRecord{
		{Kind: catalogstore.KindStudent, UserID: "20001", Name: "Jane", Surname: "Doe", Group: "CS-1", BorrowedISBNs: []string{"978-0"}},
	}
	pupils := []catalogstore.BorrowerRecord{
		{Kind: catalogstore.KindPupil, UserID: "10001", Name: "Tom", Surname: "Sawyer", Group: "2b", Age: 8, BorrowedISBNs: nil},
	}

	snapshot := exchangeformat.BuildSnapshot(books, students, pupils)

	// act
	data, err := exchangeformat.EncodeSnapshot(snapshot)
	require.NoError(t, err)

	decoded, err := exchangeformat.DecodeSnapshot(data)

	// assert
	require.NoError(t, err)
	assert.Equal(t, snapshot, decoded)
	assert.Equal(t, exchangeformat.SnapshotVersion, decoded.Version)
	assert.Equal(t, books[1], decoded.Books[1].BookRecord())
	assert.Equal(t, []string{"978-0"}, decoded.Students[0].Borrowed)
	assert.Equal(t, 8, decoded.Pupils[0].Age)
	assert.Equal(t, []string{}, decoded.Pupils[0].Borrowed)
}

func Test_Snapshot_EmptyCatalog(t *testing.T) {
	// act
	data, err := exchangeformat.EncodeSnapshot(exchangeformat.Snapshot{Version: exchangeformat.SnapshotVersion})
	require.NoError(t, err)

	decoded, err := exchangeformat.DecodeSnapshot(data)

	// assert
	require.NoError(t, err)
	assert.Empty(t, decoded.Books)
	assert.Empty(t, decoded.Students)
	assert.Empty(t, decoded.Pupils)
}

func Test_DecodeSnapshot_Malformed(t *testing.T) {
	valid := bson.M{"version": 1, "books": bson.A{}, "students": bson.A{}, "pupils": bson.A{}}

	without := func(key string) bson.M {
		doc := bson.M{}
		for k, v := range valid {
			if k != key {
				doc[k] = v
			}
		}

		return doc
	}

	with := func(key string, value any) bson.M {
		doc := without(key)
		doc[key] = value

		return doc
	}

	testCases := []struct {
		name string
		doc  any
		raw  []byte
	}{
		{name: "not bson", raw: []byte("title,label\n")},
		{name: "truncated", raw: mustMarshal(t, valid)[:10]},
		{name: "missing books", doc: without("books")},
		{name: "missing students", doc: without("students")},
		{name: "missing pupils", doc: without("pupils")},
		{name: "books is not an array", doc: with("books", "nope")},
		{name: "missing version", doc: without("version")},
		{name: "unknown version", doc: with("version", 2)},
		{name: "wrong record shape", doc: with("books", bson.A{bson.M{"copies": "three"}})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			data := tc.raw
			if data == nil {
				data = mustMarshal(t, tc.doc)
			}

			// act
			_, err := exchangeformat.DecodeSnapshot(data)

			// assert
			assert.ErrorIs(t, err, exchangeformat.ErrMalformedSnapshot)
		})
	}
}

func Test_DecodeSnapshot_AcceptsInt64Version(t *testing.T) {
	data := mustMarshal(t, bson.M{"version": int64(1), "books": bson.A{}, "students": bson.A{}, "pupils": bson.A{}})

	_, err := exchangeformat.DecodeSnapshot(data)

	assert.NoError(t, err)
}

func mustMarshal(t *testing.T, doc any) []byte {
	t.Helper()

	data, err := bson.Marshal(doc)
	require.NoError(t, err)

	return data
}

package listborrowers

import (
	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

// ProjectBorrowers converts the stored students and pupils into the query result, keeping their order.
func ProjectBorrowers(students, pupils []catalogstore.BorrowerRecord) (Result, error) {
	result := Result{
		Students: make([]core.Student, 0, len(students)),
		Pupils:   make([]core.Pupil, 0, len(pupils)),
	}

	for _, record := range students {
		student, err := core.BuildStudent(record.UserID, record.Name, record.Surname, record.Group, record.BorrowedISBNs)
		if err != nil {
			return Result{}, err
		}

		result.Students = append(result.Students, student)
	}

	for _, record := range pupils {
		pupil, err := core.BuildPupil(record.UserID, record.Name, record.Surname, record.Group, record.Age, record.BorrowedISBNs)
		if err != nil {
			return Result{}, err
		}

		result.Pupils = append(result.Pupils, pupil)
	}

	result.Count = len(result.Students) + len(result.Pupils)

	return result, nil
}

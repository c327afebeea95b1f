package core

// CheckEligibility tells why borrower may not borrow book, or returns nil if it may.
//
// Rules:
//
//	Student: always eligible
//	Pupil: ErrAgeTooYoung below MinimumPupilAge, checked before the label
//	Pupil: ErrLabelMismatch unless the book is labeled for children
//	anything else: ErrNotEligible
func CheckEligibility(borrower Borrower, book Book) error {
	switch b := borrower.(type) {
	case Student:
		return nil

	case Pupil:
		if b.Age < MinimumPupilAge {
			return ErrAgeTooYoung
		}

		if book.Label != LabelForChildren {
			return ErrLabelMismatch
		}

		return nil

	default:
		return ErrNotEligible
	}
}

// CanBorrow reports whether borrower is eligible for book.
func CanBorrow(borrower Borrower, book Book) bool {
	return CheckEligibility(borrower, book) == nil
}

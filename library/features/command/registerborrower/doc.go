// Package registerborrower implements registering a student or a pupil.
//
// The identifier must belong to the category that is registered:
// student identifiers start with 2, pupil identifiers with 1.
package registerborrower

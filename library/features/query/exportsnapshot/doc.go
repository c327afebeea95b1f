// Package exportsnapshot implements the complete binary export of the catalog.
//
// The snapshot holds every book, student, and pupil including the held sets, read in one consistent transaction.
package exportsnapshot

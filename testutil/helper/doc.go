// Package helper provides test doubles and fixtures shared by the tests of the lending catalog.
package helper

// Package dropall implements the destructive reset of the whole catalog.
package dropall

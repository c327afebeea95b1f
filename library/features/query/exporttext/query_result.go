package exporttext

// Result holds the exported text and the number of exported books.
type Result struct {
	Text  []byte
	Count int
}

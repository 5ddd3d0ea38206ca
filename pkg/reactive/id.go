package reactive

// idCounter is the source of unique IDs for all reactive primitives.
// Access is confined to the single reactive goroutine.
var idCounter uint64

func nextID() uint64 {
	idCounter++
	return idCounter
}

package response

// NewList makes sure list endpoints render [] rather than null.
func NewList[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return items
}

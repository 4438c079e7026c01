package app

// IDSource hands out order identifiers.
type IDSource interface {
	NextID() string
}

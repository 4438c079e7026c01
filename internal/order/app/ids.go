package app

import (
	"fmt"
	"math/rand"

	"github.com/dwikikusuma/stylehub/internal/order/domain"
)

const (
	minOrderNumber = 10000
	maxOrderNumber = 99999
)

// RandomIDs produces STYLE-NNNNN identifiers. They are not checked for
// uniqueness.
type RandomIDs struct{}

func (RandomIDs) NextID() string {
	return fmt.Sprintf("%s%d", domain.IDPrefix, minOrderNumber+rand.Intn(maxOrderNumber-minOrderNumber+1))
}

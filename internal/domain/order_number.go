package domain

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{3}$`)

// NewOrderNumber formats ORD-<yyyymmdd>-<3 random digits>. Collisions are
// detected by the unique index and surface as ErrOrderNumberCollision.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%03d", now.UTC().Format("20060102"), rand.IntN(1000))
}

func IsOrderNumber(s string) bool {
	return orderNumberPattern.MatchString(s)
}

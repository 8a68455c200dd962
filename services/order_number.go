package services

import (
	"fmt"
	"math/rand"
	"regexp"
	"sync"
	"time"
)

// OrderNumberPattern matches generated order numbers, e.g. OH-250314-0427
var OrderNumberPattern = regexp.MustCompile(`^OH-\d{6}-\d{4}$`)

// OrderNumberGenerator produces OH-YYMMDD-NNNN order numbers. Uniqueness is
// enforced by the database; callers retry on conflict.
type OrderNumberGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	rand *rand.Rand
}

// NewOrderNumberGenerator creates a generator seeded from the clock
func NewOrderNumberGenerator() *OrderNumberGenerator {
	return &OrderNumberGenerator{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns a new candidate order number
func (g *OrderNumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("OH-%s-%04d", g.now().Format("060102"), g.rand.Intn(10000))
}

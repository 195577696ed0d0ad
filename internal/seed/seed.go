// Package seed generates deterministic demo data.
//
// The same Options always produce the same dataset, IDs included, so seeded
// data can back tests and screenshots.
package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blackwell-systems/gymdesk/internal/dataset"
	"github.com/blackwell-systems/gymdesk/internal/model"
)

// Default collection sizes.
const (
	DefaultMembers = 40
	DefaultGuests  = 15
)

// Options controls generation.
type Options struct {
	Seed uint64

	// Now anchors generated dates; classes span the week before and two
	// weeks after it, expenses the current and two previous months.
	Now model.Date

	Members int
	Guests  int
}

// Generate builds a complete dataset from opts.
func Generate(opts Options) *dataset.Dataset {
	if opts.Members <= 0 {
		opts.Members = DefaultMembers
	}
	if opts.Guests <= 0 {
		opts.Guests = DefaultGuests
	}

	g := newGenerator(opts.Seed)
	ds := &dataset.Dataset{}
	ds.Trainers = g.trainers()
	ds.Members = g.members(opts.Members, opts.Now)
	ds.Classes = g.classes(opts.Now, ds.Trainers, ds.Members)
	ds.Guests = g.guests(opts.Guests, opts.Now, ds.Members)
	ds.Categories = categories(g)
	ds.Budgets = budgets(ds.Categories, opts.Now)
	ds.Expenses = g.expenses(opts.Now, ds.Categories)
	return ds
}

type generator struct {
	rng *rand.Rand
}

func newGenerator(seed uint64) *generator {
	return &generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Read fills p from the generator so uuid draws stay on the seeded stream.
func (g *generator) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(g.rng.Uint32())
	}
	return len(p), nil
}

func (g *generator) id() string {
	return uuid.Must(uuid.NewRandomFromReader(g)).String()
}

func (g *generator) intn(n int) int { return g.rng.IntN(n) }

// between returns an int in [lo, hi].
func (g *generator) between(lo, hi int) int { return lo + g.rng.IntN(hi-lo+1) }

func (g *generator) chance(p float64) bool { return g.rng.Float64() < p }

func pick[T any](g *generator, items []T) T { return items[g.intn(len(items))] }

func (g *generator) name() string {
	return pick(g, firstNames) + " " + pick(g, lastNames)
}

func email(name string, n int) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	local = strings.ReplaceAll(local, "'", "")
	return fmt.Sprintf("%s%d@example.com", local, n)
}

func (g *generator) phone() string {
	return fmt.Sprintf("(555) %03d-%04d", g.intn(1000), g.intn(10000))
}

// money returns a decimal amount in [lo, hi] with cents.
func (g *generator) money(lo, hi int) decimal.Decimal {
	cents := int64(lo*100 + g.intn((hi-lo)*100+1))
	return decimal.New(cents, -2)
}

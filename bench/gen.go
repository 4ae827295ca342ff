package bench

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/tidwall/btree"

	"github.com/cosmos/csz-bench/csz"
)

// Order is the order in which records are written to each shard.
type Order string

const (
	OrderRandom Order = "random"
	// OrderSorted produces the worst case for an unbalanced tree: a single right chain.
	OrderSorted  Order = "sorted"
	OrderReverse Order = "reverse"
)

func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case OrderRandom, OrderSorted, OrderReverse:
		return o, nil
	default:
		return "", fmt.Errorf("unknown order %q (random|sorted|reverse)", s)
	}
}

type CityParams struct {
	Shards          int
	RecordsPerShard int
	// DuplicateFraction is the probability that a record reuses a city generated earlier.
	DuplicateFraction float64
	Order             Order
	Seed              uint64
}

func (p CityParams) validate() error {
	if p.Shards <= 0 {
		return fmt.Errorf("shards must be positive; got %d", p.Shards)
	}
	if p.RecordsPerShard < 0 {
		return fmt.Errorf("records per shard must not be negative; got %d", p.RecordsPerShard)
	}
	if p.DuplicateFraction < 0 || p.DuplicateFraction > 1 {
		return fmt.Errorf("duplicate fraction must be within [0, 1]; got %f", p.DuplicateFraction)
	}
	_, err := ParseOrder(string(p.Order))
	return err
}

var (
	syllables = []string{
		"an", "ar", "bel", "bur", "ca", "cor", "dal", "den", "el", "fair", "gal", "ham",
		"hol", "in", "ken", "la", "lin", "mar", "mon", "new", "or", "pal", "quin", "ra",
		"ro", "san", "sel", "ta", "ton", "val", "ver", "wes", "wil", "yor", "zan",
	}
	cityPrefixes = []string{"New ", "Port ", "Lake ", "Fort ", "East ", "West ", "Mount "}
	citySuffixes = []string{"ville", "ton", "burg", "field", "port", "dale", " City", " Falls"}
	states       = []string{
		"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID", "IL", "IN",
		"IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV",
		"NH", "NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN",
		"TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
	}
)

const (
	minZip = 501
	maxZip = 99950
)

type cityGenerator struct {
	params CityParams
	rng    *rand.Rand
	// cities holds every distinct city generated so far, across shards
	cities *btree.BTreeG[string]
}

func newCityGenerator(params CityParams) *cityGenerator {
	return &cityGenerator{
		params: params,
		rng:    rand.New(rand.NewPCG(params.Seed, params.Seed)),
		cities: btree.NewBTreeG(func(a, b string) bool { return a < b }),
	}
}

func (g *cityGenerator) newCity() string {
	var sb strings.Builder
	if g.rng.IntN(5) == 0 {
		sb.WriteString(cityPrefixes[g.rng.IntN(len(cityPrefixes))])
	}
	n := 1 + g.rng.IntN(3)
	for i := 0; i < n; i++ {
		s := syllables[g.rng.IntN(len(syllables))]
		if i == 0 {
			s = strings.ToUpper(s[:1]) + s[1:]
		}
		sb.WriteString(s)
	}
	if g.rng.IntN(3) == 0 {
		sb.WriteString(citySuffixes[g.rng.IntN(len(citySuffixes))])
	}
	return sb.String()
}

func (g *cityGenerator) record() csz.Record {
	var city string
	if g.cities.Len() > 0 && g.rng.Float64() < g.params.DuplicateFraction {
		city, _ = g.cities.GetAt(g.rng.IntN(g.cities.Len()))
	} else {
		city = g.newCity()
		g.cities.Set(city)
	}
	state := states[g.rng.IntN(len(states))]
	zip := uint32(minZip + g.rng.IntN(maxZip-minZip+1))
	return csz.New(city, state, zip)
}

func (g *cityGenerator) shard() []csz.Record {
	recs := make([]csz.Record, 0, g.params.RecordsPerShard)
	for i := 0; i < g.params.RecordsPerShard; i++ {
		recs = append(recs, g.record())
	}
	switch g.params.Order {
	case OrderSorted, OrderReverse:
		slices.SortStableFunc(recs, func(a, b csz.Record) int {
			return strings.Compare(a.City, b.City)
		})
		if g.params.Order == OrderReverse {
			slices.Reverse(recs)
		}
	}
	return recs
}

// GenerateDataset writes params.Shards record files plus a dataset_info.json to outDir.
// The output depends only on params.
func GenerateDataset(params CityParams, outDir string, log zerolog.Logger) error {
	if err := params.validate(); err != nil {
		return err
	}
	err := os.MkdirAll(outDir, 0o755)
	if err != nil {
		return err
	}

	gen := newCityGenerator(params)
	for shard := 1; shard <= params.Shards; shard++ {
		filename := shardFilename(outDir, shard)
		if err := writeShard(filename, gen.shard()); err != nil {
			return fmt.Errorf("error writing shard %d: %w", shard, err)
		}
		log.Info().
			Int("shard", shard).
			Str("file", filename).
			Str("distinct_cities", humanize.Comma(int64(gen.cities.Len()))).
			Msgf("wrote %s records", humanize.Comma(int64(params.RecordsPerShard)))
	}

	return writeDatasetInfo(outDir, datasetInfo{
		Shards:            params.Shards,
		RecordsPerShard:   params.RecordsPerShard,
		Seed:              params.Seed,
		Order:             params.Order,
		DuplicateFraction: params.DuplicateFraction,
	})
}

func writeShard(filename string, recs []csz.Record) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, rec := range recs {
		if err := csz.Write(w, rec); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

package bench

func SmallCities(seed uint64) CityParams {
	return CityParams{
		Shards:            4,
		RecordsPerShard:   25_000,
		DuplicateFraction: 0.1,
		Order:             OrderRandom,
		Seed:              seed,
	}
}

func LargeCities(seed uint64) CityParams {
	return CityParams{
		Shards:            16,
		RecordsPerShard:   1_000_000,
		DuplicateFraction: 0.25,
		Order:             OrderRandom,
		Seed:              seed,
	}
}

// SortedCities builds degenerate trees: every shard is in ascending city order, so each
// tree is a single chain as tall as the shard is long.
func SortedCities(seed uint64) CityParams {
	return CityParams{
		Shards:            2,
		RecordsPerShard:   5_000,
		DuplicateFraction: 0.05,
		Order:             OrderSorted,
		Seed:              seed,
	}
}

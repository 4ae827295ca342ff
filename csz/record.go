// Package csz holds the city/state/zip record indexed by the bst package and the
// comma-delimited text format it is read from.
package csz

import "fmt"

// Record is a single city/state/zip entry. It is ordered by City only.
type Record struct {
	City  string
	State string
	Zip   uint32
}

func New(city, state string, zip uint32) Record {
	return Record{City: city, State: state, Zip: zip}
}

// Less reports whether r sorts before other. Cities are compared byte-wise and
// case-sensitively; State and Zip never take part in the ordering.
func (r Record) Less(other Record) bool {
	return r.City < other.City
}

func (r Record) String() string {
	return fmt.Sprintf("%s, %s %05d", r.City, r.State, r.Zip)
}

package search

import (
	"testing"

	"github.com/palemoky/dynasty-timeline/internal/chrono"
)

// FuzzYearQuery tests the yearQuery function with random inputs
func FuzzYearQuery(f *testing.F) {
	f.Add("1526")
	f.Add("500 BCE")
	f.Add("44 b.c.")
	f.Add("AD 800")
	f.Add("babur")
	f.Add("")
	f.Add("   ")
	f.Add("0 BCE")
	f.Add("-1")
	f.Add("1526 battles")

	f.Fuzz(func(t *testing.T, input string) {
		year, ok := yearQuery(input)
		if !ok {
			if year != 0 {
				t.Errorf("yearQuery(%q) = %d with ok=false", input, year)
			}
			return
		}

		// Anything accepted must parse the same way and survive a format round trip
		parsed, err := chrono.ParseYear(input)
		if err != nil || parsed != year {
			t.Errorf("yearQuery(%q) = %d, ParseYear = %d, %v", input, year, parsed, err)
		}
		if year < -999998 {
			return
		}
		again, err := chrono.ParseYear(chrono.FormatYear(year))
		if err != nil || again != year {
			t.Errorf("FormatYear(%d) did not round trip: %d, %v", year, again, err)
		}
	})
}

package booking_models

import "cloud.google.com/go/civil"

// DateRange is the half-open night interval [Start, End).
type DateRange struct {
	Start civil.Date
	End   civil.Date
}

// Valid reports whether the range holds at least one night.
func (r DateRange) Valid() bool {
	return r.Start.IsValid() && r.End.IsValid() && r.Start.Before(r.End)
}

// Overlaps reports whether r and o share a night: [a,b) and [c,d) overlap
// iff a < d and c < b.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Day is the single-night range starting on d.
func Day(d civil.Date) DateRange {
	return DateRange{Start: d, End: d.AddDays(1)}
}

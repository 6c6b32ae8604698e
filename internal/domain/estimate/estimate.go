// Package estimate turns a point fare into a symmetric percentage band.
package estimate

import "fmt"

// Result is one computed estimate. It is rebuilt on every request.
type Result struct {
	Point    float64 `json:"point"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	RangePct int     `json:"fare_range_pct"`
}

// Range returns point scaled down and up by pct percent. pct is trusted; the
// caller bounds it. Negative points are not special-cased.
func Range(point float64, pct int) (lower, upper float64) {
	f := float64(pct) / 100
	return point * (1 - f), point * (1 + f)
}

// New builds the Result for point and pct.
func New(point float64, pct int) Result {
	lower, upper := Range(point, pct)
	return Result{Point: point, Lower: lower, Upper: upper, RangePct: pct}
}

// Degenerate reports a non-positive point, for which the band is meaningless.
func (r Result) Degenerate() bool { return r.Point <= 0 }

// PointText renders the point estimate, e.g. "$20.00".
func (r Result) PointText() string { return money(r.Point) }

// RangeText renders the band, e.g. "$18.80 - $21.20".
func (r Result) RangeText() string {
	return money(r.Lower) + " - " + money(r.Upper)
}

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }

package content

// Insights is the rotating list shown on the home page.
type Insights []string

// Next returns the index after i, wrapping around, and the insight at it.
// Out-of-range indexes are reduced modulo the list length first.
func (in Insights) Next(i int) (int, string) {
	n := len(in)
	if n == 0 {
		return 0, ""
	}
	next := ((i % n) + n + 1) % n
	return next, in[next]
}

package paging

// Summary is the aggregate line of one algorithm in a report
type Summary struct {
	Algorithm Algorithm
	Hits      int
	Faults    int
	Evictions int
	HitRatio  float64
}

// Summaries returns one summary per algorithm in canonical order
func (rep Report) Summaries() []Summary {
	names := rep.Names()
	summaries := make([]Summary, 0, len(names))
	for _, alg := range names {
		r := rep[alg]
		summaries = append(summaries, Summary{
			Algorithm: alg,
			Hits:      r.Hits,
			Faults:    r.Faults,
			Evictions: r.Evictions,
			HitRatio:  r.HitRatio(),
		})
	}
	return summaries
}

// Best returns the algorithms with the fewest faults, in canonical order
func (rep Report) Best() []Algorithm {
	var best []Algorithm
	fewest := -1
	for _, alg := range rep.Names() {
		faults := rep[alg].Faults
		switch {
		case fewest < 0 || faults < fewest:
			fewest = faults
			best = []Algorithm{alg}
		case faults == fewest:
			best = append(best, alg)
		}
	}
	return best
}

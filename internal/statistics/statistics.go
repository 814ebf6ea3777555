// Package statistics accumulates per-seat results over many simulated hands.
package statistics

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// BigPotBB is the pot size, in big blinds, from which a pot counts as big
const BigPotBB = 50

// HandResult is the outcome of one hand for one seat
type HandResult struct {
	NetBB          float64 // big blinds won or lost in the hand
	Won            bool    // seat took the pot
	WentToShowdown bool    // seat's cards were compared at a contested showdown
	Position       string  // table position, see game.TablePosition
	FinalPot       int     // pot size in chips
	BigBlind       int
}

// PositionStats tracks results for one table position
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics tracks one seat's results across hands
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares for the variance
	Values []float64 // every result, for the median and percentiles

	Wins          int
	ShowdownWins  int
	FoldWins      int     // pots taken without a contested showdown
	Showdowns     int     // contested showdowns reached, won or lost
	ShowdownBB    float64 // net result of hands that reached a showdown
	NonShowdownBB float64
	AllBB         float64

	Positions map[string]*PositionStats

	MaxPot    int
	BigPots   int
	BigPotsBB float64
}

// Mean returns the mean result in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
	// rounding can push identical results just below zero
	return max(v, 0)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean,
// using the t-distribution with Hands-1 degrees of freedom
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	if s.Hands < 2 {
		return mean, mean
	}
	margin := tCritical95(float64(s.Hands-1)) * s.StdError()
	return mean - margin, mean + margin
}

// tCritical95 is the two-tailed 95% critical value of Student's t
func tCritical95(df float64) float64 {
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return t.Quantile(0.975)
}

// Comparison is the outcome of a Welch's t-test between two seats
type Comparison struct {
	Difference float64 // mean of a minus mean of b, in big blinds per hand
	StdError   float64
	TStatistic float64
	DF         float64
	PValue     float64 // two-tailed
	CI95Low    float64
	CI95High   float64
}

// Significant reports whether the difference holds at the 5% level
func (c Comparison) Significant() bool {
	return c.PValue < 0.05
}

// Compare tests whether a and b win at different rates. Both need at least
// two hands.
func Compare(a, b *Statistics) (Comparison, error) {
	if a.Hands < 2 || b.Hands < 2 {
		return Comparison{}, fmt.Errorf("need at least 2 hands each, got %d and %d", a.Hands, b.Hands)
	}

	va := a.Variance() / float64(a.Hands)
	vb := b.Variance() / float64(b.Hands)
	c := Comparison{
		Difference: a.Mean() - b.Mean(),
		StdError:   math.Sqrt(va + vb),
	}

	if c.StdError == 0 {
		c.PValue = 1
		if c.Difference != 0 {
			c.PValue = 0
		}
		c.CI95Low, c.CI95High = c.Difference, c.Difference
		return c, nil
	}

	// Welch-Satterthwaite degrees of freedom
	c.DF = (va + vb) * (va + vb) / (va*va/float64(a.Hands-1) + vb*vb/float64(b.Hands-1))
	c.TStatistic = c.Difference / c.StdError

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: c.DF}
	c.PValue = min(2*(1-t.CDF(math.Abs(c.TStatistic))), 1)
	margin := t.Quantile(0.975) * c.StdError
	c.CI95Low, c.CI95High = c.Difference-margin, c.Difference+margin
	return c, nil
}

// WinRate returns the share of hands in which the seat took the pot
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// Add incorporates one hand
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if result.Won {
		s.Wins++
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.FoldWins++
		}
	}

	if result.WentToShowdown {
		s.Showdowns++
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if result.Position != "" {
		if s.Positions == nil {
			s.Positions = make(map[string]*PositionStats)
		}
		ps, ok := s.Positions[result.Position]
		if !ok {
			ps = &PositionStats{}
			s.Positions[result.Position] = ps
		}
		ps.Hands++
		ps.SumBB += netBB
		ps.SumBB2 += netBB * netBB
	}

	if result.FinalPot > s.MaxPot {
		s.MaxPot = result.FinalPot
	}
	if result.BigBlind > 0 && result.FinalPot >= BigPotBB*result.BigBlind {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.ShowdownWins += other.ShowdownWins
	s.FoldWins += other.FoldWins
	s.Showdowns += other.Showdowns
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB

	for pos, ops := range other.Positions {
		if s.Positions == nil {
			s.Positions = make(map[string]*PositionStats)
		}
		ps, ok := s.Positions[pos]
		if !ok {
			ps = &PositionStats{}
			s.Positions[pos] = ps
		}
		ps.Hands += ops.Hands
		ps.SumBB += ops.SumBB
		ps.SumBB2 += ops.SumBB2
	}

	s.MaxPot = max(s.MaxPot, other.MaxPot)
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Median returns the median of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbouring results
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result for a table position
func (s *Statistics) PositionMean(position string) float64 {
	ps, ok := s.Positions[position]
	if !ok || ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced checks that showdown and non-showdown results add up
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the counters against each other
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length (%d) does not match hands (%d)", len(s.Values), s.Hands)
	}
	if s.Wins != s.ShowdownWins+s.FoldWins {
		return fmt.Errorf("wins (%d) != showdown wins (%d) + fold wins (%d)", s.Wins, s.ShowdownWins, s.FoldWins)
	}
	if s.Wins > s.Hands {
		return fmt.Errorf("wins (%d) exceed hands (%d)", s.Wins, s.Hands)
	}
	if s.ShowdownWins > s.Showdowns {
		return fmt.Errorf("showdown wins (%d) exceed showdowns (%d)", s.ShowdownWins, s.Showdowns)
	}

	if len(s.Positions) > 0 {
		total := 0
		for _, ps := range s.Positions {
			total += ps.Hands
		}
		if total != s.Hands {
			return fmt.Errorf("position hands (%d) do not match hands (%d)", total, s.Hands)
		}
	}
	return nil
}

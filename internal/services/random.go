package services

import (
	"math/rand/v2"
	"sync"
	"time"

	"singmeasong/internal/models"
)

// 随机推荐的分段权重
const (
	PopularScore = 10  // score > PopularScore 为热门段
	PopularShare = 0.7 // 热门段被选中的概率
)

// RandomSource is the generator behind weighted selection.
type RandomSource interface {
	// Float64 returns a number in [0, 1).
	Float64() float64
	// IntN returns a number in [0, n).
	IntN(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a goroutine-safe source. A zero seed means time-seeded.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// PickWeighted splits recs into a popular band (score > PopularScore) and the
// rest. With probability PopularShare it picks uniformly from the popular band,
// otherwise from the rest; an empty band falls back to the other one.
// ok is false only when recs is empty.
func PickWeighted(recs []models.Recommendation, rng RandomSource) (pick models.Recommendation, ok bool) {
	if len(recs) == 0 {
		return pick, false
	}

	var popular, rest []models.Recommendation
	for _, r := range recs {
		if r.Score > PopularScore {
			popular = append(popular, r)
		} else {
			rest = append(rest, r)
		}
	}

	band := rest
	if rng.Float64() < PopularShare {
		band = popular
	}
	if len(band) == 0 {
		if len(popular) > 0 {
			band = popular
		} else {
			band = rest
		}
	}

	return band[rng.IntN(len(band))], true
}

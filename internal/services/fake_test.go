package services

import (
	"context"
	"slices"
	"sort"
	"sync"

	"singmeasong/internal/models"
	"singmeasong/internal/repository"
)

// fakeRepo is an in-memory repository.Repository that records which methods ran.
type fakeRepo struct {
	mu     sync.Mutex
	nextID uint
	recs   map[uint]models.Recommendation
	calls  map[string]int
}

var _ repository.Repository = (*fakeRepo)(nil)

func newFakeRepo(seed ...models.Recommendation) *fakeRepo {
	f := &fakeRepo{recs: map[uint]models.Recommendation{}, calls: map[string]int{}}
	for _, r := range seed {
		if r.ID == 0 {
			f.nextID++
			r.ID = f.nextID
		} else if r.ID > f.nextID {
			f.nextID = r.ID
		}
		f.recs[r.ID] = r
	}
	return f
}

func (f *fakeRepo) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRepo) FindByID(_ context.Context, id uint) (*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["FindByID"]++
	r, ok := f.recs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRepo) FindByName(_ context.Context, name string) (*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["FindByName"]++
	for _, r := range f.recs {
		if r.Name == name {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) Create(_ context.Context, name, link string) (*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Create"]++
	for _, r := range f.recs {
		if r.Name == name {
			return nil, repository.ErrDuplicateName
		}
	}
	f.nextID++
	r := models.Recommendation{ID: f.nextID, Name: name, YoutubeLink: link}
	f.recs[r.ID] = r
	return &r, nil
}

func (f *fakeRepo) UpdateScore(_ context.Context, id uint, delta int) (*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateScore"]++
	r, ok := f.recs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.Score += delta
	f.recs[id] = r
	return &r, nil
}

func (f *fakeRepo) DownvoteAndPrune(_ context.Context, id uint, threshold int) (*models.Recommendation, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DownvoteAndPrune"]++
	r, ok := f.recs[id]
	if !ok {
		return nil, false, repository.ErrNotFound
	}
	r.Score--
	if r.Score < threshold {
		delete(f.recs, id)
		return nil, true, nil
	}
	f.recs[id] = r
	return &r, false, nil
}

func (f *fakeRepo) Remove(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Remove"]++
	delete(f.recs, id)
	return nil
}

func (f *fakeRepo) sorted() []models.Recommendation {
	out := make([]models.Recommendation, 0, len(f.recs))
	for _, r := range f.recs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRepo) ListLatest(_ context.Context, limit int) ([]models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListLatest"]++
	out := f.sorted()
	slices.Reverse(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) ListTopByScore(_ context.Context, limit int) ([]models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListTopByScore"]++
	out := f.sorted()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListAll"]++
	return f.sorted(), nil
}

func (f *fakeRepo) Truncate(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Truncate"]++
	f.recs = map[uint]models.Recommendation{}
	return nil
}

// scriptedSource replays fixed draws.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) IntN(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// hookedRepo runs afterListTop once, between reading the top list and returning it.
type hookedRepo struct {
	*fakeRepo
	afterListTop func()
}

func (h *hookedRepo) ListTopByScore(ctx context.Context, limit int) ([]models.Recommendation, error) {
	recs, err := h.fakeRepo.ListTopByScore(ctx, limit)
	if hook := h.afterListTop; hook != nil {
		h.afterListTop = nil
		hook()
	}
	return recs, err
}

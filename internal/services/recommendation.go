package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"singmeasong/internal/models"
	"singmeasong/internal/repository"
	"singmeasong/internal/utils"

	"github.com/sirupsen/logrus"
)

const (
	// DeletionThreshold 分数低于此值的推荐在点踩后被删除
	DeletionThreshold = -5
	// LatestLimit 最新列表的条数
	LatestLimit = 10
)

// RecommendationService 负责推荐的创建、投票和选取
type RecommendationService struct {
	repo     repository.Repository
	rng      RandomSource
	topCache *utils.Cache[[]models.Recommendation]
}

// NewRecommendationService wires the core. topCache may be nil to disable caching.
func NewRecommendationService(repo repository.Repository, rng RandomSource, topCache *utils.Cache[[]models.Recommendation]) *RecommendationService {
	return &RecommendationService{
		repo:     repo,
		rng:      rng,
		topCache: topCache,
	}
}

// Create 创建推荐，名称必须唯一
func (s *RecommendationService) Create(ctx context.Context, name, youtubeLink string) (*models.Recommendation, error) {
	_, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return nil, ConflictError("Recommendations names must be unique")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find recommendation by name: %w", err)
	}

	rec, err := s.repo.Create(ctx, name, youtubeLink)
	if err != nil {
		// 并发创建同名推荐时由唯一索引兜底
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ConflictError("Recommendations names must be unique")
		}
		return nil, fmt.Errorf("create recommendation: %w", err)
	}

	s.invalidate()
	logrus.WithFields(logrus.Fields{"id": rec.ID, "name": rec.Name}).Info("Recommendation created")
	return rec, nil
}

// Upvote 点赞，分数 +1，没有上限
func (s *RecommendationService) Upvote(ctx context.Context, id uint) (*models.Recommendation, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	rec, err := s.repo.UpdateScore(ctx, id, 1)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundError("")
		}
		return nil, fmt.Errorf("upvote recommendation %d: %w", id, err)
	}

	s.invalidate()
	return rec, nil
}

// Downvote 点踩，分数 -1；结果低于 DeletionThreshold 时在同一事务内删除。
// deleted 为 true 时 rec 为 nil。
func (s *RecommendationService) Downvote(ctx context.Context, id uint) (rec *models.Recommendation, deleted bool, err error) {
	rec, deleted, err = s.repo.DownvoteAndPrune(ctx, id, DeletionThreshold)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, NotFoundError("")
		}
		return nil, false, fmt.Errorf("downvote recommendation %d: %w", id, err)
	}

	s.invalidate()
	if deleted {
		logrus.WithField("id", id).Info("Recommendation removed after falling below score threshold")
	}
	return rec, deleted, nil
}

// Latest 返回最新的 LatestLimit 条推荐
func (s *RecommendationService) Latest(ctx context.Context) ([]models.Recommendation, error) {
	recs, err := s.repo.ListLatest(ctx, LatestLimit)
	if err != nil {
		return nil, fmt.Errorf("list latest recommendations: %w", err)
	}
	return recs, nil
}

func (s *RecommendationService) GetByID(ctx context.Context, id uint) (*models.Recommendation, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundError("")
		}
		return nil, fmt.Errorf("find recommendation %d: %w", id, err)
	}
	return rec, nil
}

// Top 按分数降序返回最多 n 条；没有数据时返回空列表而不是错误
func (s *RecommendationService) Top(ctx context.Context, n int) ([]models.Recommendation, error) {
	if n < 0 {
		return nil, ValidationError("amount must be a non-negative integer")
	}

	key := fmt.Sprintf("top:%d", n)
	var gen uint64
	if s.topCache != nil {
		if cached, ok := s.topCache.Get(key); ok {
			return slices.Clone(cached), nil
		}
		// 读库期间若有写入，结果不再写回缓存
		gen = s.topCache.Generation()
	}

	recs, err := s.repo.ListTopByScore(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("list top recommendations: %w", err)
	}

	if s.topCache != nil {
		s.topCache.Set(key, slices.Clone(recs), gen)
	}
	return recs, nil
}

// Random 按热门/普通两段加权随机选取一条；没有数据时返回 NotFound
func (s *RecommendationService) Random(ctx context.Context) (*models.Recommendation, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	pick, ok := PickWeighted(recs, s.rng)
	if !ok {
		return nil, NotFoundError("")
	}
	return &pick, nil
}

// Reset 清空全部推荐
func (s *RecommendationService) Reset(ctx context.Context) error {
	if err := s.repo.Truncate(ctx); err != nil {
		return fmt.Errorf("truncate recommendations: %w", err)
	}
	s.invalidate()
	logrus.Warn("All recommendations removed")
	return nil
}

func (s *RecommendationService) invalidate() {
	if s.topCache != nil {
		s.topCache.Purge()
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"agriconnect/domain"
	"agriconnect/logging"
	"agriconnect/repository"
)

type SortKey string

const (
	SortTrustScore SortKey = "trust_score"
	SortName       SortKey = "name"
)

var ErrInvalidSort = errors.New("invalid sort key")

type DirectoryQuery struct {
	Search string  `form:"search"`
	Sort   SortKey `form:"sort"`
}

func (q DirectoryQuery) normalize() (DirectoryQuery, error) {
	q.Search = strings.ToLower(strings.TrimSpace(q.Search))
	switch q.Sort {
	case "":
		q.Sort = SortTrustScore
	case SortTrustScore, SortName:
	default:
		return q, fmt.Errorf("%w: %q", ErrInvalidSort, q.Sort)
	}
	return q, nil
}

func (q DirectoryQuery) cacheKey() string {
	return directoryCachePrefix + string(q.Sort) + ":" + q.Search
}

// DirectoryService lists the profiles the current user can browse. Results
// are cached as ordered ID lists.
type DirectoryService struct {
	profiles      repository.ProfileRepository
	cache         repository.CacheRepository
	ttl           time.Duration
	currentUserID string
	logger        *zap.Logger
}

func NewDirectoryService(
	profiles repository.ProfileRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	currentUserID string,
	logger *zap.Logger,
) *DirectoryService {
	return &DirectoryService{
		profiles:      profiles,
		cache:         cache,
		ttl:           ttl,
		currentUserID: currentUserID,
		logger:        logging.OrNop(logger),
	}
}

func (s *DirectoryService) CurrentUserID() string {
	return s.currentUserID
}

func (s *DirectoryService) Get(ctx context.Context, id string) (domain.Borrower, error) {
	return s.profiles.FindByID(ctx, id)
}

// List returns every profile except the current user's that matches the
// search term by name, location, or asset keyword.
func (s *DirectoryService) List(ctx context.Context, q DirectoryQuery) ([]domain.Borrower, error) {
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}

	key := q.cacheKey()
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if out, err := s.fromCache(ctx, cached); err == nil {
				return out, nil
			}
			s.logger.Warn("ignoring unusable directory cache entry", zap.String("key", key))
		}
	}

	all, err := s.profiles.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Borrower, 0, len(all))
	for _, b := range all {
		if b.Details().ID == s.currentUserID {
			continue
		}
		if q.Search == "" || matches(b, q.Search) {
			out = append(out, b)
		}
	}
	sortBorrowers(out, q.Sort)

	if s.cache != nil {
		s.store(ctx, key, out)
	}
	return out, nil
}

func (s *DirectoryService) fromCache(ctx context.Context, cached string) ([]domain.Borrower, error) {
	var ids []string
	if err := json.Unmarshal([]byte(cached), &ids); err != nil {
		return nil, err
	}
	out := make([]domain.Borrower, 0, len(ids))
	for _, id := range ids {
		b, err := s.profiles.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *DirectoryService) store(ctx context.Context, key string, list []domain.Borrower) {
	ids := make([]string, len(list))
	for i, b := range list {
		ids[i] = b.Details().ID
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		s.logger.Warn("failed to cache directory listing", zap.String("key", key), zap.Error(err))
	}
}

func matches(b domain.Borrower, term string) bool {
	p := b.Details()
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Location), term) {
		return true
	}
	for _, kw := range b.AssetKeywords() {
		if strings.Contains(strings.ToLower(kw), term) {
			return true
		}
	}
	return false
}

func sortBorrowers(list []domain.Borrower, key SortKey) {
	if key == SortName {
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(list, func(i, j int) bool {
			return c.CompareString(list[i].Details().Name, list[j].Details().Name) < 0
		})
		return
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Details().TrustScore > list[j].Details().TrustScore
	})
}

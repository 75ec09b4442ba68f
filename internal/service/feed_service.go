package service

import (
	"context"
	"sort"
	"strconv"

	"github.com/spec-kit/feed-service/internal/domain"
	"github.com/spec-kit/feed-service/internal/repository"
)

const (
	// DefaultPageLimit is applied when the caller omits or mangles the limit.
	DefaultPageLimit = 10
)

// PageRequest carries sanitized pagination parameters.
type PageRequest struct {
	Skip  int
	Limit int
}

// ParsePageRequest sanitizes untrusted query values. Non-numeric or negative
// input falls back to the defaults (skip 0, limit 10) rather than failing.
func ParsePageRequest(skipRaw, limitRaw string) PageRequest {
	req := PageRequest{Skip: 0, Limit: DefaultPageLimit}
	if skip, err := strconv.Atoi(skipRaw); err == nil && skip >= 0 {
		req.Skip = skip
	}
	if limit, err := strconv.Atoi(limitRaw); err == nil && limit > 0 {
		req.Limit = limit
	}
	return req
}

// FeedService produces newest-first pages over the post store.
type FeedService struct {
	posts repository.PostRepository
}

// NewFeedService builds the service.
func NewFeedService(posts repository.PostRepository) *FeedService {
	return &FeedService{posts: posts}
}

// Page returns the contiguous slice [skip, skip+limit) of the store sorted by
// creation time descending. The sort is stable so equal timestamps keep their
// insertion order and repeated calls over an unchanged store are identical.
// Short or empty pages are well-formed results, never an error.
func (s *FeedService) Page(ctx context.Context, req PageRequest) []domain.Post {
	all := s.posts.List(ctx)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Created.After(all[j].Created)
	})

	if req.Skip >= len(all) {
		return []domain.Post{}
	}
	end := req.Skip + req.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[req.Skip:end]
}

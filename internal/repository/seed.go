package repository

import (
	"fmt"
	"time"

	"github.com/spec-kit/feed-service/internal/domain"
)

// SeedUsers returns the fixed account list: u1 is a regular user, u2 an admin.
func SeedUsers() []domain.User {
	return []domain.User{
		{ID: "u1", Role: domain.RoleUser},
		{ID: "u2", Role: domain.RoleAdmin},
	}
}

// SeedPosts generates count mock posts p1..pN, alternating authors between
// the admin and the regular user, created one hour apart with p1 newest.
func SeedPosts(count int, now time.Time) []domain.Post {
	if count <= 0 {
		count = 25
	}
	posts := make([]domain.Post, 0, count)
	for i := 0; i < count; i++ {
		author := "u1"
		if i%2 == 0 {
			author = "u2"
		}
		posts = append(posts, domain.Post{
			ID:      fmt.Sprintf("p%d", i+1),
			Author:  author,
			Content: fmt.Sprintf("This is post #%d", i+1),
			Created: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	return posts
}

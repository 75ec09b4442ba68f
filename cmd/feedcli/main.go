package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/spec-kit/feed-service/pkg/feedclient"
)

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("url", envOr("FEED_API_BASE_URL", "http://127.0.0.1:8080"), "feed service base URL")
	userID := flag.String("user", envOr("FEED_USER_ID", "u1"), "user id to log in as")
	limit := flag.Int("limit", 10, "page size")
	deleteID := flag.String("delete", "", "post id to delete after loading (admin only)")
	flag.Parse()

	ctx := context.Background()

	client := feedclient.New(*baseURL)
	controller := feedclient.NewFeedController(client,
		feedclient.WithPageLimit(*limit),
		feedclient.WithNotifier(feedclient.NotifierFunc(printNotification)),
	)

	info, err := client.Login(ctx, *userID)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	fmt.Printf("Logged in as %s (%s), token expires %s\n", info.ID, info.Role, info.ExpiresAt.Format("15:04:05"))

	// simulate infinite scroll: keep loading until the feed is exhausted
	for controller.HasMore() {
		if err := controller.LoadMore(ctx); err != nil {
			log.Fatalf("load failed: %v", err)
		}
	}

	for _, post := range controller.Posts() {
		fmt.Printf("%-4s  %-3s  %s  %s\n", post.ID, post.Author, post.Created.Format("2006-01-02 15:04"), post.Content)
	}

	if *deleteID != "" {
		if err := controller.DeletePost(ctx, *deleteID); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Printf("%d posts remain after deleting %s\n", len(controller.Posts()), *deleteID)
	}
}

func printNotification(n feedclient.Notification) {
	if n.Err != nil {
		fmt.Fprintf(os.Stderr, "! %s: %v\n", n.Message, n.Err)
		return
	}
	fmt.Fprintf(os.Stderr, "* %s\n", n.Message)
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/shadowdark-gm/internal/config"
	"github.com/KirkDiggler/shadowdark-gm/internal/repositories/sessions"
	"github.com/KirkDiggler/shadowdark-gm/internal/services/game"
	"github.com/KirkDiggler/shadowdark-gm/internal/uuid"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	repository := buildRepository()

	svc := game.NewService(&game.ServiceConfig{
		Repository: repository,
	})

	sessionID := os.Getenv("GM_SESSION_ID")
	if sessionID == "" {
		sessionID = uuid.NewGoogleUUIDGenerator().New()
	}
	log.Printf("Session: %s", sessionID)

	actor := &game.ActorContext{Name: getEnvOrDefault("GM_ACTOR", "Player")}

	// One command per line; the transport prefix is stripped here so the
	// engine only ever sees bare commands.
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, cfg.Game.CommandPrefix)

		resp, err := svc.Dispatch(ctx, sessionID, actor, line)
		if err != nil {
			log.Printf("dispatch failed: %v", err)
			continue
		}
		fmt.Println(resp.Content)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("reading input: %v", err)
	}
}

// buildRepository connects to Redis when REDIS_URL is set, falling back
// to in-memory state otherwise
func buildRepository() sessions.Repository {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, using in-memory session state")
		return sessions.NewInMemoryRepository()
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Failed to parse Redis URL: %v", err)
		log.Println("Falling back to in-memory session state")
		return sessions.NewInMemoryRepository()
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		log.Println("Falling back to in-memory session state")
		return sessions.NewInMemoryRepository()
	}

	log.Println("Connected to Redis")
	repo, err := sessions.NewRedisRepository(&sessions.RedisRepositoryConfig{Client: client})
	if err != nil {
		log.Printf("Failed to create Redis repository: %v", err)
		return sessions.NewInMemoryRepository()
	}
	return repo
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

//go:build integration

package redisad_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	redisad "hotel_chat/internal/adapters/redis"
	"hotel_chat/internal/domain"
)

func TestSessions_RealRedis(t *testing.T) {
	// Start isolated Redis; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp"))
	s := redisad.New(addr, "", 0, time.Minute)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	if err := pool.Retry(func() error { return s.Ping(ctx) }); err != nil {
		t.Fatalf("connect redis: %v", err)
	}

	if err := s.Create(ctx, "it"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Append(ctx, "it",
		domain.Message{Role: domain.RoleUser, Content: "Tokyo"},
		domain.Message{Role: domain.RoleAssistant, Content: "Couldn't find location: Tokyo"},
	); err != nil {
		t.Fatalf("Append: %v", err)
	}
	conv, err := s.Load(ctx, "it")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(conv.Messages) != 2 || conv.Messages[1].Role != domain.RoleAssistant {
		t.Fatalf("unexpected conversation: %+v", conv)
	}
}

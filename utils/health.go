package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	healthCheckInterval = 60 * time.Second
	healthCheckTimeout  = 5 * time.Second
)

// HealthStatus is the snapshot served by the /health endpoint: Mongo,
// then one entry per Redis client (session cache, OTP cache).
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings the backing stores periodically and keeps the
// snapshot current. The first check runs immediately so /health is
// meaningful right after boot.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		checkHealth(redisClients, mongoClient)
		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()
		for range ticker.C {
			checkHealth(redisClients, mongoClient)
		}
	}()
}

func checkHealth(redisClients []*redis.Client, mongoClient *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	redisHealth := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
	}
	mongoHealthy := mongoClient.Ping(ctx, nil) == nil

	healthMu.Lock()
	currentHealth = HealthStatus{
		Mongo:     mongoHealthy,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
	healthMu.Unlock()
}

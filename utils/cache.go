// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"glambook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionClient holds conversation session state.
	SessionClient *redis.Client
	// OTPClient is the dedicated client for verification codes.
	OTPClient *redis.Client
)

// InitSessionCache initializes the Redis client for conversation sessions.
func InitSessionCache() {
	SessionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionClient returns the session Redis client.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		InitSessionCache()
	}
	return SessionClient
}

// InitOTPCache initializes the Redis client for verification codes.
func InitOTPCache() {
	OTPClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisOTPDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := OTPClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (OTP): %v", err)
	}
}

// GetOTPClient returns the OTP Redis client.
func GetOTPClient() *redis.Client {
	if OTPClient == nil {
		InitOTPCache()
	}
	return OTPClient
}

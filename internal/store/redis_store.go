package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Channel  string // pub/sub channel for room count updates
}

// redisStore implements PresenceStore using Redis.
type redisStore struct {
	client  *redis.Client
	channel string
}

// Redis key patterns:
// signal:room:{room_id}:members   SET<client_id>  - connections in room
// signal:client:{client_id}       STRING<room_id> - client -> room mapping

func roomMembersKey(roomID string) string {
	return fmt.Sprintf("signal:room:%s:members", roomID)
}

func clientRoomKey(clientID string) string {
	return fmt.Sprintf("signal:client:%s", clientID)
}

// NewRedisStore creates a new Redis-backed presence mirror.
func NewRedisStore(cfg RedisConfig) (PresenceStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	channel := cfg.Channel
	if channel == "" {
		channel = "signal:room_updates"
	}

	return &redisStore{
		client:  client,
		channel: channel,
	}, nil
}

func (s *redisStore) AddMember(ctx context.Context, roomID, clientID string) error {
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, roomMembersKey(roomID), clientID)
	pipe.Set(ctx, clientRoomKey(clientID), roomID, 0)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) RemoveMember(ctx context.Context, roomID, clientID string) error {
	pipe := s.client.TxPipeline()
	pipe.SRem(ctx, roomMembersKey(roomID), clientID)
	pipe.Del(ctx, clientRoomKey(clientID))
	_, err := pipe.Exec(ctx)
	return err
}

type roomUpdatePayload struct {
	RoomID string `json:"room_id"`
	Count  int    `json:"count"`
}

func (s *redisStore) PublishRoomUpdate(ctx context.Context, roomID string, count int) error {
	data, err := json.Marshal(roomUpdatePayload{RoomID: roomID, Count: count})
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, s.channel, string(data)).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const dailyTTL = 7 * 24 * time.Hour

func FoodRatingsKey(foodID string) string {
	return fmt.Sprintf("food:%s:ratings", foodID)
}

func DailyFoodsKey(day string) string {
	return fmt.Sprintf("analytics:daily:%s:foods", day)
}

func DailyRevenueKey(day string) string {
	return fmt.Sprintf("analytics:daily:%s:revenue", day)
}

// Store keeps the projections in Redis. When db is set, the food's running
// average is also written back to the foods table.
type Store struct {
	db  *sql.DB
	rdb *redis.Client
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{
		db:  db,
		rdb: rdb,
	}
}

// RecordRating bumps the bucket for rating along with the count and sum.
func (s *Store) RecordRating(ctx context.Context, foodID string, rating int) error {
	key := FoodRatingsKey(foodID)
	var count, sum *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, strconv.Itoa(rating), 1)
		count = pipe.HIncrBy(ctx, key, "count", 1)
		sum = pipe.HIncrBy(ctx, key, "sum", int64(rating))
		return nil
	})
	if err != nil {
		return err
	}

	if s.db == nil {
		return nil
	}
	avg := math.Round(float64(sum.Val())/float64(count.Val())*10) / 10
	if _, err := s.db.ExecContext(ctx, `UPDATE foods SET rating = $1 WHERE id = $2`, avg, foodID); err != nil {
		return fmt.Errorf("update food rating: %w", err)
	}
	return nil
}

func (s *Store) IncrFoodOrders(ctx context.Context, day, foodID string) error {
	key := DailyFoodsKey(day)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, key, 1, foodID)
		pipe.Expire(ctx, key, dailyTTL)
		return nil
	})
	return err
}

func (s *Store) AddRevenue(ctx context.Context, day string, amount int64) error {
	key := DailyRevenueKey(day)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.IncrBy(ctx, key, amount)
		pipe.Expire(ctx, key, dailyTTL)
		return nil
	})
	return err
}

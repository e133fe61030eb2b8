package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
)

const (
	tallyKeyPrefix = "predict:tally:"

	tallyTTL = 1 * time.Hour
)

type predictionTally struct {
	client *redis.Client
}

func NewPredictionTally(client *redis.Client) domain.PredictionTally {
	return &predictionTally{
		client: client,
	}
}

func (r *predictionTally) Increment(ctx context.Context, minuteKey string, outcome domain.Outcome) error {
	key := tallyKeyPrefix + minuteKey

	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, key, outcome.String(), 1)
	pipe.Expire(ctx, key, tallyTTL)

	_, err := pipe.Exec(ctx)
	return err
}

func (r *predictionTally) Counts(ctx context.Context, minuteKey string) (map[domain.Outcome]int, error) {
	key := tallyKeyPrefix + minuteKey

	raw, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.Outcome]int, len(raw))
	for field, value := range raw {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidTallyData, field, value)
		}
		counts[domain.Outcome(field)] = n
	}

	return counts, nil
}

package repository

import "errors"

var (
	ErrRedisConnection  = errors.New("redis connection error")
	ErrInvalidTallyData = errors.New("invalid tally data")
)

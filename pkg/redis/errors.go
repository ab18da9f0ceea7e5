package redis

import "errors"

var (
	ErrEmptyConnectionURL           = errors.New("redis.errors.empty_connection_url")
	ErrFailedToParseRedisConnString = errors.New("redis.errors.failed_to_parse_connection_string")
	ErrRedisNotReady                = errors.New("redis.errors.not_ready")
	ErrHealthcheckFailed            = errors.New("redis.errors.healthcheck_failed")
)

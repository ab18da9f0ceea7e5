// Package redis establishes go-redis client connections configured from the
// environment, with retry on startup and a health check closure. The client
// backs the shared entitlement snapshot cache.
package redis

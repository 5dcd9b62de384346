// Package infra holds the concrete implementations behind the domain
// contracts: an in-memory store for development and tests, a Postgres
// store on pgx for real deployments, the token-bucket limiter store,
// and the throttle stats sinks (memory, Redis).
package infra

package models

import "time"

// SystemMetrics is the JSON summary served next to the Prometheus endpoint.
type SystemMetrics struct {
	CacheHitRatio             float64   `json:"cacheHitRatio"`
	CacheHits                 uint64    `json:"cacheHits"`
	CacheMisses               uint64    `json:"cacheMisses"`
	RequestsTotal             uint64    `json:"requestsTotal"`
	AverageRequestDurationMs  float64   `json:"averageRequestDurationMs"`
	UpstreamRequests          uint64    `json:"upstreamRequests"`
	UpstreamFailures          uint64    `json:"upstreamFailures"`
	AverageUpstreamDurationMs float64   `json:"averageUpstreamDurationMs"`
	StaleResponses            uint64    `json:"staleResponses"`
	ActiveSessions            int64     `json:"activeSessions"`
	Goroutines                int       `json:"goroutines"`
	GeneratedAt               time.Time `json:"generatedAt"`
}

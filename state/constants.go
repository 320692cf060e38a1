package state

import "time"

const (
	INF = ^(uint32)(0)
	// INFM is the largest finite metric
	INFM = INF - 1
)

var (
	// DefaultService is the destination announced by path-vector origins when none is configured
	DefaultService = ServiceId("network_x")
	// HopCost is the per-hop metric of the distance-vector and path-vector models
	HopCost = (uint32)(1)
	// SpfCacheTTL bounds how long a computed shortest path tree is reused
	SpfCacheTTL = time.Minute * 5
	// TraceBufferSize is the number of trace events buffered before new ones are dropped
	TraceBufferSize = 1024
)

package ports

import "time"

const (
	DefaultPageSize       = 5                // Rows per dashboard page
	UpstreamTimeout       = 15 * time.Second // Bound on a single gateway -> upstream call
	ProbeTimeout          = 10 * time.Second // Bound used by the ancillary probe tool
	MaxSignatureClockSkew = 5 * time.Minute  // Accepted timestamp drift on signed requests
)

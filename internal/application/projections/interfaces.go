package projections

import (
	"time"

	"octofit/internal/application/fetch"
)

// Endpoints resolves collection URLs for backend resources.
type Endpoints interface {
	Endpoint(resource string) string
}

// ViewDeps holds dependencies shared by every view query.
type ViewDeps struct {
	Getter    fetch.Getter
	Endpoints Endpoints
}

// ViewQuery carries per-request rendering options.
// Wait bounds how long a page waits for its data; zero waits until the read settles.
type ViewQuery struct {
	Wait time.Duration
}

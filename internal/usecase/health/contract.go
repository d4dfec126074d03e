package health

import "context"

// DocumentCounter reports the store size; a failing Count marks storage unhealthy.
type DocumentCounter interface {
	Count(ctx context.Context) (int, error)
}

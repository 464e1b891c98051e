package audit

import (
	"context"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
	apperrors "github.com/mjosborne1/check-sparked-server/internal/errors"
)

// ResourceCounter tallies live instances per tracked resource type via
// count-only queries.
type ResourceCounter struct {
	client  ports.FHIRClient
	console ports.Console
	logger  ports.Logger
	types   []domain.ResourceType
}

func NewResourceCounter(client ports.FHIRClient, console ports.Console, logger ports.Logger, types []domain.ResourceType) *ResourceCounter {
	return &ResourceCounter{
		client:  client,
		console: console,
		logger:  logger,
		types:   types,
	}
}

// Run returns exactly one entry per tracked type. A nil entry means the
// count could not be obtained: the type is unsupported by the server (404)
// or the query failed. Never conflated with a true zero.
func (c *ResourceCounter) Run(ctx context.Context) domain.ResourceCountMap {
	counts := make(domain.ResourceCountMap, len(c.types))

	for _, rt := range c.types {
		total, err := c.client.CountResources(ctx, rt)
		if err != nil {
			if apperrors.Is(err, apperrors.CodeResourceUnsupported) {
				c.logger.Debugf(ctx, "resource type %s not supported by server", rt)
			} else {
				c.logger.Warnf(ctx, "count query for %s failed: %v", rt, err)
				c.console.Printf("[!] %s: count query failed: %v\n", rt, err)
			}
			counts[rt] = nil
			continue
		}
		n := total
		counts[rt] = &n
	}
	return counts
}

package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"bloodbank/internal/domain"
)

// RequestService is the read side of the request registry; requests are
// created through HospitalService.CreateRequest.
type RequestService struct {
	c *Collections
}

// NewRequestService creates a RequestService over the given collections.
func NewRequestService(c *Collections) *RequestService {
	return &RequestService{c: c}
}

// List returns every request in creation order.
func (s *RequestService) List(ctx context.Context) ([]domain.Request, error) {
	return s.c.requests(ctx)
}

// NextRequestID returns "REQ-<millis>" for now, advanced past the largest
// millisecond suffix already issued so identifiers never collide even when
// two requests land in the same millisecond.
func NextRequestID(existing []domain.Request, now time.Time) string {
	ms := now.UnixMilli()
	for _, r := range existing {
		suffix, ok := strings.CutPrefix(r.ID, domain.RequestIDPrefix)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			continue
		}
		if n >= ms {
			ms = n + 1
		}
	}
	return domain.RequestIDPrefix + strconv.FormatInt(ms, 10)
}

package http

import (
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/service"
)

type Handler struct {
	services *service.Services

	// authLimiter throttles register and login per client IP.
	authLimiter *keyedRateLimiter
	// trustProxy takes the client IP from forwarding headers.
	trustProxy bool

	logger *logger.Logger
}

// Option customises a [Handler].
type Option func(*Handler)

// WithAuthRateLimit limits register and login calls to rps requests per
// second per client IP with the given burst. A non-positive rps disables
// the limit.
func WithAuthRateLimit(rps float64, burst int) Option {
	return func(h *Handler) {
		if rps > 0 {
			h.authLimiter = newKeyedRateLimiter(rps, burst)
		}
	}
}

// WithTrustedProxy makes the handler take the client address from
// X-Forwarded-For / X-Real-IP. Use it only behind a proxy that sets them.
func WithTrustedProxy(trusted bool) Option {
	return func(h *Handler) {
		h.trustProxy = trusted
	}
}

func NewHandler(services *service.Services, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().
		Bool("auth_rate_limit", h.authLimiter != nil).
		Bool("trust_proxy", h.trustProxy).
		Msg("http handler created")
	return h
}

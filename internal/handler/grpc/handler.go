// Package grpc exposes the study-marks server over gRPC. Only the standard
// grpc.health.v1 service is served; the bookmark API itself is REST.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/service"
)

// ServiceName is the health check service name of the bookmark API.
const ServiceName = "studymarks.Bookmarks"

// Handler is the root gRPC transport handler.
//
// It stores references to the service layer and structured logger so that
// gRPC method handlers can delegate business logic and emit consistent logs.
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// Init builds a gRPC server with the health service registered and every
// service marked as serving.
func (h *Handler) Init() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(h.withLogging))
	healthpb.RegisterHealthServer(srv, h.health)

	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Shutdown flips every service to NOT_SERVING so that health watchers see
// the server going away before connections are closed.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := next(ctx, req)

	h.logger.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

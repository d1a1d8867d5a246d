package grpc_control

import (
	"fmt"
	"net"
	"sync"

	"corona-observer/src/logger"
	"corona-observer/src/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-checked service. It reports SERVING once a
// dataset has been loaded.
const ServiceName = "corona.Dashboard"

// ControlService exposes the standard gRPC health protocol for the dashboard.
type ControlService struct {
	Config *models.MConfig
	Logger *logger.Logger
	server *grpc.Server
	health *health.Server
	mu     sync.Mutex
}

// NewControlService creates a new instance of ControlService
func NewControlService(cfg *models.MConfig, log *logger.Logger) *ControlService {
	s := &ControlService{
		Config: cfg,
		Logger: log,
		server: grpc.NewServer(),
		health: health.NewServer(),
	}

	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)

	// Until the first dataset arrives the dashboard is up but not ready.
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// -----------------------------------------------------------------------------

// Start listens on the configured address and serves until Stop.
func (s *ControlService) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Grpc.Host, s.Config.Grpc.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC on %s: %w", addr, err)
	}
	s.Logger.Info("Starting gRPC health server on %s", addr)
	return s.Serve(lis)
}

// Serve blocks serving lis.
func (s *ControlService) Serve(lis net.Listener) error {
	if err := s.server.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("failed to serve gRPC: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// SetServing flips the dashboard service status.
func (s *ControlService) SetServing(serving bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
}

// UpdateDataset marks the service ready once a dataset exists.
func (s *ControlService) UpdateDataset(ds *models.MDataset) {
	s.SetServing(ds != nil)
}

// -----------------------------------------------------------------------------

// Stop marks every service NOT_SERVING and drains in-flight calls.
func (s *ControlService) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

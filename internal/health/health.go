// Package health runs the gRPC health endpoint next to an HTTP service.
package health

import (
	"fmt"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	lis    net.Listener
}

// Listen binds addr and registers the standard health service with service
// marked SERVING.
func Listen(addr, service string) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	gs := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	reflection.Register(gs)
	hs.SetServingStatus(service, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return &Server{grpc: gs, health: hs, lis: lis}, nil
}

func (s *Server) Addr() string { return s.lis.Addr().String() }

// Serve blocks until Stop is called.
func (s *Server) Serve() error {
	log.Printf("[health] grpc health listening on %s", s.Addr())
	return s.grpc.Serve(s.lis)
}

// Stop flips every service to NOT_SERVING and drains the server.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

package server

import (
	"context"
	"fmt"
	"net"

	"github.com/MKhiriev/go-blog/internal/config"
	myGRPC "github.com/MKhiriev/go-blog/internal/handler/grpc"
	"github.com/MKhiriev/go-blog/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	address string
	server  *grpc.Server

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryLoggingInterceptor))
	handler.Register(server)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", g.address)
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", g.address, err)
	}
	return ln, nil
}

func (g *grpcServer) serve(ln net.Listener) error {
	g.logger.Info().Str("address", ln.Addr().String()).Msg("gRPC server listening")
	g.handler.SetServing()
	if err := g.server.Serve(ln); err != nil {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}
	return nil
}

// Shutdown reports NOT_SERVING and then stops gracefully. The server is
// stopped forcibly if ctx ends first.
func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		return fmt.Errorf("gRPC server Shutdown: %w", ctx.Err())
	}
}

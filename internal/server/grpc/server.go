// Package grpc exposes the vault dispatcher over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/mod7ex/chrome-ext-test/internal/logging"
	"github.com/mod7ex/chrome-ext-test/internal/netx"
	"github.com/mod7ex/chrome-ext-test/internal/protocol"
	"google.golang.org/grpc"
)

// Handler processes one protocol request; *vault.Dispatcher implements it.
type Handler interface {
	Handle(ctx context.Context, req protocol.Request) (protocol.Response, error)
}

type GRPCServer struct {
	address string
	handler Handler
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, h Handler) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		handler: h,
	}
}

// Run listens on the configured address (TCP or unix socket) and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := netx.Listen(s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully, letting in-flight dispatches finish.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	srv.RegisterService(&ServiceDesc, s)

	served := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-served:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	err := srv.Serve(lis)
	close(served)
	<-stopped

	return err
}

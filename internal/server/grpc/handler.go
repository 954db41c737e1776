package grpc

import (
	"context"
	"errors"

	"github.com/mod7ex/chrome-ext-test/internal/common"
	"github.com/mod7ex/chrome-ext-test/internal/protocol"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Dispatch(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := protocol.RequestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := s.handler.Handle(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}

	return resp.ToStruct(), nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrUnknownAction), errors.Is(err, common.ErrMalformedMessage):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrNotInitialized):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		// storage details stay in the server log
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

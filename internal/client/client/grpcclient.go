package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mod7ex/chrome-ext-test/internal/common"
	"github.com/mod7ex/chrome-ext-test/internal/logging"
	"github.com/mod7ex/chrome-ext-test/internal/protocol"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	gs "github.com/mod7ex/chrome-ext-test/internal/server/grpc"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	logger      logging.Logger
}

// NewGRPCClient prepares a lazy connection to endpointURL. Extra dial
// options are appended after the defaults.
func NewGRPCClient(endpointURL string, timeout time.Duration, logger logging.Logger, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout, logger: logger.With("module", "grpc_client")}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.timeoutInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

// timeoutInterceptor applies the configured deadline when the caller has
// not set one.
func (c *GRPCClient) timeoutInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) Send(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, common.RequestIDHeaderName, req.ID)

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, gs.DispatchMethod, req.ToStruct(), out); err != nil {
		c.logger.Debug(ctx, "dispatch failed", "action", req.Action, "request_id", req.ID, "error", err)
		return protocol.Response{}, c.mapError(err)
	}

	resp, err := protocol.ResponseFromStruct(out)
	if err != nil {
		return protocol.Response{}, err
	}
	return checkReply(req, resp)
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	if err := c.conn.Invoke(ctx, gs.PingMethod, &emptypb.Empty{}, new(emptypb.Empty)); err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.FailedPrecondition:
		return common.ErrNotInitialized
	case codes.InvalidArgument:
		if strings.Contains(st.Message(), common.ErrMalformedMessage.Error()) {
			return fmt.Errorf("%w: %s", common.ErrMalformedMessage, st.Message())
		}
		return fmt.Errorf("%w: %s", common.ErrUnknownAction, st.Message())
	case codes.Canceled:
		return errors.Join(context.Canceled, err)
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

package oauth2client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// UnaryClientInterceptor returns a gRPC unary client interceptor that adds the cached
// access token to the outgoing metadata as "authorization: Bearer <token>".
//
// Unlike Decorate, the interceptor does not panic when no token has been fetched; the RPC
// is aborted with an error wrapping ErrNoAccessToken instead.
//
// Usage:
//
//	if err := client.FetchAccessToken(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	conn, err := grpc.NewClient(
//	    "pubsub.googleapis.com:443",
//	    grpc.WithUnaryInterceptor(client.UnaryClientInterceptor()),
//	)
func (c *Client) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		token, err := c.bearer()
		if err != nil {
			return fmt.Errorf("oauth2: failed to get token: %w", err)
		}

		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns a gRPC stream client interceptor that adds the cached
// access token to the outgoing metadata as "authorization: Bearer <token>".
// Stream creation fails with an error wrapping ErrNoAccessToken when no token has been fetched.
func (c *Client) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		token, err := c.bearer()
		if err != nil {
			return nil, fmt.Errorf("oauth2: failed to get token: %w", err)
		}

		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

		return streamer(ctx, desc, cc, method, opts...)
	}
}

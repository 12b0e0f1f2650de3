package oauth2client

import (
	"context"
	"errors"
	"testing"

	"github.com/AmmannChristian/go-gcpauth/testutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func assertBearerMetadata(t *testing.T, ctx context.Context, want string) {
	t.Helper()

	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		t.Error("metadata not found in context")
		return
	}

	authHeaders := md.Get("authorization")
	if len(authHeaders) == 0 {
		t.Error("authorization header not found")
		return
	}
	if authHeaders[0] != want {
		t.Errorf("expected %q, got %q", want, authHeaders[0])
	}
}

func TestClient_UnaryClientInterceptor(t *testing.T) {
	c, _ := newTestClient(t, testutil.StaticJSONResponse(tokenBody("grpc-token")))
	if err := c.FetchAccessToken(context.Background()); err != nil {
		t.Fatalf("FetchAccessToken failed: %v", err)
	}

	interceptor := c.UnaryClientInterceptor()
	if interceptor == nil {
		t.Fatal("interceptor should not be nil")
	}

	called := false
	mockInvoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		called = true
		assertBearerMetadata(t, ctx, "Bearer grpc-token")
		return nil
	}

	err := interceptor(context.Background(), "/google.pubsub.v1.Publisher/Publish", nil, nil, nil, mockInvoker)
	if err != nil {
		t.Errorf("interceptor failed: %v", err)
	}

	if !called {
		t.Error("invoker was not called")
	}
}

func TestClient_StreamClientInterceptor(t *testing.T) {
	c, _ := newTestClient(t, testutil.StaticJSONResponse(tokenBody("grpc-token")))
	if err := c.FetchAccessToken(context.Background()); err != nil {
		t.Fatalf("FetchAccessToken failed: %v", err)
	}

	interceptor := c.StreamClientInterceptor()
	if interceptor == nil {
		t.Fatal("interceptor should not be nil")
	}

	called := false
	mockStreamer := func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		called = true
		assertBearerMetadata(t, ctx, "Bearer grpc-token")
		return nil, nil
	}

	_, err := interceptor(context.Background(), &grpc.StreamDesc{}, nil, "/google.pubsub.v1.Subscriber/StreamingPull", mockStreamer)
	if err != nil {
		t.Errorf("interceptor failed: %v", err)
	}

	if !called {
		t.Error("streamer was not called")
	}
}

func TestClient_Interceptors_NoToken(t *testing.T) {
	c := NewClient(testConfig("https://auth.example.com/token"))

	unaryInterceptor := c.UnaryClientInterceptor()
	err := unaryInterceptor(context.Background(), "/test", nil, nil, nil, func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		t.Error("invoker should not be called without a token")
		return nil
	})
	if !errors.Is(err, ErrNoAccessToken) {
		t.Errorf("expected ErrNoAccessToken from unary interceptor, got %v", err)
	}

	streamInterceptor := c.StreamClientInterceptor()
	_, err = streamInterceptor(context.Background(), &grpc.StreamDesc{}, nil, "/test", func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		t.Error("streamer should not be called without a token")
		return nil, nil
	})
	if !errors.Is(err, ErrNoAccessToken) {
		t.Errorf("expected ErrNoAccessToken from stream interceptor, got %v", err)
	}
}

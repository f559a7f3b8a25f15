package grpcengine

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/user/openperf-gateway/internal/entity"
	"github.com/user/openperf-gateway/internal/repository"
)

// Client talks to the engine over a single shared gRPC connection. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	conn   grpc.ClientConnInterface
	schema *Schema
}

var _ repository.EngineRepository = (*Client)(nil)

// NewClient wraps an established connection.
func NewClient(conn grpc.ClientConnInterface, schema *Schema) *Client {
	return &Client{conn: conn, schema: schema}
}

// Dial creates the long-lived engine connection. No I/O happens until the first call.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(UnaryClientInterceptor()),
	}
	conn, err := grpc.NewClient(addr, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial engine at %s: %w", addr, err)
	}
	return conn, nil
}

// SubmitPage sends the canonical page and returns the response fields as decoded JSON.
func (c *Client) SubmitPage(ctx context.Context, page *entity.Page) (entity.Payload, error) {
	resp, err := c.invoke(ctx, methodSubmitPage, func(req protoreflect.Message) error {
		fd, err := lookupField(req, "page", protoreflect.MessageKind)
		if err != nil {
			return err
		}
		return encodePage(req.Mutable(fd).Message(), page)
	})
	if err != nil {
		return nil, err
	}

	var payload entity.Payload
	if err := decodeResponse(resp, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", repository.ErrInvalidResponse, methodSubmitPage, err)
	}
	return payload, nil
}

// RunRenderPipeline triggers rendering. The engine's reply carries nothing of interest.
func (c *Client) RunRenderPipeline(ctx context.Context, pageID string) error {
	_, err := c.invoke(ctx, methodRunRenderPipeline, func(req protoreflect.Message) error {
		return setString(req, "page_id", pageID)
	})
	return err
}

func (c *Client) AnalyzeAccessibility(ctx context.Context, pageID string) ([]entity.AccessibilityIssue, error) {
	resp, err := c.invoke(ctx, methodAnalyzeAccessibility, func(req protoreflect.Message) error {
		return setString(req, "page_id", pageID)
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Issues []entity.AccessibilityIssue `json:"issues"`
	}
	if err := decodeResponse(resp, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", repository.ErrInvalidResponse, methodAnalyzeAccessibility, err)
	}
	return out.Issues, nil
}

func (c *Client) GetMetrics(ctx context.Context) ([]entity.MetricSample, error) {
	resp, err := c.invoke(ctx, methodGetMetrics, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Samples []entity.MetricSample `json:"samples"`
	}
	if err := decodeResponse(resp, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", repository.ErrInvalidResponse, methodGetMetrics, err)
	}
	return out.Samples, nil
}

func (c *Client) invoke(ctx context.Context, method string, build func(req protoreflect.Message) error) (*dynamicpb.Message, error) {
	md := c.schema.Method(method)
	if md == nil {
		return nil, fmt.Errorf("schema: unknown method %s", method)
	}

	req := dynamicpb.NewMessage(md.Input())
	if build != nil {
		if err := build(req); err != nil {
			return nil, fmt.Errorf("encode %s request: %w", method, err)
		}
	}

	resp := dynamicpb.NewMessage(md.Output())
	if err := c.conn.Invoke(ctx, c.schema.FullMethod(method), req, resp); err != nil {
		st := status.Convert(err)
		return nil, &repository.CallError{
			Method:  method,
			Code:    st.Code().String(),
			Message: st.Message(),
			Err:     err,
		}
	}
	return resp, nil
}

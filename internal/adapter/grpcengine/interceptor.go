package grpcengine

import (
	"context"
	"path"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/user/openperf-gateway/pkg/metrics"
	"github.com/user/openperf-gateway/pkg/requestid"
)

// UnaryClientInterceptor forwards the request id as metadata and records
// per-method call counts and latency.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	metrics.Init()
	mdKey := strings.ToLower(requestid.Header)

	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if id := requestid.FromContext(ctx); id != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, mdKey, id)
		}

		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)

		rpc := path.Base(method)
		metrics.BackendCallDuration.WithLabelValues(rpc).Observe(time.Since(start).Seconds())
		metrics.BackendCallsTotal.WithLabelValues(rpc, status.Code(err).String()).Inc()
		return err
	}
}

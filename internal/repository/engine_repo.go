package repository

import (
	"context"

	"github.com/user/openperf-gateway/internal/entity"
)

// EngineRepository defines the contract for the remote rendering/analysis engine.
// Implementations are long-lived and safe for concurrent use.
type EngineRepository interface {
	// SubmitPage hands a canonical page to the engine and returns the raw
	// response fields. A nil payload means the engine answered without one.
	SubmitPage(ctx context.Context, page *entity.Page) (entity.Payload, error)
	// RunRenderPipeline starts the render pipeline for a stored page.
	RunRenderPipeline(ctx context.Context, pageID string) error
	// AnalyzeAccessibility returns the accessibility findings for a stored page.
	AnalyzeAccessibility(ctx context.Context, pageID string) ([]entity.AccessibilityIssue, error)
	// GetMetrics returns the engine's full current sample set.
	GetMetrics(ctx context.Context) ([]entity.MetricSample, error)
}

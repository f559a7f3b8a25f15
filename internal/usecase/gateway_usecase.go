package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/openperf-gateway/internal/entity"
	"github.com/user/openperf-gateway/internal/repository"
	"github.com/user/openperf-gateway/pkg/requestid"
)

var (
	// ErrInvalidPage marks a submission rejected before reaching the engine.
	ErrInvalidPage = errors.New("invalid page")
	// ErrInvalidResponse means the engine call succeeded without a usable payload.
	ErrInvalidResponse = repository.ErrInvalidResponse
	// ErrEmptyPageID means no known field of the submit response held a page id.
	ErrEmptyPageID = errors.New("backend returned empty identifier")
)

// Gateway translates client requests into engine calls and back.
type Gateway interface {
	SubmitPage(ctx context.Context, draft *entity.PageDraft) (string, error)
	RenderPage(ctx context.Context, pageID string) error
	Accessibility(ctx context.Context, pageID string) ([]entity.AccessibilityIssue, error)
	Metrics(ctx context.Context) ([]entity.MetricSample, error)
}

type gatewayUseCase struct {
	engine repository.EngineRepository
}

// NewGateway creates a Gateway backed by the given engine client.
func NewGateway(engine repository.EngineRepository) Gateway {
	return &gatewayUseCase{engine: engine}
}

func (uc *gatewayUseCase) SubmitPage(ctx context.Context, draft *entity.PageDraft) (string, error) {
	if err := ValidatePage(draft); err != nil {
		return "", err
	}
	page := NormalizePage(draft)

	payload, err := uc.engine.SubmitPage(ctx, page)
	if err != nil {
		logCallFailure(ctx, "SubmitPage", err)
		return "", err
	}
	if payload == nil {
		slog.Error("Backend returned no payload", "rpc", "SubmitPage", "request_id", requestid.FromContext(ctx))
		return "", ErrInvalidResponse
	}
	slog.Debug("SubmitPage response", "payload", payload, "request_id", requestid.FromContext(ctx))

	pageID, err := FirstNonEmpty(payload, pageIDFields...)
	if err != nil {
		slog.Error("Backend response carries no page id",
			"fields", pageIDFields,
			"payload", payload,
			"request_id", requestid.FromContext(ctx),
		)
		return "", fmt.Errorf("%w: %v", ErrEmptyPageID, err)
	}

	slog.Info("Page submitted", "page_id", pageID, "url", page.URL, "request_id", requestid.FromContext(ctx))
	return pageID, nil
}

func (uc *gatewayUseCase) RenderPage(ctx context.Context, pageID string) error {
	if err := uc.engine.RunRenderPipeline(ctx, pageID); err != nil {
		logCallFailure(ctx, "RunRenderPipeline", err, "page_id", pageID)
		return err
	}
	return nil
}

func (uc *gatewayUseCase) Accessibility(ctx context.Context, pageID string) ([]entity.AccessibilityIssue, error) {
	issues, err := uc.engine.AnalyzeAccessibility(ctx, pageID)
	if err != nil {
		logCallFailure(ctx, "AnalyzeAccessibility", err, "page_id", pageID)
		return nil, err
	}
	if issues == nil {
		issues = []entity.AccessibilityIssue{}
	}
	slog.Debug("AnalyzeAccessibility response", "page_id", pageID, "issues", len(issues), "request_id", requestid.FromContext(ctx))
	return issues, nil
}

func (uc *gatewayUseCase) Metrics(ctx context.Context) ([]entity.MetricSample, error) {
	samples, err := uc.engine.GetMetrics(ctx)
	if err != nil {
		logCallFailure(ctx, "GetMetrics", err)
		return nil, err
	}
	if samples == nil {
		samples = []entity.MetricSample{}
	}
	return samples, nil
}

func logCallFailure(ctx context.Context, rpc string, err error, attrs ...any) {
	attrs = append(attrs, "rpc", rpc, "error", err, "request_id", requestid.FromContext(ctx))
	var callErr *repository.CallError
	if errors.As(err, &callErr) {
		attrs = append(attrs, "code", callErr.Code)
	}
	slog.Error("Backend call failed", attrs...)
}

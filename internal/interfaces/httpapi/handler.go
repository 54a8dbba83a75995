package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/team-resolver/internal/platform/logging"
	"github.com/riskibarqy/team-resolver/internal/usecase"
)

// ReadinessCheck reports whether downstream dependencies can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Handler struct {
	resolutionService *usecase.ResolutionService
	reportService     *usecase.ReportService
	readiness         ReadinessCheck
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	resolutionService *usecase.ResolutionService,
	reportService *usecase.ReportService,
	readiness ReadinessCheck,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		resolutionService: resolutionService,
		reportService:     reportService,
		readiness:         readiness,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.readiness != nil {
		if err := h.readiness(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

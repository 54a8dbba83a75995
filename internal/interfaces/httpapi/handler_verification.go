package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/team-resolver/internal/usecase"
)

type verificationRequest struct {
	SourceName  string `json:"sourceName" validate:"required,max=200"`
	MatchedName string `json:"matchedName" validate:"required,max=200"`
	Accepted    *bool  `json:"accepted" validate:"required"`
	Context     string `json:"context" validate:"max=100"`
}

type verificationDTO struct {
	SourceName  string `json:"sourceName"`
	MatchedName string `json:"matchedName"`
	Accepted    bool   `json:"accepted"`
}

func (h *Handler) VerifyMapping(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VerifyMapping")
	defer span.End()

	var req verificationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	accepted := *req.Accepted
	if err := h.resolutionService.Verify(ctx, req.SourceName, req.MatchedName, accepted, req.Context); err != nil {
		h.logger.WarnContext(ctx, "verify mapping failed",
			"source_name", req.SourceName,
			"matched_name", req.MatchedName,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, verificationDTO{
		SourceName:  req.SourceName,
		MatchedName: req.MatchedName,
		Accepted:    accepted,
	})
}

package httpadapter

import (
	"context"
	"log/slog"

	"beastypage/contexts/sharing/slug-registry/application/commands"
	"beastypage/contexts/sharing/slug-registry/application/queries"
	"beastypage/contexts/sharing/slug-registry/domain/entities"
	httptransport "beastypage/contexts/sharing/slug-registry/transport/http"
)

type Handler struct {
	Create commands.CreateShareUseCase
	Get    queries.GetShareUseCase
	Logger *slog.Logger
}

// CreateShareHandler godoc
// @Summary Create a share slug
// @Description Stores a builder payload under a generated or requested slug.
// @Tags slug-registry
// @Accept json
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Param request body httptransport.CreateShareRequest true "Share payload"
// @Success 201 {object} httptransport.CreateShareResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 429 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /v1/shares [post]
func (h Handler) CreateShareHandler(
	ctx context.Context,
	req httptransport.CreateShareRequest,
) (httptransport.CreateShareResponse, error) {
	result, err := h.Create.CreateShare(ctx, commands.CreateShareCommand{
		Payload:       req.Payload,
		RequestedSlug: req.Slug,
	})
	if err != nil {
		return httptransport.CreateShareResponse{}, err
	}
	return httptransport.CreateShareResponse{
		Slug: result.Slug,
		ID:   result.ID,
	}, nil
}

// GetShareHandler godoc
// @Summary Resolve a share slug
// @Tags slug-registry
// @Produce json
// @Param slug path string true "Share slug"
// @Success 200 {object} httptransport.ShareResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/shares/{slug} [get]
func (h Handler) GetShareHandler(ctx context.Context, slug string) (httptransport.ShareResponse, bool, error) {
	record, found, err := h.Get.GetShare(ctx, slug)
	if err != nil || !found {
		return httptransport.ShareResponse{}, false, err
	}
	return mapShare(record), true, nil
}

func mapShare(record entities.ShareRecord) httptransport.ShareResponse {
	return httptransport.ShareResponse{
		Slug:      record.Slug,
		Payload:   record.Payload,
		ID:        record.ID,
		CreatedAt: record.CreatedAt.UnixMilli(),
	}
}

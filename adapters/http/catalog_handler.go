package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoavn/devfolio/internal/application/usecase/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
	"github.com/khoavn/devfolio/pkg/logger"
)

type CatalogHandler struct {
	searchUseCase *profileUC.SearchCatalogUseCase
	logger        logger.Logger
}

func NewCatalogHandler(searchUC *profileUC.SearchCatalogUseCase, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{searchUseCase: searchUC, logger: log}
}

// SearchCatalog handles GET /profiles with query-string filters:
// search, skills (repeatable), open_to_work, verification, sort_by,
// sort_order, page, page_size.
func (h *CatalogHandler) SearchCatalog(c *gin.Context) {
	input := profileUC.SearchCatalogInput{
		Search:    c.Query("search"),
		Skills:    c.QueryArray("skills"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if raw := c.Query("open_to_work"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.Error(apperror.NewInvalidInput("invalid open_to_work value", err))
			return
		}
		input.OpenToWork = &v
	}

	if raw := c.Query("verification"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(apperror.NewInvalidInput("invalid verification value", err))
			return
		}
		input.Verification = &v
	}

	var err error
	if input.PageNumber, err = parsePositiveInt(c.Query("page")); err != nil {
		c.Error(apperror.NewInvalidInput("invalid page value", err))
		return
	}
	if input.PageSize, err = parsePositiveInt(c.Query("page_size")); err != nil {
		c.Error(apperror.NewInvalidInput("invalid page_size value", err))
		return
	}

	output, err := h.searchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]ProfileSummaryDTO, len(output.Profiles))
	for i, p := range output.Profiles {
		items[i] = ToProfileSummaryDTO(p)
	}

	c.JSON(http.StatusOK, CatalogPageDTO{
		Items:      items,
		TotalCount: output.TotalCount,
		PageNumber: output.PageNumber,
		PageSize:   output.PageSize,
		TotalPages: output.TotalPages,
	})
}

func parsePositiveInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainfaq "voxassist/call-api/internal/domain/faq"
	"voxassist/call-api/internal/interfaces/httpserver/handlers"
	"voxassist/call-api/internal/interfaces/httpserver/requests"
	"voxassist/call-api/internal/interfaces/httpserver/responses"
	faqres "voxassist/call-api/internal/interfaces/httpserver/responses/faq"
	"voxassist/call-api/internal/utils/platformerrors"
)

// RegisterFAQRoutes registers the knowledge-base routes.
func RegisterFAQRoutes(router gin.IRoutes, handler *handlers.FAQHandler) {
	router.GET("/faqs/search", searchFAQs(handler))
	router.GET("/faqs", listFAQs(handler))
	router.POST("/faqs", addFAQ(handler))
}

func searchFAQs(handler *handlers.FAQHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "query parameter q is required")
			return
		}
		limit := queryInt(c, "limit", 5)

		results, err := handler.Search(c.Request.Context(), query, limit)
		if err != nil {
			responses.HandleError(c, err, "failed to search faqs")
			return
		}

		c.JSON(http.StatusOK, faqres.NewSearchResponse(query, results))
	}
}

func listFAQs(handler *handlers.FAQHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		limit := queryInt(c, "limit", 50)

		faqs, err := handler.List(c.Request.Context(), category, limit)
		if err != nil {
			responses.HandleError(c, err, "failed to list faqs")
			return
		}

		c.JSON(http.StatusOK, faqres.NewListResponse(category, faqs))
	}
}

func addFAQ(handler *handlers.FAQHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.AddFAQRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "question and answer are required")
			return
		}

		entry, err := handler.Add(c.Request.Context(), &domainfaq.FAQ{
			Question: req.Question,
			Answer:   req.Answer,
			Category: req.Category,
		})
		if err != nil {
			responses.HandleError(c, err, "failed to add faq")
			return
		}

		c.JSON(http.StatusCreated, faqres.NewAddResponse(entry))
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

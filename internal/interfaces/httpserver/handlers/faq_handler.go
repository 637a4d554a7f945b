package handlers

import (
	"context"

	"voxassist/call-api/internal/domain/faq"
)

// FAQHandler handles knowledge-base HTTP requests.
type FAQHandler struct {
	service faq.Service
}

// NewFAQHandler creates a new FAQ handler.
func NewFAQHandler(service faq.Service) *FAQHandler {
	return &FAQHandler{service: service}
}

// Search finds FAQ entries matching a query.
func (h *FAQHandler) Search(ctx context.Context, query string, limit int) ([]faq.FAQ, error) {
	return h.service.Search(ctx, query, limit)
}

// List returns FAQ entries, optionally filtered by category.
func (h *FAQHandler) List(ctx context.Context, category string, limit int) ([]faq.FAQ, error) {
	return h.service.List(ctx, category, limit)
}

// Add stores a new FAQ entry.
func (h *FAQHandler) Add(ctx context.Context, entry *faq.FAQ) (*faq.FAQ, error) {
	return h.service.Add(ctx, entry)
}

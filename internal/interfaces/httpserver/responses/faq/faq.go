// Package faq contains HTTP response DTOs for the knowledge base.
package faq

import (
	domainfaq "voxassist/call-api/internal/domain/faq"
)

// SearchResponse holds the results of an FAQ search.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []domainfaq.FAQ `json:"results"`
	Count   int             `json:"count"`
}

// NewSearchResponse builds a search result listing.
func NewSearchResponse(query string, results []domainfaq.FAQ) *SearchResponse {
	if results == nil {
		results = []domainfaq.FAQ{}
	}
	return &SearchResponse{Query: query, Results: results, Count: len(results)}
}

// ListResponse lists knowledge-base entries.
type ListResponse struct {
	FAQs     []domainfaq.FAQ `json:"faqs"`
	Count    int             `json:"count"`
	Category string          `json:"category,omitempty"`
}

// NewListResponse builds an FAQ listing.
func NewListResponse(category string, faqs []domainfaq.FAQ) *ListResponse {
	if faqs == nil {
		faqs = []domainfaq.FAQ{}
	}
	return &ListResponse{FAQs: faqs, Count: len(faqs), Category: category}
}

// AddResponse confirms a newly added entry.
type AddResponse struct {
	Status  string `json:"status"`
	FAQID   string `json:"faq_id"`
	Message string `json:"message"`
}

// NewAddResponse builds the creation confirmation.
func NewAddResponse(entry *domainfaq.FAQ) *AddResponse {
	return &AddResponse{
		Status:  "success",
		FAQID:   entry.ID,
		Message: "FAQ added successfully",
	}
}

package tools_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxassist/call-api/internal/domain/faq"
	"voxassist/call-api/internal/infrastructure/tools"
)

type fakeFAQService struct {
	query   string
	limit   int
	results []faq.FAQ
}

func (f *fakeFAQService) Search(_ context.Context, query string, limit int) ([]faq.FAQ, error) {
	f.query = query
	f.limit = limit
	return f.results, nil
}

func (f *fakeFAQService) List(context.Context, string, int) ([]faq.FAQ, error) {
	return nil, nil
}

func (f *fakeFAQService) Add(_ context.Context, entry *faq.FAQ) (*faq.FAQ, error) {
	return entry, nil
}

func newTestRegistry(faqs faq.Service) *tools.Registry {
	return tools.NewRegistry(faqs, zerolog.Nop())
}

func TestDefinitions_Order(t *testing.T) {
	r := newTestRegistry(&fakeFAQService{})

	defs := r.Definitions()
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{
		"get_business_hours",
		"get_job_openings",
		"book_appointment",
		"search_faqs",
		"transfer_to_human",
	}, names)
}

func TestExecute_BusinessHours(t *testing.T) {
	r := newTestRegistry(&fakeFAQService{})

	result, err := r.Execute(context.Background(), "get_business_hours", nil)
	require.NoError(t, err)
	assert.Equal(t, "Monday to Friday: 9 AM - 5 PM EST", result["hours"])
	assert.Equal(t, "EST", result["timezone"])
}

func TestExecute_BookAppointment(t *testing.T) {
	r := newTestRegistry(&fakeFAQService{})

	result, err := r.Execute(context.Background(), "book_appointment", map[string]any{
		"date": "2026-09-15",
		"time": "14:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])
	assert.NotEmpty(t, result["appointment_id"])
	assert.Equal(t, "2026-09-15", result["date"])
}

func TestExecute_BookAppointmentMissingFields(t *testing.T) {
	r := newTestRegistry(&fakeFAQService{})

	_, err := r.Execute(context.Background(), "book_appointment", map[string]any{"date": "2026-09-15"})
	assert.Error(t, err)

	_, err = r.Execute(context.Background(), "book_appointment", map[string]any{"time": "14:30"})
	assert.Error(t, err)
}

func TestExecute_SearchFAQsDelegates(t *testing.T) {
	faqs := &fakeFAQService{results: []faq.FAQ{
		{Question: "What are your business hours?", Answer: "9 to 5, Monday to Friday."},
	}}
	r := newTestRegistry(faqs)

	result, err := r.Execute(context.Background(), "search_faqs", map[string]any{"query": "hours"})
	require.NoError(t, err)

	assert.Equal(t, "hours", faqs.query)
	assert.Equal(t, 3, faqs.limit)
	entries, ok := result["results"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "What are your business hours?", entries[0]["question"])
}

func TestExecute_SearchFAQsRequiresQuery(t *testing.T) {
	r := newTestRegistry(&fakeFAQService{})

	_, err := r.Execute(context.Background(), "search_faqs", map[string]any{})
	assert.Error(t, err)
}

func TestExecute_TransferDefaultsReason(t *testing.T) {
	r := newTestRegistry(&fakeFAQService{})

	result, err := r.Execute(context.Background(), "transfer_to_human", nil)
	require.NoError(t, err)
	assert.Equal(t, "transferring", result["status"])
	assert.Equal(t, "User request", result["reason"])
}

func TestExecute_UnknownTool(t *testing.T) {
	r := newTestRegistry(&fakeFAQService{})

	_, err := r.Execute(context.Background(), "refund_order", nil)
	assert.ErrorContains(t, err, "unknown tool")
}

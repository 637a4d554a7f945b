package faq_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxassist/call-api/internal/domain/faq"
)

// fakeStore records the arguments the service passes down.
type fakeStore struct {
	searchQuery string
	searchLimit int
	listCat     string
	listLimit   int
	saved       []*faq.FAQ
	results     []faq.FAQ
}

func (f *fakeStore) SearchFAQs(_ context.Context, query string, limit int) ([]faq.FAQ, error) {
	f.searchQuery = query
	f.searchLimit = limit
	return f.results, nil
}

func (f *fakeStore) ListFAQs(_ context.Context, category string, limit int) ([]faq.FAQ, error) {
	f.listCat = category
	f.listLimit = limit
	return f.results, nil
}

func (f *fakeStore) SaveFAQ(_ context.Context, entry *faq.FAQ) error {
	f.saved = append(f.saved, entry)
	return nil
}

func TestService_SearchAppliesDefaultLimit(t *testing.T) {
	store := &fakeStore{}
	svc := faq.NewService(store, zerolog.Nop())

	_, err := svc.Search(context.Background(), "hours", 0)
	require.NoError(t, err)
	assert.Equal(t, "hours", store.searchQuery)
	assert.Equal(t, 5, store.searchLimit)

	_, err = svc.Search(context.Background(), "hours", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, store.searchLimit)
}

func TestService_ListAppliesDefaultLimit(t *testing.T) {
	store := &fakeStore{}
	svc := faq.NewService(store, zerolog.Nop())

	_, err := svc.List(context.Background(), "general", 0)
	require.NoError(t, err)
	assert.Equal(t, "general", store.listCat)
	assert.Equal(t, 50, store.listLimit)
}

func TestService_Add(t *testing.T) {
	store := &fakeStore{}
	svc := faq.NewService(store, zerolog.Nop())

	entry, err := svc.Add(context.Background(), &faq.FAQ{
		Question: "Do you ship internationally?",
		Answer:   "Yes, to most countries.",
		Category: "shipping",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	require.Len(t, store.saved, 1)
	assert.Equal(t, entry, store.saved[0])
}

func TestService_AddRequiresQuestionAndAnswer(t *testing.T) {
	svc := faq.NewService(&fakeStore{}, zerolog.Nop())

	_, err := svc.Add(context.Background(), &faq.FAQ{Question: "only a question"})
	assert.ErrorIs(t, err, faq.ErrQuestionRequired)

	_, err = svc.Add(context.Background(), &faq.FAQ{Answer: "only an answer"})
	assert.ErrorIs(t, err, faq.ErrQuestionRequired)
}

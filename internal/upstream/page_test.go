package upstream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePages отдает pages[n-1] на запрос страницы n, пустую страницу за пределами.
type fakePages struct {
	pages []Page[int]
	calls int
}

func (f *fakePages) fetch(_ context.Context, page, perPage int) (Page[int], error) {
	f.calls++
	if page > len(f.pages) {
		return Page[int]{Page: page, PerPage: perPage, TotalPages: 99}, nil
	}
	return f.pages[page-1], nil
}

func TestHasNext(t *testing.T) {
	tests := []struct {
		name string
		page Page[int]
		want bool
	}{
		{name: "more pages", page: Page[int]{Page: 1, TotalPages: 3, Records: []int{1}}, want: true},
		{name: "last page", page: Page[int]{Page: 3, TotalPages: 3, Records: []int{1}}, want: false},
		{name: "beyond total", page: Page[int]{Page: 4, TotalPages: 3, Records: []int{1}}, want: false},
		{name: "empty page with more claimed", page: Page[int]{Page: 1, TotalPages: 3}, want: false},
		{name: "zero total pages", page: Page[int]{Page: 1, Records: []int{1}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasNext(tt.page))
		})
	}
}

func TestFetchAll_StopsAtTotalPages(t *testing.T) {
	f := &fakePages{pages: []Page[int]{
		{Page: 1, TotalPages: 3, TotalCount: 5, Records: []int{1, 2}},
		{Page: 2, TotalPages: 3, TotalCount: 5, Records: []int{3, 4}},
		{Page: 3, TotalPages: 3, TotalCount: 5, Records: []int{5}},
	}}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	res, err := FetchAll(context.Background(), f.fetch, 2, 0, func() time.Time { return now })

	require.NoError(t, err)
	assert.Equal(t, 3, f.calls)
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, 5, res.TotalCount)
	require.Len(t, res.Records, 5)
	for i, r := range res.Records {
		assert.Equal(t, i+1, r.Record)
		assert.Equal(t, now, r.SyncedAt)
	}
}

func TestFetchAll_StopsOnEmptyPage(t *testing.T) {
	// upstream утверждает, что страниц 10, но третья уже пустая
	f := &fakePages{pages: []Page[int]{
		{Page: 1, TotalPages: 10, Records: []int{1}},
		{Page: 2, TotalPages: 10, Records: []int{2}},
	}}

	res, err := FetchAll(context.Background(), f.fetch, 1, 0, time.Now)

	require.NoError(t, err)
	assert.Equal(t, 3, f.calls)
	assert.Equal(t, 3, res.Pages)
	assert.Len(t, res.Records, 2)
}

func TestFetchAll_RespectsMaxPages(t *testing.T) {
	endless := func(_ context.Context, page, _ int) (Page[int], error) {
		return Page[int]{Page: page, TotalPages: page + 1, Records: []int{page}}, nil
	}

	res, err := FetchAll(context.Background(), endless, 1, 4, time.Now)

	require.NoError(t, err)
	assert.Equal(t, 4, res.Pages)
}

func TestFetchAll_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	fetch := func(_ context.Context, page, _ int) (Page[int], error) {
		calls++
		if page == 2 {
			return Page[int]{}, boom
		}
		return Page[int]{Page: page, TotalPages: 5, Records: []int{page}}, nil
	}

	res, err := FetchAll(context.Background(), fetch, 1, 0, time.Now)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
	assert.Len(t, res.Records, 1)
}

func TestFetchAll_IgnoresEchoedPageNumber(t *testing.T) {
	// upstream всегда отвечает page=1, остановка должна сработать по запрошенной странице
	calls := 0
	fetch := func(_ context.Context, page, _ int) (Page[int], error) {
		calls++
		return Page[int]{Page: 1, TotalPages: 3, Records: []int{page}}, nil
	}

	res, err := FetchAll(context.Background(), fetch, 1, 0, time.Now)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, res.Pages)
	require.Len(t, res.Records, 3)
	for i, r := range res.Records {
		assert.Equal(t, i+1, r.Record)
	}
}

func TestPages_MissingPageNumberUsesRequested(t *testing.T) {
	fetch := func(_ context.Context, _, _ int) (Page[int], error) {
		return Page[int]{TotalPages: 2, Records: []int{1}}, nil
	}

	var seen []int
	for p, err := range Pages(context.Background(), fetch, 1, 0) {
		require.NoError(t, err)
		seen = append(seen, p.Page)
	}

	assert.Equal(t, []int{1, 2}, seen)
}

func TestPages_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &fakePages{}

	_, err := FetchAll(ctx, f.fetch, 1, 0, time.Now)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, f.calls)
}

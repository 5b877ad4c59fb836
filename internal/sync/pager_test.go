package sync

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"connectrealm/internal/store"
)

type row struct {
	ID string
}

func rowID(r row) string { return r.ID }

// makeFetch serves total rows named r1..rN, page by page.
func makeFetch(total int) FetchFunc[row] {
	return func(_ context.Context, page store.Page) ([]row, int64, error) {
		var out []row
		for i := page.Offset(); i < page.Offset()+page.Limit() && i < total; i++ {
			out = append(out, row{ID: fmt.Sprintf("r%d", i+1)})
		}
		return out, int64(total), nil
	}
}

func TestPagerAccumulatesDistinctRows(t *testing.T) {
	ctx := context.Background()
	p := NewPager(makeFetch(25), rowID, 10)

	require.Equal(t, StateIdle, p.State())
	require.NoError(t, p.LoadFirst(ctx))
	require.Equal(t, StateReady, p.State())
	require.Len(t, p.Items(), 10)
	// The first load covers the head of the collection, not a shifted window.
	require.Equal(t, row{ID: "r1"}, p.Items()[0])
	require.True(t, p.HasNext())

	require.NoError(t, p.LoadNext(ctx))
	require.Len(t, p.Items(), 20)
	require.True(t, p.HasNext())

	require.NoError(t, p.LoadNext(ctx))
	items := p.Items()
	require.Len(t, items, 25)
	require.False(t, p.HasNext())

	ids := make(map[string]struct{})
	for _, r := range items {
		ids[r.ID] = struct{}{}
	}
	require.Len(t, ids, 25)

	// Exhausted pager ignores further loads.
	require.NoError(t, p.LoadNext(ctx))
	require.Len(t, p.Items(), 25)
}

func TestPagerDeduplicatesAcrossPages(t *testing.T) {
	ctx := context.Background()
	// A row inserted between fetches shifts the window, so page two repeats
	// the last row of page one.
	fetch := func(_ context.Context, page store.Page) ([]row, int64, error) {
		if page.Number == 0 {
			return []row{{"a"}, {"b"}}, 4, nil
		}
		return []row{{"b"}, {"c"}}, 4, nil
	}
	p := NewPager(fetch, rowID, 2)

	require.NoError(t, p.LoadFirst(ctx))
	require.NoError(t, p.LoadNext(ctx))

	items := p.Items()
	require.Len(t, items, 3)
	require.Equal(t, []row{{"a"}, {"b"}, {"c"}}, items)
}

func TestPagerEpochGuardDiscardsStaleResponse(t *testing.T) {
	ctx := context.Background()

	release := make(chan struct{})
	slowStarted := make(chan struct{})
	calls := 0
	fetch := func(_ context.Context, page store.Page) ([]row, int64, error) {
		calls++
		if calls == 1 {
			close(slowStarted)
			<-release
			return []row{{"stale"}}, 1, nil
		}
		return []row{{"fresh"}}, 1, nil
	}
	p := NewPager(fetch, rowID, 10)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_ = p.LoadFirst(ctx)
	}()
	<-slowStarted

	// A newer load supersedes the hung one.
	require.NoError(t, p.LoadFirst(ctx))
	require.Equal(t, []row{{"fresh"}}, p.Items())

	close(release)
	<-firstDone

	// The stale response must not have overwritten the newer state.
	require.Equal(t, []row{{"fresh"}}, p.Items())
	require.Equal(t, StateReady, p.State())
}

func TestPagerErrorState(t *testing.T) {
	ctx := context.Background()
	boom := fmt.Errorf("backend down")
	fetch := func(context.Context, store.Page) ([]row, int64, error) {
		return nil, 0, boom
	}
	p := NewPager(fetch, rowID, 10)

	require.ErrorIs(t, p.LoadFirst(ctx), boom)
	require.Equal(t, StateError, p.State())
	require.ErrorIs(t, p.Err(), boom)
	require.Empty(t, p.Items())
	require.NotNil(t, p.Items())
}

func TestPagerMergeAppendDeduplicates(t *testing.T) {
	ctx := context.Background()
	p := NewPager(makeFetch(2), rowID, 10)
	require.NoError(t, p.LoadFirst(ctx))

	require.True(t, p.MergeAppend(row{"live"}))
	require.False(t, p.MergeAppend(row{"live"}))
	require.False(t, p.MergeAppend(row{"r1"}))
	require.Len(t, p.Items(), 3)
}

func TestPagerReset(t *testing.T) {
	ctx := context.Background()
	p := NewPager(makeFetch(5), rowID, 10)
	require.NoError(t, p.LoadFirst(ctx))
	require.Len(t, p.Items(), 5)

	p.Reset()
	require.Equal(t, StateIdle, p.State())
	require.Empty(t, p.Items())
	require.False(t, p.HasNext())
}

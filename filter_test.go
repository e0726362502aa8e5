package graft_test

import (
	"context"
	"testing"

	graft "github.com/graftdata/graft"
	"github.com/stretchr/testify/require"
)

type predicateFunc func(ctx context.Context, r graft.Record) (bool, error)

func (f predicateFunc) FilterRecord(ctx context.Context, r graft.Record) (bool, error) {
	return f(ctx, r)
}

func TestFilterDropsWhenPredicateTrue(t *testing.T) {
	ctx := context.Background()
	dropEven := graft.NewFilter(predicateFunc(func(ctx context.Context, r graft.Record) (bool, error) {
		return r["id"].(int)%2 == 0, nil
	}))
	out := graft.Chain(
		graft.FromRecords(graft.Record{"id": 1}, graft.Record{"id": 2}, graft.Record{"id": 3}),
		dropEven,
	)
	records, err := graft.CollectRecords(ctx, out)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, 1, records[0]["id"])
	require.Equal(t, 3, records[1]["id"])
}

func TestFilterNeverSeesFlush(t *testing.T) {
	ctx := context.Background()
	seen := 0
	dropAll := graft.NewFilter(predicateFunc(func(ctx context.Context, r graft.Record) (bool, error) {
		seen++
		return true, nil
	}))
	out := graft.Chain(
		graft.FromItems(graft.Flush, graft.RecordItem(graft.Record{"id": 1}), graft.Flush),
		dropAll,
	)
	items, err := graft.Collect(ctx, out)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.True(t, items[0].Flush)
	require.True(t, items[1].Flush)
	require.Equal(t, 1, seen)
}

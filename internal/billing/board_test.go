package billing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibill/internal/domain"
)

func TestBoard_StaleRefreshDoesNotOverwrite(t *testing.T) {
	var b Board

	first := b.Begin()
	second := b.Begin()

	cur, applied := b.Apply(second, Snapshot{Source: domain.InvoiceSourceStore, Invoices: exampleInvoices()})
	assert.True(t, applied)
	assert.Equal(t, second, cur.Generation)

	cur, applied = b.Apply(first, Snapshot{Source: domain.InvoiceSourceSample, Invoices: SampleInvoices()})
	assert.False(t, applied)
	assert.Equal(t, second, cur.Generation)
	assert.Equal(t, domain.InvoiceSourceStore, cur.Source)

	got, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, second, got.Generation)
}

func TestBoard_InOrderRefreshesApply(t *testing.T) {
	var b Board
	_, ok := b.Current()
	assert.False(t, ok)

	g1 := b.Begin()
	_, applied := b.Apply(g1, Snapshot{Source: domain.InvoiceSourceSample})
	assert.True(t, applied)

	g2 := b.Begin()
	cur, applied := b.Apply(g2, Snapshot{Source: domain.InvoiceSourceStore})
	assert.True(t, applied)
	assert.Equal(t, domain.InvoiceSourceStore, cur.Source)
}

func TestBoard_ConcurrentRefreshesKeepNewest(t *testing.T) {
	var b Board
	const n = 50
	gens := make([]uint64, n)
	for i := range gens {
		gens[i] = b.Begin()
	}

	var wg sync.WaitGroup
	for i := n - 1; i >= 0; i-- {
		wg.Add(1)
		go func(g uint64) {
			defer wg.Done()
			b.Apply(g, Snapshot{})
		}(gens[i])
	}
	wg.Wait()

	cur, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, gens[n-1], cur.Generation)
}

func TestBoards_ForReturnsSameBoard(t *testing.T) {
	boards := NewBoards(0)
	assert.Same(t, boards.For("tenant-a"), boards.For("tenant-a"))
	assert.NotSame(t, boards.For("tenant-a"), boards.For("tenant-b"))
}

func TestBoards_EvictsIdleScopes(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	boards := NewBoards(time.Minute)
	boards.now = func() time.Time { return now }

	a := boards.For("tenant-a")
	a.Apply(a.Begin(), Snapshot{Source: domain.InvoiceSourceStore})
	boards.For("patient-1")
	assert.Equal(t, 2, boards.Len())

	now = now.Add(40 * time.Second)
	assert.Same(t, a, boards.For("tenant-a"))

	now = now.Add(40 * time.Second)
	b := boards.For("tenant-b")
	assert.Equal(t, 2, boards.Len(), "patient-1 idle past ttl")
	assert.Same(t, a, boards.For("tenant-a"))

	now = now.Add(2 * time.Minute)
	assert.NotSame(t, b, boards.For("tenant-b"))
	assert.Equal(t, 1, boards.Len())
	_, ok := boards.For("tenant-b").Current()
	assert.False(t, ok)
}

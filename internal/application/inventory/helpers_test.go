package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	domaininv "github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/infrastructure/memory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/logger"
)

// clock reloj manual que avanza un segundo por lectura.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	store  *memory.Store
	ledger *inventory.LedgerUseCase
	clock  *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	clk := newClock()
	ledger := inventory.NewLedgerUseCase(st, st.Products(), st.Movements(), logger.Nop()).WithClock(clk.Now)
	return &fixture{store: st, ledger: ledger, clock: clk}
}

// addProduct crea un producto sin movimientos con el contador indicado.
func (f *fixture) addProduct(t *testing.T, id string, quantity int) {
	t.Helper()
	now := f.clock.Now()
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{
		ID: id, Code: "C-" + id, Name: "Produto " + id, Quantity: quantity, Active: true,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) counter(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

// fakeCache caché de saldos en memoria que cuenta accesos y versiona las invalidaciones.
type fakeCache struct {
	mu          sync.Mutex
	data        map[string]domaininv.Balance
	versions    map[string]int64
	hits, sets  int
	rejected    int
	invalidated []string
	// beforeSet se ejecuta sin el lock antes de cada escritura.
	beforeSet func()
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]domaininv.Balance), versions: make(map[string]int64)}
}

func (c *fakeCache) Get(_ context.Context, id string) (domaininv.Balance, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[id]
	if ok {
		c.hits++
	}
	return b, ok, nil
}

func (c *fakeCache) Version(_ context.Context, id string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[id], nil
}

func (c *fakeCache) SetIfVersion(_ context.Context, id string, b domaininv.Balance, version int64) (bool, error) {
	if c.beforeSet != nil {
		hook := c.beforeSet
		c.beforeSet = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[id] != version {
		c.rejected++
		return false, nil
	}
	c.data[id] = b
	c.sets++
	return true, nil
}

func (c *fakeCache) Invalidate(_ context.Context, ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.data, id)
		c.versions[id]++
	}
	c.invalidated = append(c.invalidated, ids...)
	return nil
}

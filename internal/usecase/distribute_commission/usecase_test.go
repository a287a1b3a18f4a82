package distribute_commission

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/notification"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers"
	"github.com/m04kA/SMC-PropertyService/internal/service/settings"
	"github.com/m04kA/SMC-PropertyService/pkg/logger"
	"github.com/m04kA/SMC-PropertyService/pkg/metrics"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Notify(_ context.Context, e notification.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

type fixture struct {
	uc       *UseCase
	store    *memory.Store
	settings *settings.Service
	notifier *recordingNotifier
}

func setup(t *testing.T, percentages map[int]string) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNop()
	settingsSvc := settings.NewService(store.Settings(), nil, store, log)
	for level, pct := range percentages {
		require.NoError(t, settingsSvc.UpsertCommissionLevel(context.Background(), level, decimal.RequireFromString(pct)))
	}

	notifier := &recordingNotifier{}
	var m *metrics.Metrics
	uc := NewUseCase(
		store.Properties(),
		store.Dealers(),
		store.Commissions(),
		dealers.NewService(store.Dealers(), log),
		settingsSvc,
		store,
		notifier,
		m,
		log,
	)
	return &fixture{uc: uc, store: store, settings: settingsSvc, notifier: notifier}
}

// chain создает цепочку из n дилеров, последний самый глубокий
func (f *fixture) chain(t *testing.T, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	var parent *int64
	for i := 1; i <= n; i++ {
		d, err := f.store.Dealers().Create(context.Background(), &domain.Dealer{
			UserID:       int64(i),
			ParentID:     parent,
			ReferralCode: fmt.Sprintf("REF%05d", i),
			Status:       domain.DealerStatusApproved,
		})
		require.NoError(t, err)
		ids = append(ids, d.ID)
		parent = &d.ID
	}
	return ids
}

func (f *fixture) property(t *testing.T, dealerID *int64) int64 {
	t.Helper()
	p, err := f.store.Properties().Create(context.Background(), &domain.Property{
		OwnerID:  1,
		DealerID: dealerID,
		Status:   domain.PropertyStatusFree,
		Price:    decimal.NewFromInt(100000),
	})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) dealerCommission(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	d, err := f.store.Dealers().GetByID(context.Background(), id)
	require.NoError(t, err)
	return d.Commission
}

func TestUseCase_Execute_LevelCap(t *testing.T) {
	f := setup(t, map[int]string{1: "10", 2: "5", 3: "2"})
	ids := f.chain(t, 5)
	propertyID := f.property(t, &ids[4])

	resp, err := f.uc.Execute(context.Background(), &Request{
		PropertyID: propertyID,
		SaleAmount: decimal.NewFromInt(100000),
		IsAdmin:    true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Payouts, 3)

	want := []struct {
		dealer int64
		amount string
	}{
		{ids[4], "10000"},
		{ids[3], "5000"},
		{ids[2], "2000"},
	}
	for i, w := range want {
		assert.Equal(t, i+1, resp.Payouts[i].Level)
		assert.Equal(t, w.dealer, resp.Payouts[i].DealerID)
		assert.True(t, resp.Payouts[i].Amount.Equal(decimal.RequireFromString(w.amount)), "level %d", i+1)
		assert.True(t, f.dealerCommission(t, w.dealer).Equal(decimal.RequireFromString(w.amount)))
	}
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(17000)))

	assert.True(t, f.dealerCommission(t, ids[1]).IsZero())
	assert.True(t, f.dealerCommission(t, ids[0]).IsZero())

	rows, err := f.store.Commissions().ListByPropertyID(context.Background(), propertyID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	require.Len(t, f.notifier.events, 3)
	for i, e := range f.notifier.events {
		assert.Equal(t, notification.EventCommissionPaid, e.Type)
		assert.Equal(t, want[i].dealer, e.AggregateID)
		assert.Equal(t, i+1, e.Payload["level"])
		assert.Equal(t, resp.Payouts[i].CommissionID, e.Payload["commission_id"])
	}
}

func TestUseCase_Execute_ChainStopsAtRoot(t *testing.T) {
	f := setup(t, map[int]string{1: "10", 2: "5", 3: "2"})
	ids := f.chain(t, 2)
	propertyID := f.property(t, &ids[1])

	resp, err := f.uc.Execute(context.Background(), &Request{PropertyID: propertyID, SaleAmount: decimal.NewFromInt(1000), IsAdmin: true})
	require.NoError(t, err)

	require.Len(t, resp.Payouts, 2)
	assert.Equal(t, ids[1], resp.Payouts[0].DealerID)
	assert.Equal(t, ids[0], resp.Payouts[1].DealerID)
}

func TestUseCase_Execute_StopsAtMissingLevel(t *testing.T) {
	f := setup(t, map[int]string{1: "10", 3: "2"})
	ids := f.chain(t, 3)
	propertyID := f.property(t, &ids[2])

	resp, err := f.uc.Execute(context.Background(), &Request{PropertyID: propertyID, SaleAmount: decimal.NewFromInt(1000), IsAdmin: true})
	require.NoError(t, err)

	require.Len(t, resp.Payouts, 1)
	assert.True(t, f.dealerCommission(t, ids[0]).IsZero())
}

func TestUseCase_Execute_Rounding(t *testing.T) {
	f := setup(t, map[int]string{1: "3.333"})
	ids := f.chain(t, 1)
	propertyID := f.property(t, &ids[0])

	resp, err := f.uc.Execute(context.Background(), &Request{PropertyID: propertyID, SaleAmount: decimal.RequireFromString("999.99"), IsAdmin: true})
	require.NoError(t, err)

	// 999.99 * 3.333 / 100 = 33.3296667
	require.Len(t, resp.Payouts, 1)
	assert.Equal(t, "33.33", resp.Payouts[0].Amount.StringFixed(2))
}

func TestUseCase_Execute_NotIdempotent(t *testing.T) {
	f := setup(t, map[int]string{1: "10"})
	ids := f.chain(t, 1)
	propertyID := f.property(t, &ids[0])
	req := &Request{PropertyID: propertyID, SaleAmount: decimal.NewFromInt(1000), IsAdmin: true}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, f.dealerCommission(t, ids[0]).Equal(decimal.NewFromInt(200)))
}

func TestUseCase_Execute_SubtreeRollupReflectsPayouts(t *testing.T) {
	f := setup(t, map[int]string{1: "1"})
	ctx := context.Background()
	root := f.chain(t, 1)[0]

	var children []int64
	for i := 0; i < 2; i++ {
		d, err := f.store.Dealers().Create(ctx, &domain.Dealer{
			UserID: int64(100 + i), ParentID: &root, ReferralCode: fmt.Sprintf("CHILD%03d", i), Status: domain.DealerStatusApproved,
		})
		require.NoError(t, err)
		children = append(children, d.ID)
	}

	for _, child := range children {
		_, err := f.uc.Execute(ctx, &Request{PropertyID: f.property(t, &child), SaleAmount: decimal.NewFromInt(1000), IsAdmin: true})
		require.NoError(t, err)
	}

	tree, err := dealers.NewService(f.store.Dealers(), logger.NewNop()).BuildSubtree(ctx, root, 2)
	require.NoError(t, err)
	// уровень 2 не настроен, корень ничего не получает
	assert.True(t, tree.TotalCommissionRollup.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 3, tree.TotalDescendantCount)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	f := setup(t, map[int]string{1: "10"})
	ctx := context.Background()
	orphan := f.property(t, nil)
	missingDealer := int64(404)
	dangling := f.property(t, &missingDealer)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"not admin", &Request{PropertyID: orphan, SaleAmount: decimal.NewFromInt(1)}, domain.ErrUnauthorized},
		{"zero sale", &Request{PropertyID: orphan, SaleAmount: decimal.Zero, IsAdmin: true}, domain.ErrInvalidInput},
		{"unknown property", &Request{PropertyID: 999, SaleAmount: decimal.NewFromInt(1), IsAdmin: true}, domain.ErrPropertyOrDealerNotFound},
		{"property without dealer", &Request{PropertyID: orphan, SaleAmount: decimal.NewFromInt(1), IsAdmin: true}, domain.ErrPropertyOrDealerNotFound},
		{"dealer missing", &Request{PropertyID: dangling, SaleAmount: decimal.NewFromInt(1), IsAdmin: true}, domain.ErrPropertyOrDealerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.notifier.events)
}

package dealers

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers/models"
	"github.com/m04kA/SMC-PropertyService/pkg/logger"
)

type sequenceCodes struct {
	codes []string
	next  int
}

func (g *sequenceCodes) Generate() string {
	c := g.codes[g.next%len(g.codes)]
	g.next++
	return c
}

// seedChain создает цепочку d1 <- d2 <- ... <- dN, возвращает ID по порядку
func seedChain(t *testing.T, store *memory.Store, n int, commission decimal.Decimal) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	var parent *int64
	for i := 1; i <= n; i++ {
		d, err := store.Dealers().Create(context.Background(), &domain.Dealer{
			UserID:       int64(100 + i),
			ParentID:     parent,
			ReferralCode: fmt.Sprintf("CODE%04d", i),
			Status:       domain.DealerStatusApproved,
			Commission:   commission,
		})
		require.NoError(t, err)
		ids = append(ids, d.ID)
		parent = &d.ID
	}
	return ids
}

func TestService_AncestorChain(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Dealers(), logger.NewNop())
	ctx := context.Background()
	ids := seedChain(t, store, 5, decimal.Zero)

	chain, err := svc.AncestorChain(ctx, ids[4], 3)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, ids[3], chain[0].ID)
	assert.Equal(t, ids[2], chain[1].ID)
	assert.Equal(t, ids[1], chain[2].ID)

	chain, err = svc.AncestorChain(ctx, ids[1], 3)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, ids[0], chain[0].ID)

	chain, err = svc.AncestorChain(ctx, ids[0], 3)
	require.NoError(t, err)
	assert.Empty(t, chain)

	_, err = svc.AncestorChain(ctx, 999, 3)
	assert.ErrorIs(t, err, domain.ErrDealerNotFound)
}

func TestService_BuildSubtree(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Dealers(), logger.NewNop())
	ctx := context.Background()
	ids := seedChain(t, store, 4, decimal.NewFromInt(10))

	tree, err := svc.BuildSubtree(ctx, ids[0], domain.DefaultSubtreeDepth)
	require.NoError(t, err)
	assert.Equal(t, 4, tree.TotalDescendantCount)
	assert.True(t, tree.TotalCommissionRollup.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 1, tree.Depth)

	tree, err = svc.BuildSubtree(ctx, ids[0], 2)
	require.NoError(t, err)
	assert.Equal(t, 2, tree.TotalDescendantCount)
	require.Len(t, tree.Children, 1)
	assert.Empty(t, tree.Children[0].Children)

	resp := models.FromDomainNode(tree)
	assert.Equal(t, ids[1], resp.Children[0].ID)
}

func TestService_BuildSubtree_Limits(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Dealers(), logger.NewNop())
	ctx := context.Background()
	ids := seedChain(t, store, 1, decimal.Zero)

	_, err := svc.BuildSubtree(ctx, ids[0], domain.MaxSubtreeDepth+1)
	assert.ErrorIs(t, err, domain.ErrTreeTooDeep)

	_, err = svc.BuildSubtree(ctx, ids[0], 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.BuildSubtree(ctx, 999, 3)
	assert.ErrorIs(t, err, domain.ErrDealerNotFound)
}

func TestService_Register(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Dealers(), logger.NewNop())
	ctx := context.Background()

	root, err := svc.Register(ctx, &models.RegisterDealerRequest{UserID: 1})
	require.NoError(t, err)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, domain.DealerStatusPending, root.Status)
	assert.Len(t, root.ReferralCode, 8)

	code := root.ReferralCode
	child, err := svc.Register(ctx, &models.RegisterDealerRequest{UserID: 2, ReferralCode: &code})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	_, err = svc.Register(ctx, &models.RegisterDealerRequest{UserID: 2})
	assert.ErrorIs(t, err, domain.ErrDealerAlreadyExists)

	unknown := "NOPE0000"
	_, err = svc.Register(ctx, &models.RegisterDealerRequest{UserID: 3, ReferralCode: &unknown})
	assert.ErrorIs(t, err, domain.ErrInvalidReferralCode)
}

func TestService_Register_RetriesCodeCollision(t *testing.T) {
	store := memory.NewStore()
	gen := &sequenceCodes{codes: []string{"AAAA1111", "AAAA1111", "BBBB2222"}}
	svc := NewService(store.Dealers(), logger.NewNop()).WithCodeGenerator(gen)
	ctx := context.Background()

	first, err := svc.Register(ctx, &models.RegisterDealerRequest{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "AAAA1111", first.ReferralCode)

	second, err := svc.Register(ctx, &models.RegisterDealerRequest{UserID: 2})
	require.NoError(t, err)
	assert.Equal(t, "BBBB2222", second.ReferralCode)
}

func TestService_UpdateStatus(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Dealers(), logger.NewNop())
	ctx := context.Background()

	d, err := svc.Register(ctx, &models.RegisterDealerRequest{UserID: 1})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, d.ID, &models.UpdateStatusRequest{Status: "APPROVED"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.UpdateStatus(ctx, d.ID, &models.UpdateStatusRequest{Status: "ARCHIVED", IsAdmin: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := svc.UpdateStatus(ctx, d.ID, &models.UpdateStatusRequest{Status: "approved", IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, domain.DealerStatusApproved, updated.Status)

	_, err = svc.UpdateStatus(ctx, d.ID, &models.UpdateStatusRequest{Status: "REJECTED", IsAdmin: true})
	assert.ErrorIs(t, err, domain.ErrInvalidDealerState)

	_, err = svc.UpdateStatus(ctx, 999, &models.UpdateStatusRequest{Status: "REJECTED", IsAdmin: true})
	assert.ErrorIs(t, err, domain.ErrDealerNotFound)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dairyhub/internal/core/domain"
)

func newDemandFixture(t *testing.T) (*DemandService, *fakeUserRepo, *fakeProductRepo, *fakeDemandRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	productRepo := newFakeProductRepo()
	demandRepo := newFakeDemandRepo()
	svc := NewDemandService(demandRepo, productRepo, userRepo, testLogger())
	return svc, userRepo, productRepo, demandRepo
}

func TestCreateDemandComputesLineTotals(t *testing.T) {
	svc, userRepo, productRepo, demandRepo := newDemandFixture(t)
	distributor := seedDistributor(userRepo, "d1@dairy.test", "P001")
	product := seedProduct(productRepo, "MILK-1L", decimal.NewFromInt(20), decimal.NewFromInt(5))

	result, err := svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{
		Rno: "R-100",
		Lines: []DemandLineInput{
			{ProductID: product.ID, Qty: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.InsertedCount)
	require.Len(t, result.IDs, 1)

	demand, err := demandRepo.GetByID(context.Background(), result.IDs[0])
	require.NoError(t, err)
	assert.True(t, demand.Amount.Equal(decimal.NewFromInt(200)), "amount = %s", demand.Amount)
	assert.True(t, demand.GstAmt.Equal(decimal.NewFromInt(10)), "gst_amt = %s", demand.GstAmt)
	assert.True(t, demand.Total.Equal(decimal.NewFromInt(210)), "total = %s", demand.Total)
	assert.Equal(t, "created", demand.Status)
	assert.Equal(t, "R-100", demand.Rno)
}

func TestCreateDemandFractionalRateZeroGst(t *testing.T) {
	svc, userRepo, productRepo, demandRepo := newDemandFixture(t)
	distributor := seedDistributor(userRepo, "d1@dairy.test", "P001")
	product := seedProduct(productRepo, "CURD-500", decimal.RequireFromString("15.5"), decimal.Zero)

	result, err := svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{
		Rno: "R-101",
		Lines: []DemandLineInput{
			{ProductID: product.ID, Qty: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	demand, err := demandRepo.GetByID(context.Background(), result.IDs[0])
	require.NoError(t, err)
	assert.True(t, demand.Amount.Equal(decimal.RequireFromString("46.5")))
	assert.True(t, demand.GstAmt.IsZero())
	assert.True(t, demand.Total.Equal(decimal.RequireFromString("46.5")))
}

func TestCreateDemandSnapshotsCatalogRateAndGst(t *testing.T) {
	svc, userRepo, productRepo, demandRepo := newDemandFixture(t)
	distributor := seedDistributor(userRepo, "d1@dairy.test", "P001")
	product := seedProduct(productRepo, "GHEE-1KG", decimal.NewFromInt(600), decimal.NewFromInt(12))

	customRate := decimal.NewFromInt(550)
	result, err := svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{
		Rno: "R-102",
		Lines: []DemandLineInput{
			{ProductID: product.ID, Qty: decimal.NewFromInt(2)},
			{ProductID: product.ID, Qty: decimal.NewFromInt(1), Rate: &customRate},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.InsertedCount)

	first, _ := demandRepo.GetByID(context.Background(), result.IDs[0])
	second, _ := demandRepo.GetByID(context.Background(), result.IDs[1])
	assert.True(t, first.Rate.Equal(decimal.NewFromInt(600)))
	assert.True(t, first.GstPercent.Equal(decimal.NewFromInt(12)))
	assert.True(t, second.Rate.Equal(decimal.NewFromInt(550)))
}

func TestCreateDemandBadLineAbortsWholeSubmission(t *testing.T) {
	svc, userRepo, productRepo, demandRepo := newDemandFixture(t)
	distributor := seedDistributor(userRepo, "d1@dairy.test", "P001")
	product := seedProduct(productRepo, "MILK-1L", decimal.NewFromInt(20), decimal.NewFromInt(5))

	_, err := svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{
		Rno: "R-103",
		Lines: []DemandLineInput{
			{ProductID: product.ID, Qty: decimal.NewFromInt(4)},
			{ProductID: product.ID, Qty: decimal.Zero},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQty)
	assert.Empty(t, demandRepo.demands, "no rows should be written when any line is invalid")

	_, err = svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{
		Rno: "R-104",
		Lines: []DemandLineInput{
			{ProductID: product.ID, Qty: decimal.NewFromInt(4)},
			{ProductID: 999, Qty: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, demandRepo.demands)
}

func TestCreateDemandValidation(t *testing.T) {
	svc, userRepo, productRepo, _ := newDemandFixture(t)
	distributor := seedDistributor(userRepo, "d1@dairy.test", "P001")
	admin := seedAdmin(userRepo, "admin@dairy.test")
	product := seedProduct(productRepo, "MILK-1L", decimal.NewFromInt(20), decimal.NewFromInt(5))

	line := DemandLineInput{ProductID: product.ID, Qty: decimal.NewFromInt(1)}

	_, err := svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{Rno: "", Lines: []DemandLineInput{line}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{Rno: "R-1"})
	assert.ErrorIs(t, err, domain.ErrNoDemandLines)

	_, err = svc.CreateDemand(context.Background(), admin.ID, &CreateDemandInput{Rno: "R-1", Lines: []DemandLineInput{line}})
	assert.ErrorIs(t, err, domain.ErrDistributorNotFound)

	badGst := decimal.NewFromInt(101)
	_, err = svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{
		Rno:   "R-1",
		Lines: []DemandLineInput{{ProductID: product.ID, Qty: decimal.NewFromInt(1), GstPercent: &badGst}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidGstPercent)

	zeroRate := decimal.Zero
	_, err = svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{
		Rno:   "R-1",
		Lines: []DemandLineInput{{ProductID: product.ID, Qty: decimal.NewFromInt(1), Rate: &zeroRate}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRate)
}

func TestUpdateDispatchAdvancesStatus(t *testing.T) {
	svc, userRepo, productRepo, _ := newDemandFixture(t)
	distributor := seedDistributor(userRepo, "d1@dairy.test", "P001")
	product := seedProduct(productRepo, "MILK-1L", decimal.NewFromInt(20), decimal.NewFromInt(5))

	result, err := svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{
		Rno:   "R-200",
		Lines: []DemandLineInput{{ProductID: product.ID, Qty: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	qty := decimal.NewFromInt(8)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	no := "DSP-7"
	demand, err := svc.UpdateDispatch(context.Background(), result.IDs[0], &UpdateDispatchInput{
		DispatchQty:  &qty,
		DispatchDate: &date,
		DispatchNo:   &no,
	})
	require.NoError(t, err)
	assert.Equal(t, "dispatched", demand.Status)
	require.NotNil(t, demand.DispatchQty)
	assert.True(t, demand.DispatchQty.Equal(qty))
	require.NotNil(t, demand.DispatchNo)
	assert.Equal(t, "DSP-7", *demand.DispatchNo)

	// demand-side snapshots stay untouched
	assert.True(t, demand.Total.Equal(decimal.NewFromInt(210)))
}

func TestUpdateDispatchRequiresAtLeastOneField(t *testing.T) {
	svc, userRepo, productRepo, _ := newDemandFixture(t)
	distributor := seedDistributor(userRepo, "d1@dairy.test", "P001")
	product := seedProduct(productRepo, "MILK-1L", decimal.NewFromInt(20), decimal.NewFromInt(5))

	result, err := svc.CreateDemand(context.Background(), distributor.ID, &CreateDemandInput{
		Rno:   "R-201",
		Lines: []DemandLineInput{{ProductID: product.ID, Qty: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	empty := ""
	_, err = svc.UpdateDispatch(context.Background(), result.IDs[0], &UpdateDispatchInput{VehicleNo: &empty})
	assert.ErrorIs(t, err, domain.ErrNoDispatchFields)

	demand, err := svc.GetDemand(context.Background(), result.IDs[0])
	require.NoError(t, err)
	assert.Equal(t, "created", demand.Status)
}

func TestUpdateDispatchUnknownDemand(t *testing.T) {
	svc, _, _, _ := newDemandFixture(t)
	no := "DSP-1"
	_, err := svc.UpdateDispatch(context.Background(), 42, &UpdateDispatchInput{DispatchNo: &no})
	assert.ErrorIs(t, err, domain.ErrDemandNotFound)
}

func TestListDemandsScopedByDistributor(t *testing.T) {
	svc, userRepo, productRepo, _ := newDemandFixture(t)
	d1 := seedDistributor(userRepo, "d1@dairy.test", "P001")
	d2 := seedDistributor(userRepo, "d2@dairy.test", "P002")
	product := seedProduct(productRepo, "MILK-1L", decimal.NewFromInt(20), decimal.NewFromInt(5))

	line := []DemandLineInput{{ProductID: product.ID, Qty: decimal.NewFromInt(1)}}
	_, err := svc.CreateDemand(context.Background(), d1.ID, &CreateDemandInput{Rno: "R-1", Lines: line})
	require.NoError(t, err)
	_, err = svc.CreateDemand(context.Background(), d2.ID, &CreateDemandInput{Rno: "R-2", Lines: line})
	require.NoError(t, err)

	all, total, err := svc.ListDemands(context.Background(), nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	scoped, total, err := svc.ListDemands(context.Background(), &d1.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, scoped, 1)
	assert.Equal(t, d1.ID, scoped[0].DistributorID)
}

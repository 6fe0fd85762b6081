package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dairyhub/internal/adapters/persistence/models"
	"dairyhub/internal/core/domain"
	"dairyhub/internal/pkg/logger"
)

// In-memory repository fakes backing the service tests.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error"})
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByIDAndRole(_ context.Context, id uint, role domain.Role) (*models.User, error) {
	user, ok := r.users[id]
	if !ok || user.Role != role {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByPartyCode(_ context.Context, partyCode string) (bool, error) {
	for _, user := range r.users {
		if user.PartyCode != nil && *user.PartyCode == partyCode {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	all := r.sorted()
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role, offset, limit int) ([]*models.User, int64, error) {
	var matched []*models.User
	for _, user := range r.sorted() {
		if user.Role == role {
			matched = append(matched, user)
		}
	}
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r *fakeUserRepo) ListAllByRole(_ context.Context, role domain.Role) ([]*models.User, error) {
	var matched []*models.User
	for _, user := range r.sorted() {
		if user.Role == role {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func (r *fakeUserRepo) sorted() []*models.User {
	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*models.User, len(ids))
	for i, id := range ids {
		out[i] = r.users[id]
	}
	return out
}

type fakeProductRepo struct {
	products map[uint]*models.Product
	nextID   uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uint]*models.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	r.nextID++
	product.ID = r.nextID
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uint) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*models.Product, error) {
	for _, product := range r.products {
		if product.ProductCode == code {
			return product, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) Update(_ context.Context, product *models.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*models.Product, error) {
	return r.sorted(false), nil
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]*models.Product, error) {
	return r.sorted(true), nil
}

func (r *fakeProductRepo) sorted(activeOnly bool) []*models.Product {
	ids := make([]uint, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*models.Product
	for _, id := range ids {
		if activeOnly && !r.products[id].IsActive {
			continue
		}
		out = append(out, r.products[id])
	}
	return out
}

type fakePriceRepo struct {
	prices map[uint]*models.ProductPrice
	nextID uint
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{prices: map[uint]*models.ProductPrice{}}
}

func (r *fakePriceRepo) Create(_ context.Context, price *models.ProductPrice) error {
	r.nextID++
	price.ID = r.nextID
	r.prices[price.ID] = price
	return nil
}

func (r *fakePriceRepo) GetByID(_ context.Context, id uint) (*models.ProductPrice, error) {
	price, ok := r.prices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return price, nil
}

func (r *fakePriceRepo) GetByDistributorAndProduct(_ context.Context, distributorID, productID uint) (*models.ProductPrice, error) {
	for _, price := range r.prices {
		if price.DistributorID == distributorID && price.ProductID == productID {
			return price, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePriceRepo) ListByDistributor(_ context.Context, distributorID uint) ([]*models.ProductPrice, error) {
	var out []*models.ProductPrice
	for _, price := range r.prices {
		if price.DistributorID == distributorID {
			out = append(out, price)
		}
	}
	return out, nil
}

func (r *fakePriceRepo) List(_ context.Context) ([]*models.ProductPrice, error) {
	out := make([]*models.ProductPrice, 0, len(r.prices))
	for _, price := range r.prices {
		out = append(out, price)
	}
	return out, nil
}

func (r *fakePriceRepo) Update(_ context.Context, price *models.ProductPrice) error {
	r.prices[price.ID] = price
	return nil
}

func (r *fakePriceRepo) Delete(_ context.Context, id uint) error {
	delete(r.prices, id)
	return nil
}

func (r *fakePriceRepo) ExistsByProduct(_ context.Context, productID uint) (bool, error) {
	for _, price := range r.prices {
		if price.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePriceRepo) ExistsByDistributor(_ context.Context, distributorID uint) (bool, error) {
	for _, price := range r.prices {
		if price.DistributorID == distributorID {
			return true, nil
		}
	}
	return false, nil
}

type fakeDemandRepo struct {
	demands map[uint]*models.Demand
	nextID  uint
}

func newFakeDemandRepo() *fakeDemandRepo {
	return &fakeDemandRepo{demands: map[uint]*models.Demand{}}
}

func (r *fakeDemandRepo) CreateBatch(_ context.Context, demands []*models.Demand) ([]uint, error) {
	ids := make([]uint, len(demands))
	for i, demand := range demands {
		r.nextID++
		demand.ID = r.nextID
		r.demands[demand.ID] = demand
		ids[i] = demand.ID
	}
	return ids, nil
}

func (r *fakeDemandRepo) GetByID(_ context.Context, id uint) (*models.Demand, error) {
	demand, ok := r.demands[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return demand, nil
}

func (r *fakeDemandRepo) List(_ context.Context, distributorID *uint, offset, limit int) ([]*models.Demand, int64, error) {
	ids := make([]uint, 0, len(r.demands))
	for id := range r.demands {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	var out []*models.Demand
	for _, id := range ids {
		if distributorID != nil && r.demands[id].DistributorID != *distributorID {
			continue
		}
		out = append(out, r.demands[id])
	}
	total := int64(len(out))
	return page(out, offset, limit), total, nil
}

func (r *fakeDemandRepo) UpdateDispatch(_ context.Context, id uint, updates map[string]interface{}) error {
	demand, ok := r.demands[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "dispatch_qty":
			qty := value.(decimal.Decimal)
			demand.DispatchQty = &qty
		case "dispatch_date":
			date := value.(time.Time)
			demand.DispatchDate = &date
		case "dispatch_no":
			no := value.(string)
			demand.DispatchNo = &no
		case "gate_pass_no":
			no := value.(string)
			demand.GatePassNo = &no
		case "vehicle_no":
			no := value.(string)
			demand.VehicleNo = &no
		case "status":
			demand.Status = value.(string)
		}
	}
	return nil
}

func (r *fakeDemandRepo) ExistsByProduct(_ context.Context, productID uint) (bool, error) {
	for _, demand := range r.demands {
		if demand.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDemandRepo) ExistsByDistributor(_ context.Context, distributorID uint) (bool, error) {
	for _, demand := range r.demands {
		if demand.DistributorID == distributorID {
			return true, nil
		}
	}
	return false, nil
}

func seedAdmin(r *fakeUserRepo, email string) *models.User {
	user := &models.User{
		Name:     "Admin",
		Email:    email,
		Password: "x",
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
	r.Create(context.Background(), user)
	return user
}

func seedDistributor(r *fakeUserRepo, email, partyCode string) *models.User {
	mobile := "9876543210"
	route := "North"
	user := &models.User{
		Name:      "Distributor",
		Email:     email,
		Password:  "x",
		Role:      domain.RoleDistributor,
		IsActive:  true,
		PartyCode: &partyCode,
		Mobile:    &mobile,
		Route:     &route,
	}
	r.Create(context.Background(), user)
	return user
}

func seedProduct(r *fakeProductRepo, code string, rate, gst decimal.Decimal) *models.Product {
	product := &models.Product{
		ProductCode: code,
		ProductName: "Product " + code,
		Rate:        rate,
		Gst:         gst,
		Unit:        "ltr",
		Crate:       12,
		IsActive:    true,
	}
	r.Create(context.Background(), product)
	return product
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

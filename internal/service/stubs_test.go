package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/repository"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// invKey identifies one inventory row.
func invKey(ref string, loc uuid.UUID, size string) string {
	return fmt.Sprintf("%s|%s|%s", ref, loc, size)
}

// stubInventoryRepo is an in-memory InventoryRepository. Debits and credits
// are mutex-guarded so concurrency tests exercise the same "never below zero"
// contract the SQL conditional update gives.
type stubInventoryRepo struct {
	mu   sync.Mutex
	rows map[string]*model.InventoryRecord
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{rows: make(map[string]*model.InventoryRecord)}
}

func (r *stubInventoryRepo) seed(ref string, loc uuid.UUID, size string, stock, display int) *model.InventoryRecord {
	rec := &model.InventoryRecord{
		ID:              uuid.New(),
		ReferenceCode:   ref,
		LocationID:      loc,
		Size:            size,
		StockQuantity:   stock,
		DisplayQuantity: display,
		MinimumStock:    5,
	}
	r.rows[invKey(ref, loc, size)] = rec
	return rec
}

func (r *stubInventoryRepo) stock(ref string, loc uuid.UUID, size string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[invKey(ref, loc, size)]
	if !ok {
		return 0
	}
	return rec.StockQuantity
}

func (r *stubInventoryRepo) Find(_ context.Context, ref string, loc uuid.UUID, size string) (*model.InventoryRecord, error) {
	return r.FindTx(nil, ref, loc, size)
}

func (r *stubInventoryRepo) FindTx(_ *gorm.DB, ref string, loc uuid.UUID, size string) (*model.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[invKey(ref, loc, size)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *stubInventoryRepo) FindByReferenceAndLocation(_ context.Context, ref string, loc uuid.UUID) ([]model.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.InventoryRecord
	for _, rec := range r.rows {
		if rec.ReferenceCode == ref && rec.LocationID == loc {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) FindByReferenceExcluding(_ context.Context, ref string, exclude uuid.UUID) ([]model.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.InventoryRecord
	for _, rec := range r.rows {
		if rec.ReferenceCode == ref && rec.LocationID != exclude && (rec.StockQuantity > 0 || rec.DisplayQuantity > 0) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) DebitStockTx(_ *gorm.DB, ref string, loc uuid.UUID, size string, qty int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[invKey(ref, loc, size)]
	if !ok || rec.StockQuantity < qty {
		return 0, nil
	}
	rec.StockQuantity -= qty
	return 1, nil
}

func (r *stubInventoryRepo) CreditStockTx(_ *gorm.DB, ref string, loc uuid.UUID, size string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[invKey(ref, loc, size)]
	if !ok {
		r.rows[invKey(ref, loc, size)] = &model.InventoryRecord{
			ID:            uuid.New(),
			ReferenceCode: ref,
			LocationID:    loc,
			Size:          size,
			StockQuantity: qty,
		}
		return nil
	}
	rec.StockQuantity += qty
	return nil
}

func (r *stubInventoryRepo) ShiftToDisplayTx(_ *gorm.DB, ref string, loc uuid.UUID, size string, qty int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[invKey(ref, loc, size)]
	if !ok || rec.StockQuantity < qty {
		return 0, nil
	}
	rec.StockQuantity -= qty
	rec.DisplayQuantity += qty
	return 1, nil
}

func (r *stubInventoryRepo) ShiftToStockTx(_ *gorm.DB, ref string, loc uuid.UUID, size string, qty int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[invKey(ref, loc, size)]
	if !ok || rec.DisplayQuantity < qty {
		return 0, nil
	}
	rec.DisplayQuantity -= qty
	rec.StockQuantity += qty
	return 1, nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// stubMovementRepo captures movement rows for assertion.
type stubMovementRepo struct {
	mu        sync.Mutex
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) FindByKey(_ context.Context, ref string, loc uuid.UUID, size string, _ int) ([]model.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.ReferenceCode == ref && m.LocationID == loc && m.Size == size {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) FindByReference(_ context.Context, refID uuid.UUID) ([]model.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.ReferenceID != nil && *m.ReferenceID == refID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) byKind(kind string) []model.StockMovement {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// stubLocationRepo holds locations by id.
type stubLocationRepo struct {
	locations map[uuid.UUID]*model.Location
}

func newStubLocationRepo() *stubLocationRepo {
	return &stubLocationRepo{locations: make(map[uuid.UUID]*model.Location)}
}

func (r *stubLocationRepo) seed(name string, active bool) *model.Location {
	loc := &model.Location{ID: uuid.New(), Name: name, Kind: model.LocationStore, Active: active}
	r.locations[loc.ID] = loc
	return loc
}

func (r *stubLocationRepo) Create(_ context.Context, loc *model.Location) error {
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	r.locations[loc.ID] = loc
	return nil
}

func (r *stubLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Location, error) {
	loc, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	return loc, nil
}

func (r *stubLocationRepo) FindAllActive(_ context.Context) ([]model.Location, error) {
	var out []model.Location
	for _, loc := range r.locations {
		if loc.Active {
			out = append(out, *loc)
		}
	}
	return out, nil
}

var _ repository.LocationRepository = (*stubLocationRepo)(nil)

// stubSaleRepo is an in-memory SaleRepository.
type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, sale *model.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.CreatedAt = time.Now()
	r.sales[sale.ID] = sale
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	return r.sales[id], nil
}

func (r *stubSaleRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	return r.sales[id], nil
}

func (r *stubSaleRepo) UpdateTx(_ *gorm.DB, sale *model.Sale) error {
	r.sales[sale.ID] = sale
	return nil
}

func (r *stubSaleRepo) Update(_ context.Context, sale *model.Sale) error {
	r.sales[sale.ID] = sale
	return nil
}

func (r *stubSaleRepo) FindBySellerAndDay(_ context.Context, sellerID uuid.UUID, _ time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.SellerID == sellerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) FindPendingByLocation(_ context.Context, locationID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.LocationID == locationID && s.Status == model.SalePendingConfirmation {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) FindConfirmedMissingReceipt(_ context.Context, before time.Time, limit int) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.Status == model.SaleConfirmed && s.ReceiptReference == nil && s.CreatedAt.Before(before) {
			out = append(out, *s)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubTransferRepo is an in-memory TransferRepository.
type stubTransferRepo struct {
	transfers map[uuid.UUID]*model.TransferRequest
}

func newStubTransferRepo() *stubTransferRepo {
	return &stubTransferRepo{transfers: make(map[uuid.UUID]*model.TransferRequest)}
}

func (r *stubTransferRepo) Create(_ context.Context, req *model.TransferRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	r.transfers[req.ID] = req
	return nil
}

func (r *stubTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*model.TransferRequest, error) {
	return r.transfers[id], nil
}

func (r *stubTransferRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.TransferRequest, error) {
	return r.transfers[id], nil
}

func (r *stubTransferRepo) UpdateTx(_ *gorm.DB, req *model.TransferRequest) error {
	r.transfers[req.ID] = req
	return nil
}

func (r *stubTransferRepo) FindByRequester(_ context.Context, requesterID uuid.UUID) ([]model.TransferRequest, error) {
	var out []model.TransferRequest
	for _, t := range r.transfers {
		if t.RequesterID == requesterID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTransferRepo) FindByStatus(_ context.Context, statuses ...string) ([]model.TransferRequest, error) {
	var out []model.TransferRequest
	for _, t := range r.transfers {
		for _, st := range statuses {
			if t.Status == st {
				out = append(out, *t)
				break
			}
		}
	}
	return out, nil
}

func (r *stubTransferRepo) FindByCourier(_ context.Context, courierID uuid.UUID, statuses ...string) ([]model.TransferRequest, error) {
	var out []model.TransferRequest
	for _, t := range r.transfers {
		if t.CourierID == nil || *t.CourierID != courierID {
			continue
		}
		if len(statuses) == 0 {
			out = append(out, *t)
			continue
		}
		for _, st := range statuses {
			if t.Status == st {
				out = append(out, *t)
				break
			}
		}
	}
	return out, nil
}

func (r *stubTransferRepo) DB() *gorm.DB { return nil }

var _ repository.TransferRepository = (*stubTransferRepo)(nil)

// stubReturnRepo is an in-memory ReturnRepository.
type stubReturnRepo struct {
	returns map[uuid.UUID]*model.ReturnRequest
}

func newStubReturnRepo() *stubReturnRepo {
	return &stubReturnRepo{returns: make(map[uuid.UUID]*model.ReturnRequest)}
}

func (r *stubReturnRepo) Create(_ context.Context, req *model.ReturnRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	r.returns[req.ID] = req
	return nil
}

func (r *stubReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ReturnRequest, error) {
	return r.returns[id], nil
}

func (r *stubReturnRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.ReturnRequest, error) {
	return r.returns[id], nil
}

func (r *stubReturnRepo) UpdateTx(_ *gorm.DB, req *model.ReturnRequest) error {
	r.returns[req.ID] = req
	return nil
}

func (r *stubReturnRepo) FindByRequester(_ context.Context, requesterID uuid.UUID) ([]model.ReturnRequest, error) {
	var out []model.ReturnRequest
	for _, ret := range r.returns {
		if ret.RequesterID == requesterID {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *stubReturnRepo) FindActiveByOriginalTransfer(_ context.Context, originalTransferID uuid.UUID) (*model.ReturnRequest, error) {
	for _, ret := range r.returns {
		if ret.OriginalTransferID == originalTransferID && ret.Status != model.ShipmentCancelled {
			return ret, nil
		}
	}
	return nil, nil
}

func (r *stubReturnRepo) DB() *gorm.DB { return nil }

var _ repository.ReturnRepository = (*stubReturnRepo)(nil)

// stubNotificationRepo is an in-memory NotificationRepository. FindByID and
// FindForRequester resolve the TransferRequest preload through the linked
// transfer repo, like the SQL join does.
type stubNotificationRepo struct {
	notifications map[uuid.UUID]*model.ReturnNotification
	transferRepo  *stubTransferRepo
}

func newStubNotificationRepo(transfers *stubTransferRepo) *stubNotificationRepo {
	return &stubNotificationRepo{
		notifications: make(map[uuid.UUID]*model.ReturnNotification),
		transferRepo:  transfers,
	}
}

func (r *stubNotificationRepo) CreateTx(_ *gorm.DB, n *model.ReturnNotification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.notifications[n.ID] = n
	return nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ReturnNotification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	cp.TransferRequest = r.transferRepo.transfers[n.TransferRequestID]
	return &cp, nil
}

func (r *stubNotificationRepo) Update(_ context.Context, n *model.ReturnNotification) error {
	r.notifications[n.ID] = n
	return nil
}

func (r *stubNotificationRepo) FindForRequester(_ context.Context, requesterID uuid.UUID) ([]model.ReturnNotification, error) {
	var out []model.ReturnNotification
	for _, n := range r.notifications {
		t, ok := r.transferRepo.transfers[n.TransferRequestID]
		if !ok || t.RequesterID != requesterID {
			continue
		}
		cp := *n
		cp.TransferRequest = t
		out = append(out, cp)
	}
	return out, nil
}

func (r *stubNotificationRepo) CountUnreadForRequester(ctx context.Context, requesterID uuid.UUID) (int64, error) {
	ns, _ := r.FindForRequester(ctx, requesterID)
	var count int64
	for _, n := range ns {
		if !n.ReadByRequester {
			count++
		}
	}
	return count, nil
}

var _ repository.NotificationRepository = (*stubNotificationRepo)(nil)

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) seed(email, role string) *model.User {
	u := &model.User{ID: uuid.New(), Email: email, Role: role, Active: true}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Active {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// stubDiscountRepo is an in-memory DiscountRepository.
type stubDiscountRepo struct {
	requests map[uuid.UUID]*model.DiscountRequest
}

func newStubDiscountRepo() *stubDiscountRepo {
	return &stubDiscountRepo{requests: make(map[uuid.UUID]*model.DiscountRequest)}
}

func (r *stubDiscountRepo) Create(_ context.Context, req *model.DiscountRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	return nil
}

func (r *stubDiscountRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DiscountRequest, error) {
	return r.requests[id], nil
}

func (r *stubDiscountRepo) Update(_ context.Context, req *model.DiscountRequest) error {
	r.requests[req.ID] = req
	return nil
}

func (r *stubDiscountRepo) FindBySeller(_ context.Context, sellerID uuid.UUID) ([]model.DiscountRequest, error) {
	var out []model.DiscountRequest
	for _, req := range r.requests {
		if req.SellerID == sellerID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubDiscountRepo) FindPending(_ context.Context) ([]model.DiscountRequest, error) {
	var out []model.DiscountRequest
	for _, req := range r.requests {
		if req.Status == model.DiscountPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

var _ repository.DiscountRepository = (*stubDiscountRepo)(nil)

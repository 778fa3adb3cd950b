package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
	"github.com/tuanvumaihuynh/bizsuite/pkg/ptr"
)

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[int64]model.Product
	err      error
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[int64]model.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func product(id int64, price string, qty int) model.Product {
	return model.Product{
		ID:        id,
		Name:      "Product " + string(rune('A'+id-1)),
		Sku:       "SKU-" + string(rune('A'+id-1)),
		SellPrice: dec(price),
		Quantity:  ptr.New(qty),
		Threshold: ptr.New(10),
		IsActive:  true,
	}
}

func (r *fakeProductRepo) stock(id int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock()
}

func (r *fakeProductRepo) setStock(id int64, qty int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.products[id]
	p.Quantity = ptr.New(qty)
	r.products[id] = p
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = int64(len(r.products) + 1)
	r.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, id int64) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, apperr.ProductNotFoundErr
	}
	return p, nil
}

func (r *fakeProductRepo) ListProducts(context.Context, repository.ListProductsParams) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b model.Product) int { return int(a.ID - b.ID) })
	return out, nil
}

func (r *fakeProductRepo) ListProductsForUpdate(_ context.Context, ids []int64) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return model.Product{}, apperr.ProductNotFoundErr
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id int64, qty int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.products[id]
	if p.Stock() < qty {
		return 0, apperr.InsufficientStockErr
	}
	p.Quantity = ptr.New(p.Stock() - qty)
	r.products[id] = p
	return *p.Quantity, nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, id int64, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.products[id]
	p.Quantity = ptr.New(p.Stock() + qty)
	r.products[id] = p
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []model.Order
	items  map[int64][]model.OrderItem
	err    error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{items: map[int64][]model.OrderItem{}}
}

func (r *fakeOrderRepo) WithDB(db.DB) repository.OrderRepository { return r }

func (r *fakeOrderRepo) CreateOrder(_ context.Context, o model.Order) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = int64(len(r.orders) + 1)
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *fakeOrderRepo) CreateOrderItems(_ context.Context, orderID int64, items []model.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		it.ID = int64(len(r.items[orderID]) + 1)
		it.OrderID = orderID
		r.items[orderID] = append(r.items[orderID], it)
	}
	return nil
}

func (r *fakeOrderRepo) GetOrder(_ context.Context, id int64) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Order{}, apperr.OrderNotFoundErr
}

func (r *fakeOrderRepo) GetOrderForUpdate(ctx context.Context, id int64) (model.Order, error) {
	return r.GetOrder(ctx, id)
}

func (r *fakeOrderRepo) ListOrderItems(_ context.Context, orderID int64) ([]model.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items[orderID]), nil
}

func (r *fakeOrderRepo) ListOrders(context.Context, repository.ListOrdersParams) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return slices.Clone(r.orders), nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			r.orders[i].Status = status
			return r.orders[i], nil
		}
	}
	return model.Order{}, apperr.OrderNotFoundErr
}

func (r *fakeOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type fakeOutboxRepo struct {
	mu   sync.Mutex
	msgs []repository.CreateOutboxMsgParams
}

func (r *fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}

func (r *fakeOutboxRepo) topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	topics := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		topics = append(topics, m.Topic)
	}
	return topics
}

func (r *fakeOutboxRepo) payload(topic string, dst any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.Topic == topic {
			return json.Unmarshal(m.Payload, dst)
		}
	}
	return errors.New("no message for " + topic)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[int64]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]model.User{}}
}

func (r *fakeUserRepo) WithDB(db.DB) repository.UserRepository { return r }

func (r *fakeUserRepo) CreateUser(_ context.Context, u model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.User{}, apperr.EmailTakenErr
		}
	}
	u.ID = int64(len(r.users) + 1)
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id int64) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return model.User{}, apperr.UserNotFoundErr
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, apperr.UserNotFoundErr
}

func (r *fakeUserRepo) ListUsers(context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, u model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return model.User{}, apperr.UserNotFoundErr
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperr.UserNotFoundErr
	}
	delete(r.users, id)
	return nil
}

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads []model.Lead
	err   error
}

func (r *fakeLeadRepo) WithDB(db.DB) repository.LeadRepository { return r }

func (r *fakeLeadRepo) CreateLead(_ context.Context, l model.Lead) (model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = int64(len(r.leads) + 1)
	r.leads = append(r.leads, l)
	return l, nil
}

func (r *fakeLeadRepo) GetLead(_ context.Context, id int64) (model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Lead{}, apperr.LeadNotFoundErr
}

func (r *fakeLeadRepo) ListLeads(context.Context, repository.ListLeadsParams) ([]model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return slices.Clone(r.leads), nil
}

func (r *fakeLeadRepo) UpdateLead(_ context.Context, l model.Lead) (model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leads {
		if r.leads[i].ID == l.ID {
			r.leads[i] = l
			return l, nil
		}
	}
	return model.Lead{}, apperr.LeadNotFoundErr
}

func (r *fakeLeadRepo) DeleteLead(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = slices.DeleteFunc(r.leads, func(l model.Lead) bool { return l.ID == id })
	return nil
}

type fakeInteractionRepo struct {
	interactions []model.LeadInteraction
}

func (r *fakeInteractionRepo) WithDB(db.DB) repository.LeadInteractionRepository { return r }

func (r *fakeInteractionRepo) CreateInteraction(_ context.Context, i model.LeadInteraction) (model.LeadInteraction, error) {
	i.ID = int64(len(r.interactions) + 1)
	r.interactions = append(r.interactions, i)
	return i, nil
}

func (r *fakeInteractionRepo) ListInteractions(_ context.Context, leadID int64) ([]model.LeadInteraction, error) {
	var out []model.LeadInteraction
	for _, i := range r.interactions {
		if i.LeadID == leadID {
			out = append(out, i)
		}
	}
	return out, nil
}

type fakeCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	gets  int
	fails bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.fails {
		return false, errBoom
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fails {
		return errBoom
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type fakeObserver struct {
	mu     sync.Mutex
	totals []decimal.Decimal
}

func (o *fakeObserver) ObserveCheckout(_ model.PaymentMethod, total decimal.Decimal) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.totals = append(o.totals, total)
}

// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ecodeclub/emall/internal/address"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/paymethod"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/voucher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUID = int64(123)

type fakeOrderRepo struct {
	mu      sync.Mutex
	nextID  int64
	orders  map[int64]domain.Order
	deleted []int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]domain.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o domain.Order) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	o.ID = f.nextID
	f.orders[o.ID] = o
	return o.ID, nil
}

func (f *fakeOrderRepo) List(_ context.Context, uid int64, _, _ int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var os []domain.Order
	for _, o := range f.orders {
		if o.UID == uid {
			os = append(os, o)
		}
	}
	return os, nil
}

func (f *fakeOrderRepo) Count(_ context.Context, uid int64) (int64, error) {
	os, _ := f.List(context.Background(), uid, 0, 0)
	return int64(len(os)), nil
}

func (f *fakeOrderRepo) FindByIDAndUID(_ context.Context, id, uid int64) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.UID != uid {
		return domain.Order{}, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) Cancel(_ context.Context, id, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.orders[id]
	o.Status = domain.StatusCancelled
	f.orders[id] = o
	return nil
}

func (f *fakeOrderRepo) UpdatePaymentStatus(_ context.Context, id int64, status domain.Status, transID int64, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.orders[id]
	o.Status = status
	o.MomoTransID = transID
	o.MomoMessage = message
	f.orders[id] = o
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.orders, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeProductSvc struct {
	product.Service
	mu       sync.Mutex
	products map[int64]product.Product
	// debitFailures 指定哪些商品在原子扣减时失败, 用来模拟预检通过但扣减竞争失败
	debitFailures map[int64]bool
	released      map[int64]int64
}

func (f *fakeProductSvc) FindByIDs(_ context.Context, ids []int64) ([]product.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ps []product.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

func (f *fakeProductSvc) DebitStock(_ context.Context, id int64, quantity int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.debitFailures[id] {
		return product.ErrInsufficientStock
	}
	p := f.products[id]
	if p.Stock < quantity {
		return product.ErrInsufficientStock
	}
	p.Stock -= quantity
	f.products[id] = p
	return nil
}

func (f *fakeProductSvc) ReleaseStock(_ context.Context, id int64, quantity int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[id]
	p.Stock += quantity
	f.products[id] = p
	if f.released == nil {
		f.released = map[int64]int64{}
	}
	f.released[id] += quantity
	return nil
}

func (f *fakeProductSvc) stock(id int64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

type fakeAddressSvc struct {
	address.Service
	addresses map[int64]address.Address
}

func (f *fakeAddressSvc) FindByIDAndUID(_ context.Context, id, uid int64) (address.Address, error) {
	a, ok := f.addresses[id]
	if !ok || a.UID != uid {
		return address.Address{}, gorm.ErrRecordNotFound
	}
	return a, nil
}

type fakePaymethodSvc struct {
	paymethod.Service
	methods map[int64]paymethod.PaymentMethod
}

func (f *fakePaymethodSvc) FindActive(_ context.Context, uid, id int64) (paymethod.PaymentMethod, error) {
	pm, ok := f.methods[id]
	if !ok || pm.UID != uid {
		return paymethod.PaymentMethod{}, gorm.ErrRecordNotFound
	}
	return pm, nil
}

type fakeVoucherSvc struct {
	voucher.Service
	validation voucher.Validation
	err        error
	markedUsed []int64
}

func (f *fakeVoucherSvc) ValidateForUser(_ context.Context, _ int64, _ string, _ int64) (voucher.Validation, error) {
	return f.validation, f.err
}

func (f *fakeVoucherSvc) MarkUsed(_ context.Context, redemptionID int64) error {
	f.markedUsed = append(f.markedUsed, redemptionID)
	return nil
}

type fakeCartSvc struct {
	cart.Service
	cleared []int64
}

func (f *fakeCartSvc) Clear(_ context.Context, uid int64) error {
	f.cleared = append(f.cleared, uid)
	return nil
}

type fakeGateway struct {
	payURL  string
	err     error
	created []payment.CreatePayment
}

func (f *fakeGateway) CreatePayment(_ context.Context, p payment.CreatePayment) (payment.GatewayResponse, error) {
	f.created = append(f.created, p)
	if f.err != nil {
		return payment.GatewayResponse{}, f.err
	}
	return payment.GatewayResponse{PayURL: f.payURL, GatewayOrderID: "ORDER_1_1", RequestID: "1-1"}, nil
}

func (f *fakeGateway) VerifyIPNSignature(_ payment.IPNotification) bool { return true }

func (f *fakeGateway) DecodeExtraData(_ string) (int64, bool) { return 0, false }

type fakeProducer struct {
	events []event.OrderEvent
}

func (f *fakeProducer) Produce(_ context.Context, evt event.OrderEvent) error {
	f.events = append(f.events, evt)
	return nil
}

type checkoutFixture struct {
	repo       *fakeOrderRepo
	products   *fakeProductSvc
	addresses  *fakeAddressSvc
	paymethods *fakePaymethodSvc
	vouchers   *fakeVoucherSvc
	carts      *fakeCartSvc
	gateway    *fakeGateway
	producer   *fakeProducer
	svc        Service
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		repo: newFakeOrderRepo(),
		products: &fakeProductSvc{
			products: map[int64]product.Product{
				1: {ID: 1, Name: "棒球帽", Price: 50000, Stock: 10, Status: product.StatusOnShelf},
				7: {ID: 7, Name: "绝版卫衣", Price: 90000, Stock: 1, Status: product.StatusOnShelf},
			},
			debitFailures: map[int64]bool{},
		},
		addresses: &fakeAddressSvc{addresses: map[int64]address.Address{
			10: {ID: 10, UID: testUID, FullName: "Nguyen Van A", Phone: "0900000000", AddressLine: "1 Le Loi, Q1, HCM"},
		}},
		paymethods: &fakePaymethodSvc{methods: map[int64]paymethod.PaymentMethod{
			20: {ID: 20, UID: testUID, Type: paymethod.TypeWallet, Brand: "MoMo"},
			21: {ID: 21, UID: testUID, Type: paymethod.TypeBank, Brand: "VCB"},
		}},
		vouchers: &fakeVoucherSvc{},
		carts:    &fakeCartSvc{},
		gateway:  &fakeGateway{payURL: "https://test-payment.momo.vn/pay/abc"},
		producer: &fakeProducer{},
	}
	f.svc = NewService(f.repo, f.producer, sequencenumber.NewGenerator(),
		f.products, f.addresses, f.paymethods, f.vouchers, f.carts, f.gateway)
	return f
}

func TestService_Checkout_COD(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()

	res, err := f.svc.Checkout(context.Background(), domain.Checkout{
		UID:       testUID,
		Items:     []domain.CheckoutItem{{ProductID: 1, Quantity: 2}},
		AddressID: 10,
	})
	require.NoError(t, err)

	o := res.Order
	assert.Equal(t, int64(100000), o.SubTotal)
	assert.Equal(t, int64(0), o.Discount)
	assert.Equal(t, int64(0), o.ShippingFee)
	assert.Equal(t, int64(100000), o.TotalAmount)
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Equal(t, "cod", o.PaymentMethod)
	assert.NotEmpty(t, o.SN)
	assert.Nil(t, res.Momo)

	// 库存恰好减了 2, 购物车被清空
	assert.Equal(t, int64(8), f.products.stock(1))
	assert.Equal(t, []int64{testUID}, f.carts.cleared)
	assert.Empty(t, f.gateway.created)
	require.Len(t, f.producer.events, 1)
	assert.Equal(t, o.ID, f.producer.events[0].OrderID)
}

func TestService_Checkout_AddressNotOwned(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()

	_, err := f.svc.Checkout(context.Background(), domain.Checkout{
		UID:       456,
		Items:     []domain.CheckoutItem{{ProductID: 1, Quantity: 1}},
		AddressID: 10,
	})
	assert.ErrorIs(t, err, ErrAddressInvalid)
	assert.Empty(t, f.repo.orders)
}

func TestService_Checkout_StockPrecheckFails(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()

	_, err := f.svc.Checkout(context.Background(), domain.Checkout{
		UID:       testUID,
		Items:     []domain.CheckoutItem{{ProductID: 7, Quantity: 2}},
		AddressID: 10,
	})
	assert.ErrorIs(t, err, ErrStockExhausted)

	// 没有订单落库, 库存原封不动, 购物车一个条目都没清
	assert.Empty(t, f.repo.orders)
	assert.Equal(t, int64(1), f.products.stock(7))
	assert.Empty(t, f.carts.cleared)
}

func TestService_Checkout_DebitFailureCompensates(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()
	// 第二行预检能过, 原子扣减时竞争失败
	f.products.debitFailures[7] = true

	_, err := f.svc.Checkout(context.Background(), domain.Checkout{
		UID: testUID,
		Items: []domain.CheckoutItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 7, Quantity: 1},
		},
		AddressID: 10,
	})
	assert.ErrorIs(t, err, ErrStockExhausted)

	// 第一行扣掉的 2 件已归还, 刚落库的订单被撤掉
	assert.Equal(t, int64(10), f.products.stock(1))
	assert.Equal(t, int64(2), f.products.released[1])
	assert.Empty(t, f.repo.orders)
	assert.Len(t, f.repo.deleted, 1)
	assert.Empty(t, f.carts.cleared)
}

func TestService_Checkout_WithVoucher(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()
	f.vouchers.validation = voucher.Validation{VoucherID: 5, RedemptionID: 55, Discount: 20000}

	res, err := f.svc.Checkout(context.Background(), domain.Checkout{
		UID:         testUID,
		Items:       []domain.CheckoutItem{{ProductID: 1, Quantity: 6}},
		AddressID:   10,
		VoucherCode: "SALE10",
	})
	require.NoError(t, err)

	o := res.Order
	assert.Equal(t, int64(300000), o.SubTotal)
	assert.Equal(t, int64(20000), o.Discount)
	assert.Equal(t, int64(280000), o.TotalAmount)
	assert.Equal(t, int64(5), o.VoucherID)
	// 核销发生在订单落库之后
	assert.Equal(t, []int64{55}, f.vouchers.markedUsed)
}

func TestService_Checkout_VoucherInvalid(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()
	f.vouchers.err = voucher.ErrVoucherExpired

	_, err := f.svc.Checkout(context.Background(), domain.Checkout{
		UID:         testUID,
		Items:       []domain.CheckoutItem{{ProductID: 1, Quantity: 1}},
		AddressID:   10,
		VoucherCode: "SALE10",
	})
	assert.ErrorIs(t, err, voucher.ErrVoucherExpired)
	// 失败在落库之前, 什么效果都不应该发生
	assert.Empty(t, f.repo.orders)
	assert.Equal(t, int64(10), f.products.stock(1))
}

func TestService_Checkout_WalletInvokesGateway(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()

	res, err := f.svc.Checkout(context.Background(), domain.Checkout{
		UID:             testUID,
		Items:           []domain.CheckoutItem{{ProductID: 1, Quantity: 2}},
		AddressID:       10,
		PaymentMethodID: 20,
	})
	require.NoError(t, err)

	require.NotNil(t, res.Momo)
	assert.Equal(t, "https://test-payment.momo.vn/pay/abc", res.Momo.PayURL)
	assert.Equal(t, "credit_card", res.Order.PaymentMethod)
	require.Len(t, f.gateway.created, 1)
	assert.Equal(t, res.Order.TotalAmount, f.gateway.created[0].Amount)
}

func TestService_Checkout_LowercaseWalletTypeInvokesGateway(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()
	// 历史数据里 type 可能是小写存的, 渠道归类和网关分支要同样认
	f.paymethods.methods[22] = paymethod.PaymentMethod{
		ID: 22, UID: testUID, Type: paymethod.Type("wallet"), Brand: "MOMO",
	}

	res, err := f.svc.Checkout(context.Background(), domain.Checkout{
		UID:             testUID,
		Items:           []domain.CheckoutItem{{ProductID: 1, Quantity: 1}},
		AddressID:       10,
		PaymentMethodID: 22,
	})
	require.NoError(t, err)

	assert.Equal(t, "credit_card", res.Order.PaymentMethod)
	require.NotNil(t, res.Momo)
	assert.Equal(t, "https://test-payment.momo.vn/pay/abc", res.Momo.PayURL)
	require.Len(t, f.gateway.created, 1)
}

func TestService_Checkout_BankSkipsGateway(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()

	res, err := f.svc.Checkout(context.Background(), domain.Checkout{
		UID:             testUID,
		Items:           []domain.CheckoutItem{{ProductID: 1, Quantity: 1}},
		AddressID:       10,
		PaymentMethodID: 21,
	})
	require.NoError(t, err)

	assert.Nil(t, res.Momo)
	assert.Equal(t, "bank_transfer", res.Order.PaymentMethod)
	assert.Empty(t, f.gateway.created)
}

func TestService_Cancel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		status  domain.Status
		wantErr error
	}{
		{name: "pending 可取消", status: domain.StatusPending},
		{name: "confirmed 可取消", status: domain.StatusConfirmed},
		{name: "shipped 拒绝", status: domain.StatusShipped, wantErr: ErrNotCancelable},
		{name: "delivered 拒绝", status: domain.StatusDelivered, wantErr: ErrNotCancelable},
		{name: "cancelled 拒绝", status: domain.StatusCancelled, wantErr: ErrNotCancelable},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newCheckoutFixture()
			id, err := f.repo.Create(context.Background(), domain.Order{
				UID:    testUID,
				Status: tc.status,
			})
			require.NoError(t, err)

			err = f.svc.Cancel(context.Background(), testUID, id)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			o, err := f.repo.FindByIDAndUID(context.Background(), id, testUID)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusCancelled, o.Status)
		})
	}
}

func TestService_Cancel_NotFound(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()
	err := f.svc.Cancel(context.Background(), testUID, 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_UpdatePaymentStatus_RejectsUnknown(t *testing.T) {
	t.Parallel()
	f := newCheckoutFixture()
	id, err := f.repo.Create(context.Background(), domain.Order{UID: testUID, Status: domain.StatusPending})
	require.NoError(t, err)

	err = f.svc.UpdatePaymentStatus(context.Background(), id, "paid", 1, "")
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)

	err = f.svc.UpdatePaymentStatus(context.Background(), id, "confirmed", 999, "Successful.")
	require.NoError(t, err)
	o, err := f.repo.FindByIDAndUID(context.Background(), id, testUID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, o.Status)
	assert.Equal(t, int64(999), o.MomoTransID)
}

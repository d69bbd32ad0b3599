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

//go:build e2e

package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/emall/internal/address"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/paymethod"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/test"
	testioc "github.com/ecodeclub/emall/internal/test/ioc"
	"github.com/ecodeclub/emall/internal/voucher"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

const uid = 2077

// web 层的响应结构, 测试里只关心这几个字段
type checkoutVO struct {
	OrderID       int64  `json:"orderId"`
	OrderSN       string `json:"orderSn"`
	SubTotal      int64  `json:"subTotal"`
	Discount      int64  `json:"discount"`
	ShippingFee   int64  `json:"shippingFee"`
	TotalAmount   int64  `json:"totalAmount"`
	Status        string `json:"status"`
	PaymentMethod string `json:"paymentMethod"`
}

type CheckoutTestSuite struct {
	suite.Suite
	server *egin.Component
	db     *egorm.Component

	svc        order.Service
	productSvc product.Service
	addressSvc address.Service
	voucherSvc voucher.Service
	cartSvc    cart.Service
}

func (s *CheckoutTestSuite) SetupSuite() {
	db := testioc.InitDB()
	q := testioc.InitMQ()
	c := testioc.InitCache()

	productModule := product.InitModule(db)
	addressModule := address.InitModule(db)
	paymethodModule := paymethod.InitModule(db)
	voucherModule := voucher.InitModule(db)
	cartModule := cart.InitModule(db, productModule)

	econf.Set("momo", map[string]any{
		"partnerCode": "MOMO",
		"accessKey":   "F8BBA842ECF85",
		"secretKey":   "K951B6PE1waDMi640xX08PD3vg6EkVlz",
		"redirectUrl": "http://localhost:3000/payment/result",
		"ipnUrl":      "http://localhost:8002/momo/ipn",
	})
	adapter := &orderAdapter{}
	paymentModule, err := payment.InitModule(q, adapter, adapter)
	require.NoError(s.T(), err)
	mod, err := order.InitModule(db, c, q,
		productModule, addressModule, paymethodModule,
		voucherModule, cartModule, paymentModule)
	require.NoError(s.T(), err)
	adapter.svc = mod.Svc

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: uid,
		}))
	})
	mod.Hdl.PrivateRoutes(server.Engine)

	s.server = server
	s.db = db
	s.svc = mod.Svc
	s.productSvc = productModule.Svc
	s.addressSvc = addressModule.Svc
	s.voucherSvc = voucherModule.Svc
	s.cartSvc = cartModule.Svc
}

func (s *CheckoutTestSuite) TearDownTest() {
	for _, table := range []string{
		"orders", "order_items",
		"products", "addresses",
		"carts", "cart_items",
		"vouchers", "user_vouchers",
	} {
		err := s.db.Exec(fmt.Sprintf("TRUNCATE TABLE `%s`", table)).Error
		require.NoError(s.T(), err)
	}
}

func (s *CheckoutTestSuite) seedProduct(price, stock int64) int64 {
	id, err := s.productSvc.Create(context.Background(), product.Product{
		Name:   "测试商品",
		Price:  price,
		Stock:  stock,
		Status: product.StatusOnShelf,
	})
	require.NoError(s.T(), err)
	return id
}

func (s *CheckoutTestSuite) seedAddress() int64 {
	id, err := s.addressSvc.Create(context.Background(), address.Address{
		UID:         uid,
		FullName:    "Nguyen Van A",
		Phone:       "0900000000",
		AddressLine: "1 Le Loi, Q1, HCM",
	})
	require.NoError(s.T(), err)
	return id
}

func (s *CheckoutTestSuite) TestCheckout_COD() {
	t := s.T()
	productID := s.seedProduct(50000, 10)
	addressID := s.seedAddress()
	_, err := s.cartSvc.Add(context.Background(), uid, cart.Item{
		ProductID: productID,
		Quantity:  2,
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost,
		"/order/checkout", iox.NewJSONReader(map[string]any{
			"requestId": "cod-1",
			"items": []map[string]any{
				{"productId": productID, "quantity": 2},
			},
			"addressId": addressID,
		}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[checkoutVO]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)

	resp := recorder.MustScan().Data
	assert.NotZero(t, resp.OrderID)
	assert.NotEmpty(t, resp.OrderSN)
	assert.Equal(t, int64(100000), resp.SubTotal)
	assert.Equal(t, int64(0), resp.Discount)
	assert.Equal(t, int64(100000), resp.TotalAmount)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "cod", resp.PaymentMethod)

	// 库存扣掉 2 件, 购物车被清空
	p, err := s.productSvc.FindByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), p.Stock)
	ct, err := s.cartSvc.Get(context.Background(), uid)
	require.NoError(t, err)
	assert.Empty(t, ct.Items)
}

func (s *CheckoutTestSuite) TestCheckout_DuplicateRequestID() {
	t := s.T()
	productID := s.seedProduct(50000, 10)
	addressID := s.seedAddress()

	body := map[string]any{
		"requestId": "dup-1",
		"items": []map[string]any{
			{"productId": productID, "quantity": 1},
		},
		"addressId": addressID,
	}
	req, err := http.NewRequest(http.MethodPost,
		"/order/checkout", iox.NewJSONReader(body))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[checkoutVO]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)

	// 同一个 requestId 原样重放, 在入口被挡下, 不会产生第二张订单
	req, err = http.NewRequest(http.MethodPost,
		"/order/checkout", iox.NewJSONReader(body))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder2 := test.NewJSONResponseRecorder[checkoutVO]()
	s.server.ServeHTTP(recorder2, req)
	require.Equal(t, 500, recorder2.Code)
	assert.Equal(t, 606009, recorder2.MustScan().Code)

	p, err := s.productSvc.FindByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.Stock)
}

func (s *CheckoutTestSuite) TestCheckout_StockExhausted() {
	t := s.T()
	productID := s.seedProduct(90000, 1)
	addressID := s.seedAddress()

	req, err := http.NewRequest(http.MethodPost,
		"/order/checkout", iox.NewJSONReader(map[string]any{
			"requestId": "stock-1",
			"items": []map[string]any{
				{"productId": productID, "quantity": 2},
			},
			"addressId": addressID,
		}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[checkoutVO]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 500, recorder.Code)
	assert.Equal(t, 606005, recorder.MustScan().Code)

	// 整单失败, 库存原封不动, 没有订单留下来
	p, err := s.productSvc.FindByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Stock)
	_, total, err := s.svc.List(context.Background(), uid, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func (s *CheckoutTestSuite) TestCheckout_WithVoucher() {
	t := s.T()
	productID := s.seedProduct(50000, 10)
	addressID := s.seedAddress()
	now := time.Now().UnixMilli()
	voucherID, err := s.voucherSvc.CreateVoucher(context.Background(), voucher.Voucher{
		Code:              "SALE10",
		DiscountType:      "PERCENT",
		DiscountValue:     10,
		MaxDiscountAmount: 20000,
		StartAt:           now - 1000,
		EndAt:             now + 24*3600*1000,
	})
	require.NoError(t, err)
	_, err = s.voucherSvc.GrantToUser(context.Background(), uid, voucherID)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost,
		"/order/checkout", iox.NewJSONReader(map[string]any{
			"requestId": "voucher-1",
			"items": []map[string]any{
				{"productId": productID, "quantity": 6},
			},
			"addressId":   addressID,
			"voucherCode": "SALE10",
		}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[checkoutVO]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)

	resp := recorder.MustScan().Data
	assert.Equal(t, int64(300000), resp.SubTotal)
	// 10% 是 30000, 被上限封到 20000
	assert.Equal(t, int64(20000), resp.Discount)
	assert.Equal(t, int64(280000), resp.TotalAmount)

	rds, _, err := s.voucherSvc.ListByUID(context.Background(), uid)
	require.NoError(t, err)
	require.Len(t, rds, 1)
	assert.Equal(t, voucher.RedemptionStatusUsed, rds[0].Status)
}

// 并发抢同一件商品, 成功单数不能超过库存数
func (s *CheckoutTestSuite) TestCheckout_ConcurrentStock() {
	t := s.T()
	const stock = 3
	const buyers = 6
	productID := s.seedProduct(50000, stock)
	addressID := s.seedAddress()

	var eg errgroup.Group
	results := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		i := i
		eg.Go(func() error {
			_, err := s.svc.Checkout(context.Background(), order.Checkout{
				UID: uid,
				Items: []order.CheckoutItem{
					{ProductID: productID, Quantity: 1},
				},
				AddressID: addressID,
			})
			results[i] = err
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	var succeeded int
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, order.ErrStockExhausted)
		}
	}
	assert.Equal(t, stock, succeeded)
	p, err := s.productSvc.FindByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Zero(t, p.Stock)
}

func (s *CheckoutTestSuite) TestCancel() {
	t := s.T()
	productID := s.seedProduct(50000, 10)
	addressID := s.seedAddress()
	res, err := s.svc.Checkout(context.Background(), order.Checkout{
		UID: uid,
		Items: []order.CheckoutItem{
			{ProductID: productID, Quantity: 1},
		},
		AddressID: addressID,
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost,
		"/order/cancel", iox.NewJSONReader(map[string]any{
			"orderId": res.Order.ID,
		}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)

	o, err := s.svc.Detail(context.Background(), uid, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, o.Status)

	// 已取消的订单再取消一次要被拒绝
	req, err = http.NewRequest(http.MethodPost,
		"/order/cancel", iox.NewJSONReader(map[string]any{
			"orderId": res.Order.ID,
		}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder2 := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder2, req)
	require.Equal(t, 500, recorder2.Code)
	assert.Equal(t, 606008, recorder2.MustScan().Code)
}

// orderAdapter 与 ioc 里的装配方式一致, 剪开支付和订单的初始化环
type orderAdapter struct {
	svc order.Service
}

func (a *orderAdapter) UpdatePaymentStatus(ctx context.Context,
	orderID int64, status payment.PaymentStatus, transID int64, message string) error {
	return a.svc.UpdatePaymentStatus(ctx, orderID, string(status), transID, message)
}

func (a *orderAdapter) FindTotalAmount(ctx context.Context, uid, orderID int64) (int64, error) {
	return a.svc.FindTotalAmount(ctx, uid, orderID)
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

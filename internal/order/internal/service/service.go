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
	"errors"
	"fmt"
	"strings"

	"github.com/ecodeclub/emall/internal/address"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/paymethod"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/voucher"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrAddressInvalid       = errors.New("收货地址不存在或不属于当前用户")
	ErrPaymentMethodInvalid = errors.New("支付方式不存在或不可用")
	ErrEmptyCheckout        = errors.New("结账行条目不能为空")
	ErrInvalidQuantity      = errors.New("商品数量必须为正数")
	// ErrProductNotSellable 目录里查不到价格, 整单失败
	ErrProductNotSellable = errors.New("商品不可售")
	// ErrStockExhausted 预检或原子扣减任何一步扣不动都归到这里
	ErrStockExhausted   = errors.New("库存不足")
	ErrOrderNotFound    = errors.New("订单不存在")
	ErrNotCancelable    = errors.New("订单当前状态不可取消")
	ErrGatewayUnpayable = errors.New("创建网关支付失败")
)

type Service interface {
	// Checkout 把一份购物车快照变成一张持久化订单.
	// 初始状态永远是 pending, 库存扣减失败会撤掉已落库的订单并归还已扣库存
	Checkout(ctx context.Context, c domain.Checkout) (domain.CheckoutResult, error)
	List(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, int64, error)
	Detail(ctx context.Context, uid, id int64) (domain.Order, error)
	Cancel(ctx context.Context, uid, id int64) error
	// FindTotalAmount 支付侧取可信金额用
	FindTotalAmount(ctx context.Context, uid, id int64) (int64, error)
	// UpdatePaymentStatus 对账回写, 不认识的状态值直接拒绝
	UpdatePaymentStatus(ctx context.Context, id int64, status string, transID int64, message string) error
}

func NewService(repo repository.OrderRepository,
	producer event.OrderEventProducer,
	snGenerator *sequencenumber.Generator,
	productSvc product.Service,
	addressSvc address.Service,
	paymethodSvc paymethod.Service,
	voucherSvc voucher.Service,
	cartSvc cart.Service,
	gatewaySvc payment.GatewayService) Service {
	return &service{
		repo:         repo,
		producer:     producer,
		snGenerator:  snGenerator,
		productSvc:   productSvc,
		addressSvc:   addressSvc,
		paymethodSvc: paymethodSvc,
		voucherSvc:   voucherSvc,
		cartSvc:      cartSvc,
		gatewaySvc:   gatewaySvc,
		logger:       elog.DefaultLogger,
	}
}

type service struct {
	repo         repository.OrderRepository
	producer     event.OrderEventProducer
	snGenerator  *sequencenumber.Generator
	productSvc   product.Service
	addressSvc   address.Service
	paymethodSvc paymethod.Service
	voucherSvc   voucher.Service
	cartSvc      cart.Service
	gatewaySvc   payment.GatewayService
	logger       *elog.Component

	// shippingFee 目前恒为零, 但必须保留成显式输入而不是写死在公式里
	shippingFee int64
}

func (s *service) Checkout(ctx context.Context, c domain.Checkout) (domain.CheckoutResult, error) {
	if len(c.Items) == 0 {
		return domain.CheckoutResult{}, ErrEmptyCheckout
	}

	// 1. 地址归属校验, 通过后立刻做文本快照
	addr, err := s.addressSvc.FindByIDAndUID(ctx, c.AddressID, c.UID)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("%w: %w", ErrAddressInvalid, err)
	}
	snapshot := fmt.Sprintf("%s, %s, %s", addr.FullName, addr.Phone, addr.AddressLine)

	// 2. 支付方式可选, 不给就是货到付款
	var pm paymethod.PaymentMethod
	channel := paymethod.ChannelCOD
	if c.PaymentMethodID > 0 {
		pm, err = s.paymethodSvc.FindActive(ctx, c.UID, c.PaymentMethodID)
		if err != nil {
			return domain.CheckoutResult{}, fmt.Errorf("%w: %w", ErrPaymentMethodInvalid, err)
		}
		channel = paymethod.ResolveChannel(pm.Type)
	}

	// 3. 批量取价 + 库存预检, 单价在这里冻结
	items, subTotal, err := s.priceItems(ctx, c.Items)
	if err != nil {
		return domain.CheckoutResult{}, err
	}

	// 4. 优惠券校验与折扣计算
	var validation voucher.Validation
	if c.VoucherCode != "" {
		validation, err = s.voucherSvc.ValidateForUser(ctx, c.UID, c.VoucherCode, subTotal)
		if err != nil {
			return domain.CheckoutResult{}, err
		}
	}

	// 5. 金额不变式在这里唯一地成立一次
	o := domain.Order{
		UID:             c.UID,
		AddressSnapshot: snapshot,
		PaymentMethodID: c.PaymentMethodID,
		VoucherID:       validation.VoucherID,
		SubTotal:        subTotal,
		Discount:        validation.Discount,
		ShippingFee:     s.shippingFee,
		TotalAmount:     domain.Total(subTotal, validation.Discount, s.shippingFee),
		Status:          domain.StatusPending,
		PaymentMethod:   channel.String(),
		Items:           items,
	}
	o.SN, err = s.snGenerator.Generate(c.UID)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("生成订单序列号失败: %w", err)
	}

	// 6. 订单和行条目作为一个事务落库
	o.ID, err = s.repo.Create(ctx, o)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("创建订单失败: %w", err)
	}

	// 7. 逐行原子扣库存, 扣不动就整单补偿:
	// 归还已扣的行, 撤掉刚落库的订单
	if err = s.debitStock(ctx, o.ID, c.Items); err != nil {
		return domain.CheckoutResult{}, err
	}

	// 8. 清空购物车, 没有购物车等同已清空.
	// 订单已经是事实, 清不掉只记日志
	if er := s.cartSvc.Clear(ctx, c.UID); er != nil {
		s.logger.Error("结账后清空购物车失败",
			elog.FieldErr(er),
			elog.Int64("uid", c.UID),
			elog.Int64("order_id", o.ID))
	}

	// 9. 核销优惠券, 必须晚于订单落库
	if validation.RedemptionID > 0 {
		if er := s.voucherSvc.MarkUsed(ctx, validation.RedemptionID); er != nil {
			s.logger.Error("核销优惠券失败",
				elog.FieldErr(er),
				elog.Int64("redemption_id", validation.RedemptionID),
				elog.Int64("order_id", o.ID))
		}
	}

	evt := event.OrderEvent{
		OrderID:     o.ID,
		OrderSN:     o.SN,
		UID:         o.UID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
	}
	if er := s.producer.Produce(ctx, evt); er != nil {
		s.logger.Error("发送订单事件失败", elog.FieldErr(er), elog.Any("event", evt))
	}

	// 10. 钱包类型且品牌命中网关才去造跳转链接
	result := domain.CheckoutResult{Order: o}
	if strings.EqualFold(string(pm.Type), string(paymethod.TypeWallet)) &&
		strings.EqualFold(pm.Brand, payment.Brand) {
		resp, er := s.gatewaySvc.CreatePayment(ctx, payment.CreatePayment{
			OrderID:   o.ID,
			Amount:    o.TotalAmount,
			OrderInfo: fmt.Sprintf("Thanh toan don hang #%d", o.ID),
		})
		if er != nil {
			// 订单保留, 支付可以事后重试
			return domain.CheckoutResult{}, fmt.Errorf("%w: %w", ErrGatewayUnpayable, er)
		}
		result.Momo = &domain.MomoPayload{PayURL: resp.PayURL}
	}
	return result, nil
}

func (s *service) priceItems(ctx context.Context, lines []domain.CheckoutItem) ([]domain.Item, int64, error) {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, 0, ErrInvalidQuantity
		}
		if _, ok := seen[line.ProductID]; !ok {
			seen[line.ProductID] = struct{}{}
			ids = append(ids, line.ProductID)
		}
	}
	ps, err := s.productSvc.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("批量查询商品失败: %w", err)
	}
	byID := make(map[int64]product.Product, len(ps))
	for _, p := range ps {
		byID[p.ID] = p
	}

	items := make([]domain.Item, 0, len(lines))
	var subTotal int64
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok || p.Status != product.StatusOnShelf {
			return nil, 0, fmt.Errorf("%w: product_id=%d", ErrProductNotSellable, line.ProductID)
		}
		// 预检只是提前失败, 权威判定仍在原子扣减那一步
		if p.Stock < line.Quantity {
			return nil, 0, fmt.Errorf("%w: product_id=%d", ErrStockExhausted, line.ProductID)
		}
		items = append(items, domain.Item{
			ProductID:   p.ID,
			ProductName: p.Name,
			Size:        line.Size,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
		})
		subTotal += p.Price * line.Quantity
	}
	return items, subTotal, nil
}

func (s *service) debitStock(ctx context.Context, orderID int64, lines []domain.CheckoutItem) error {
	for i, line := range lines {
		err := s.productSvc.DebitStock(ctx, line.ProductID, line.Quantity)
		if err == nil {
			continue
		}
		// 归还之前已经扣成功的行
		for j := 0; j < i; j++ {
			if er := s.productSvc.ReleaseStock(ctx, lines[j].ProductID, lines[j].Quantity); er != nil {
				s.logger.Error("补偿归还库存失败",
					elog.FieldErr(er),
					elog.Int64("product_id", lines[j].ProductID),
					elog.Int64("quantity", lines[j].Quantity))
			}
		}
		if er := s.repo.Delete(ctx, orderID); er != nil {
			s.logger.Error("补偿删除订单失败",
				elog.FieldErr(er),
				elog.Int64("order_id", orderID))
		}
		if errors.Is(err, product.ErrInsufficientStock) {
			return fmt.Errorf("%w: product_id=%d", ErrStockExhausted, line.ProductID)
		}
		return fmt.Errorf("扣减库存失败: %w", err)
	}
	return nil
}

func (s *service) List(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, int64, error) {
	os, err := s.repo.List(ctx, uid, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, uid)
	if err != nil {
		return nil, 0, err
	}
	return os, total, nil
}

func (s *service) Detail(ctx context.Context, uid, id int64) (domain.Order, error) {
	o, err := s.repo.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	}
	return o, nil
}

func (s *service) Cancel(ctx context.Context, uid, id int64) error {
	// 先确认归属, 查不到就是 404 而不是 403
	o, err := s.repo.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	}
	if !o.Status.Cancelable() {
		return fmt.Errorf("%w: status=%s", ErrNotCancelable, o.Status)
	}
	// 条件更新兜底并发下的状态变化
	if err = s.repo.Cancel(ctx, id, uid); err != nil {
		return fmt.Errorf("%w: %w", ErrNotCancelable, err)
	}
	return nil
}

func (s *service) FindTotalAmount(ctx context.Context, uid, id int64) (int64, error) {
	o, err := s.repo.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	}
	return o.TotalAmount, nil
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id int64, status string, transID int64, message string) error {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return err
	}
	return s.repo.UpdatePaymentStatus(ctx, id, st, transID, message)
}

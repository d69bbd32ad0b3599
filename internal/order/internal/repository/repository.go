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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
)

type OrderRepository interface {
	Create(ctx context.Context, o domain.Order) (int64, error)
	List(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, error)
	Count(ctx context.Context, uid int64) (int64, error)
	// FindByIDAndUID 连行条目一起取
	FindByIDAndUID(ctx context.Context, id, uid int64) (domain.Order, error)
	Cancel(ctx context.Context, id, uid int64) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.Status, transID int64, message string) error
	Delete(ctx context.Context, id int64) error
}

func NewOrderRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{d: d}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (r *orderRepository) Create(ctx context.Context, o domain.Order) (int64, error) {
	items := slice.Map(o.Items, func(idx int, src domain.Item) dao.OrderItem {
		return dao.OrderItem{
			ProductId:   src.ProductID,
			ProductName: src.ProductName,
			Size:        src.Size,
			Quantity:    src.Quantity,
			UnitPrice:   src.UnitPrice,
		}
	})
	return r.d.CreateOrder(ctx, dao.Order{
		SN:              o.SN,
		UID:             o.UID,
		AddressSnapshot: o.AddressSnapshot,
		PaymentMethodID: o.PaymentMethodID,
		VoucherID:       o.VoucherID,
		SubTotal:        o.SubTotal,
		Discount:        o.Discount,
		ShippingFee:     o.ShippingFee,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		PaymentMethod:   o.PaymentMethod,
	}, items)
}

func (r *orderRepository) List(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, error) {
	os, err := r.d.FindByUID(ctx, uid, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return r.toDomain(src, nil)
	}), nil
}

func (r *orderRepository) Count(ctx context.Context, uid int64) (int64, error) {
	return r.d.CountByUID(ctx, uid)
}

func (r *orderRepository) FindByIDAndUID(ctx context.Context, id, uid int64) (domain.Order, error) {
	o, err := r.d.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := r.d.FindItemsByOrderID(ctx, o.Id)
	if err != nil {
		return domain.Order{}, err
	}
	return r.toDomain(o, items), nil
}

func (r *orderRepository) Cancel(ctx context.Context, id, uid int64) error {
	return r.d.CancelOrder(ctx, id, uid)
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.Status, transID int64, message string) error {
	return r.d.UpdatePaymentStatus(ctx, id, string(status), transID, message)
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	return r.d.DeleteOrder(ctx, id)
}

func (r *orderRepository) toDomain(o dao.Order, items []dao.OrderItem) domain.Order {
	return domain.Order{
		ID:              o.Id,
		SN:              o.SN,
		UID:             o.UID,
		AddressSnapshot: o.AddressSnapshot,
		PaymentMethodID: o.PaymentMethodID,
		VoucherID:       o.VoucherID,
		SubTotal:        o.SubTotal,
		Discount:        o.Discount,
		ShippingFee:     o.ShippingFee,
		TotalAmount:     o.TotalAmount,
		Status:          domain.Status(o.Status),
		PaymentMethod:   o.PaymentMethod,
		MomoTransID:     o.MomoTransID,
		MomoMessage:     o.MomoMessage,
		Ctime:           o.Ctime,
		Items: slice.Map(items, func(idx int, src dao.OrderItem) domain.Item {
			return domain.Item{
				ID:          src.Id,
				ProductID:   src.ProductId,
				ProductName: src.ProductName,
				Size:        src.Size,
				Quantity:    src.Quantity,
				UnitPrice:   src.UnitPrice,
			}
		}),
	}
}

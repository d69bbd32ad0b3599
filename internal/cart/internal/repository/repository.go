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
	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ecodeclub/emall/internal/cart/internal/repository/dao"
)

type CartRepository interface {
	GetCart(ctx context.Context, uid int64) (domain.Cart, error)
	AddItem(ctx context.Context, uid int64, item domain.Item) (int64, error)
	UpdateQuantity(ctx context.Context, uid, itemID, quantity int64) error
	RemoveItem(ctx context.Context, uid, itemID int64) error
	Clear(ctx context.Context, uid int64) error
}

func NewCartRepository(d dao.CartDAO) CartRepository {
	return &cartRepository{d: d}
}

type cartRepository struct {
	d dao.CartDAO
}

func (r *cartRepository) GetCart(ctx context.Context, uid int64) (domain.Cart, error) {
	c, err := r.d.GetOrCreateCart(ctx, uid)
	if err != nil {
		return domain.Cart{}, err
	}
	items, err := r.d.FindItems(ctx, c.Id)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.Cart{
		ID:  c.Id,
		UID: c.UID,
		Items: slice.Map(items, func(idx int, src dao.CartItem) domain.Item {
			return domain.Item{
				ID:        src.Id,
				ProductID: src.ProductId,
				Size:      src.Size,
				Quantity:  src.Quantity,
			}
		}),
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, uid int64, item domain.Item) (int64, error) {
	c, err := r.d.GetOrCreateCart(ctx, uid)
	if err != nil {
		return 0, err
	}
	return r.d.UpsertItem(ctx, dao.CartItem{
		CartID:    c.Id,
		ProductId: item.ProductID,
		Size:      item.Size,
		Quantity:  item.Quantity,
	})
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, uid, itemID, quantity int64) error {
	c, err := r.d.GetOrCreateCart(ctx, uid)
	if err != nil {
		return err
	}
	return r.d.UpdateQuantity(ctx, c.Id, itemID, quantity)
}

func (r *cartRepository) RemoveItem(ctx context.Context, uid, itemID int64) error {
	c, err := r.d.GetOrCreateCart(ctx, uid)
	if err != nil {
		return err
	}
	return r.d.DeleteItem(ctx, c.Id, itemID)
}

func (r *cartRepository) Clear(ctx context.Context, uid int64) error {
	return r.d.ClearByUID(ctx, uid)
}

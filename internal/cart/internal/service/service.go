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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ecodeclub/emall/internal/cart/internal/repository"
	"github.com/ecodeclub/emall/internal/product"
)

var (
	ErrInvalidQuantity   = errors.New("数量必须为正数")
	ErrProductNotOnShelf = errors.New("商品不存在或已下架")
)

type Service interface {
	// Get 返回购物车及条目, 条目用商品目录的实时名称与价格补齐
	Get(ctx context.Context, uid int64) (domain.Cart, error)
	Add(ctx context.Context, uid int64, item domain.Item) (int64, error)
	UpdateQuantity(ctx context.Context, uid, itemID, quantity int64) error
	Remove(ctx context.Context, uid, itemID int64) error
	// Clear 结账成功后清空, 没有购物车时静默返回
	Clear(ctx context.Context, uid int64) error
}

func NewService(repo repository.CartRepository, productSvc product.Service) Service {
	return &service{
		repo:       repo,
		productSvc: productSvc,
	}
}

type service struct {
	repo       repository.CartRepository
	productSvc product.Service
}

func (s *service) Get(ctx context.Context, uid int64) (domain.Cart, error) {
	c, err := s.repo.GetCart(ctx, uid)
	if err != nil {
		return domain.Cart{}, err
	}
	if len(c.Items) == 0 {
		return c, nil
	}
	ids := slice.Map(c.Items, func(idx int, src domain.Item) int64 {
		return src.ProductID
	})
	ps, err := s.productSvc.FindByIDs(ctx, ids)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("查询购物车商品失败: %w", err)
	}
	byID := make(map[int64]product.Product, len(ps))
	for _, p := range ps {
		byID[p.ID] = p
	}
	for i := range c.Items {
		p := byID[c.Items[i].ProductID]
		c.Items[i].ProductName = p.Name
		c.Items[i].UnitPrice = p.Price
		c.Items[i].ImageURL = p.ImageURL
	}
	return c, nil
}

func (s *service) Add(ctx context.Context, uid int64, item domain.Item) (int64, error) {
	if item.Quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	p, err := s.productSvc.FindByID(ctx, item.ProductID)
	if err != nil || p.Status != product.StatusOnShelf {
		return 0, ErrProductNotOnShelf
	}
	return s.repo.AddItem(ctx, uid, item)
}

func (s *service) UpdateQuantity(ctx context.Context, uid, itemID, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.UpdateQuantity(ctx, uid, itemID, quantity)
}

func (s *service) Remove(ctx context.Context, uid, itemID int64) error {
	return s.repo.RemoveItem(ctx, uid, itemID)
}

func (s *service) Clear(ctx context.Context, uid int64) error {
	return s.repo.Clear(ctx, uid)
}

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
	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/emall/internal/product/internal/repository/dao"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, error)
	Total(ctx context.Context) (int64, error)
	Create(ctx context.Context, p domain.Product) (int64, error)
	DecrementStock(ctx context.Context, id int64, quantity int64) error
	IncrementStock(ctx context.Context, id int64, quantity int64) error
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{d: d}
}

type productRepository struct {
	d dao.ProductDAO
}

func (p *productRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	res, err := p.d.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return p.toDomain(res), nil
}

func (p *productRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	res, err := p.d.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.Product) domain.Product {
		return p.toDomain(src)
	}), nil
}

func (p *productRepository) List(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	res, err := p.d.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.Product) domain.Product {
		return p.toDomain(src)
	}), nil
}

func (p *productRepository) Total(ctx context.Context) (int64, error) {
	return p.d.Count(ctx)
}

func (p *productRepository) Create(ctx context.Context, prd domain.Product) (int64, error) {
	return p.d.Create(ctx, p.toEntity(prd))
}

func (p *productRepository) DecrementStock(ctx context.Context, id int64, quantity int64) error {
	return p.d.DecrementStock(ctx, id, quantity)
}

func (p *productRepository) IncrementStock(ctx context.Context, id int64, quantity int64) error {
	return p.d.IncrementStock(ctx, id, quantity)
}

func (p *productRepository) toDomain(prd dao.Product) domain.Product {
	return domain.Product{
		ID:          prd.Id,
		Name:        prd.Name,
		Description: prd.Description,
		ImageURL:    prd.ImageURL,
		Price:       prd.Price,
		Stock:       prd.Stock,
		Status:      domain.ProductStatus(prd.Status),
		Ctime:       prd.Ctime,
		Utime:       prd.Utime,
	}
}

func (p *productRepository) toEntity(prd domain.Product) dao.Product {
	return dao.Product{
		Id:          prd.ID,
		Name:        prd.Name,
		Description: prd.Description,
		ImageURL:    prd.ImageURL,
		Price:       prd.Price,
		Stock:       prd.Stock,
		Status:      prd.Status.ToUint8(),
	}
}

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

	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/emall/internal/product/internal/repository"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	// FindByIDs 结账前的批量取价/预检库存, 一次查询
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, int64, error)
	Create(ctx context.Context, p domain.Product) (int64, error)
	// DebitStock 原子条件扣减, 失败返回 dao.ErrInsufficientStock
	DebitStock(ctx context.Context, id int64, quantity int64) error
	// ReleaseStock 补偿用, 把扣掉的库存加回去
	ReleaseStock(ctx context.Context, id int64, quantity int64) error
}

func NewService(repo repository.ProductRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.ProductRepository
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	return s.repo.FindByIDs(ctx, ids)
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.Product, int64, error) {
	var (
		eg    errgroup.Group
		ps    []domain.Product
		total int64
	)
	eg.Go(func() error {
		var err error
		ps, err = s.repo.List(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.Total(ctx)
		return err
	})
	return ps, total, eg.Wait()
}

func (s *service) Create(ctx context.Context, p domain.Product) (int64, error) {
	return s.repo.Create(ctx, p)
}

func (s *service) DebitStock(ctx context.Context, id int64, quantity int64) error {
	return s.repo.DecrementStock(ctx, id, quantity)
}

func (s *service) ReleaseStock(ctx context.Context, id int64, quantity int64) error {
	return s.repo.IncrementStock(ctx, id, quantity)
}

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
	"fmt"

	"github.com/ecodeclub/emall/internal/paymethod/internal/domain"
	"github.com/ecodeclub/emall/internal/paymethod/internal/repository"
)

type Service interface {
	List(ctx context.Context, uid int64) ([]domain.PaymentMethod, error)
	// FindActive 结账时用: id 给了但查不到本人 ACTIVE 的记录就是非法
	FindActive(ctx context.Context, uid, id int64) (domain.PaymentMethod, error)
	Create(ctx context.Context, pm domain.PaymentMethod) (int64, error)
	Delete(ctx context.Context, uid, id int64) error
	SetDefault(ctx context.Context, uid, id int64) error
}

func NewService(repo repository.PaymentMethodRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.PaymentMethodRepository
}

func (s *service) List(ctx context.Context, uid int64) ([]domain.PaymentMethod, error) {
	return s.repo.FindActiveByUID(ctx, uid)
}

func (s *service) FindActive(ctx context.Context, uid, id int64) (domain.PaymentMethod, error) {
	return s.repo.FindActiveByIDAndUID(ctx, id, uid)
}

func (s *service) Create(ctx context.Context, pm domain.PaymentMethod) (int64, error) {
	return s.repo.Create(ctx, pm)
}

func (s *service) Delete(ctx context.Context, uid, id int64) error {
	_, err := s.repo.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return fmt.Errorf("支付方式归属校验失败: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetDefault(ctx context.Context, uid, id int64) error {
	_, err := s.repo.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return fmt.Errorf("支付方式归属校验失败: %w", err)
	}
	return s.repo.SetDefault(ctx, id, uid)
}

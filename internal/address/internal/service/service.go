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

	"github.com/ecodeclub/emall/internal/address/internal/domain"
	"github.com/ecodeclub/emall/internal/address/internal/repository"
)

type Service interface {
	List(ctx context.Context, uid int64) ([]domain.Address, error)
	// FindByIDAndUID 结账时的归属校验, 地址不存在或不属于该用户都算失败
	FindByIDAndUID(ctx context.Context, id, uid int64) (domain.Address, error)
	Create(ctx context.Context, a domain.Address) (int64, error)
	Update(ctx context.Context, a domain.Address) error
	Delete(ctx context.Context, uid, id int64) error
	SetDefault(ctx context.Context, uid, id int64) error
}

func NewService(repo repository.AddressRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.AddressRepository
}

func (s *service) List(ctx context.Context, uid int64) ([]domain.Address, error) {
	return s.repo.FindByUID(ctx, uid)
}

func (s *service) FindByIDAndUID(ctx context.Context, id, uid int64) (domain.Address, error) {
	return s.repo.FindByIDAndUID(ctx, id, uid)
}

func (s *service) Create(ctx context.Context, a domain.Address) (int64, error) {
	return s.repo.Create(ctx, a)
}

func (s *service) Update(ctx context.Context, a domain.Address) error {
	// 先做归属校验, 不暴露地址是否存在的细节
	_, err := s.repo.FindByIDAndUID(ctx, a.ID, a.UID)
	if err != nil {
		return fmt.Errorf("地址归属校验失败: %w", err)
	}
	return s.repo.Update(ctx, a)
}

func (s *service) Delete(ctx context.Context, uid, id int64) error {
	_, err := s.repo.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return fmt.Errorf("地址归属校验失败: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetDefault(ctx context.Context, uid, id int64) error {
	_, err := s.repo.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return fmt.Errorf("地址归属校验失败: %w", err)
	}
	return s.repo.SetDefault(ctx, id, uid)
}

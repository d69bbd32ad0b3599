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
	"github.com/ecodeclub/emall/internal/address/internal/domain"
	"github.com/ecodeclub/emall/internal/address/internal/repository/dao"
)

type AddressRepository interface {
	FindByUID(ctx context.Context, uid int64) ([]domain.Address, error)
	FindByIDAndUID(ctx context.Context, id, uid int64) (domain.Address, error)
	Create(ctx context.Context, a domain.Address) (int64, error)
	Update(ctx context.Context, a domain.Address) error
	Delete(ctx context.Context, id int64) error
	SetDefault(ctx context.Context, id, uid int64) error
}

func NewAddressRepository(d dao.AddressDAO) AddressRepository {
	return &addressRepository{d: d}
}

type addressRepository struct {
	d dao.AddressDAO
}

func (r *addressRepository) FindByUID(ctx context.Context, uid int64) ([]domain.Address, error) {
	as, err := r.d.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(as, func(idx int, src dao.Address) domain.Address {
		return r.toDomain(src)
	}), nil
}

func (r *addressRepository) FindByIDAndUID(ctx context.Context, id, uid int64) (domain.Address, error) {
	a, err := r.d.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return domain.Address{}, err
	}
	return r.toDomain(a), nil
}

func (r *addressRepository) Create(ctx context.Context, a domain.Address) (int64, error) {
	return r.d.Create(ctx, r.toEntity(a))
}

func (r *addressRepository) Update(ctx context.Context, a domain.Address) error {
	return r.d.Update(ctx, r.toEntity(a))
}

func (r *addressRepository) Delete(ctx context.Context, id int64) error {
	return r.d.Delete(ctx, id)
}

func (r *addressRepository) SetDefault(ctx context.Context, id, uid int64) error {
	return r.d.SetDefault(ctx, id, uid)
}

func (r *addressRepository) toDomain(a dao.Address) domain.Address {
	return domain.Address{
		ID:          a.Id,
		UID:         a.UID,
		FullName:    a.FullName,
		Phone:       a.Phone,
		AddressLine: a.AddressLine,
		IsDefault:   a.IsDefault,
		Ctime:       a.Ctime,
		Utime:       a.Utime,
	}
}

func (r *addressRepository) toEntity(a domain.Address) dao.Address {
	return dao.Address{
		Id:          a.ID,
		UID:         a.UID,
		FullName:    a.FullName,
		Phone:       a.Phone,
		AddressLine: a.AddressLine,
		IsDefault:   a.IsDefault,
	}
}

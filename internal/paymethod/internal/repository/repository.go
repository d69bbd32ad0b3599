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
	"github.com/ecodeclub/emall/internal/paymethod/internal/domain"
	"github.com/ecodeclub/emall/internal/paymethod/internal/repository/dao"
)

type PaymentMethodRepository interface {
	FindActiveByUID(ctx context.Context, uid int64) ([]domain.PaymentMethod, error)
	FindActiveByIDAndUID(ctx context.Context, id, uid int64) (domain.PaymentMethod, error)
	FindByIDAndUID(ctx context.Context, id, uid int64) (domain.PaymentMethod, error)
	Create(ctx context.Context, pm domain.PaymentMethod) (int64, error)
	Delete(ctx context.Context, id int64) error
	SetDefault(ctx context.Context, id, uid int64) error
}

func NewPaymentMethodRepository(d dao.PaymentMethodDAO) PaymentMethodRepository {
	return &paymentMethodRepository{d: d}
}

type paymentMethodRepository struct {
	d dao.PaymentMethodDAO
}

func (r *paymentMethodRepository) FindActiveByUID(ctx context.Context, uid int64) ([]domain.PaymentMethod, error) {
	pms, err := r.d.FindActiveByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(pms, func(idx int, src dao.PaymentMethod) domain.PaymentMethod {
		return r.toDomain(src)
	}), nil
}

func (r *paymentMethodRepository) FindActiveByIDAndUID(ctx context.Context, id, uid int64) (domain.PaymentMethod, error) {
	pm, err := r.d.FindActiveByIDAndUID(ctx, id, uid)
	if err != nil {
		return domain.PaymentMethod{}, err
	}
	return r.toDomain(pm), nil
}

func (r *paymentMethodRepository) FindByIDAndUID(ctx context.Context, id, uid int64) (domain.PaymentMethod, error) {
	pm, err := r.d.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return domain.PaymentMethod{}, err
	}
	return r.toDomain(pm), nil
}

func (r *paymentMethodRepository) Create(ctx context.Context, pm domain.PaymentMethod) (int64, error) {
	return r.d.Create(ctx, dao.PaymentMethod{
		UID:        pm.UID,
		Type:       string(pm.Type),
		Brand:      pm.Brand,
		Last4:      pm.Last4,
		HolderName: pm.HolderName,
		Token:      pm.Token,
		IsDefault:  pm.IsDefault,
		Status:     string(domain.StatusActive),
	})
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id int64) error {
	return r.d.Delete(ctx, id)
}

func (r *paymentMethodRepository) SetDefault(ctx context.Context, id, uid int64) error {
	return r.d.SetDefault(ctx, id, uid)
}

func (r *paymentMethodRepository) toDomain(pm dao.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		ID:         pm.Id,
		UID:        pm.UID,
		Type:       domain.Type(pm.Type),
		Brand:      pm.Brand,
		Last4:      pm.Last4,
		HolderName: pm.HolderName,
		Token:      pm.Token,
		IsDefault:  pm.IsDefault,
		Status:     domain.Status(pm.Status),
		Ctime:      pm.Ctime,
		Utime:      pm.Utime,
	}
}

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

	"github.com/ecodeclub/emall/internal/voucher/internal/domain"
	"github.com/ecodeclub/emall/internal/voucher/internal/repository/dao"
)

type VoucherRepository interface {
	// FindRedemption 找该用户与券码的配对, 找不到即视为无此券
	FindRedemption(ctx context.Context, uid int64, code string) (domain.Redemption, domain.Voucher, error)
	ListByUID(ctx context.Context, uid int64) ([]domain.Redemption, []domain.Voucher, error)
	CreateVoucher(ctx context.Context, v domain.Voucher) (int64, error)
	GrantToUser(ctx context.Context, uid, voucherID int64) (int64, error)
	MarkUsed(ctx context.Context, redemptionID int64) error
}

func NewVoucherRepository(d dao.VoucherDAO) VoucherRepository {
	return &voucherRepository{d: d}
}

type voucherRepository struct {
	d dao.VoucherDAO
}

func (r *voucherRepository) FindRedemption(ctx context.Context, uid int64, code string) (domain.Redemption, domain.Voucher, error) {
	uv, v, err := r.d.FindByUIDAndCode(ctx, uid, code)
	if err != nil {
		return domain.Redemption{}, domain.Voucher{}, err
	}
	return r.toRedemptionDomain(uv), r.toVoucherDomain(v), nil
}

func (r *voucherRepository) ListByUID(ctx context.Context, uid int64) ([]domain.Redemption, []domain.Voucher, error) {
	uvs, vs, err := r.d.FindByUID(ctx, uid)
	if err != nil {
		return nil, nil, err
	}
	rds := make([]domain.Redemption, 0, len(uvs))
	for _, uv := range uvs {
		rds = append(rds, r.toRedemptionDomain(uv))
	}
	vouchers := make([]domain.Voucher, 0, len(vs))
	for _, v := range vs {
		vouchers = append(vouchers, r.toVoucherDomain(v))
	}
	return rds, vouchers, nil
}

func (r *voucherRepository) CreateVoucher(ctx context.Context, v domain.Voucher) (int64, error) {
	return r.d.CreateVoucher(ctx, dao.Voucher{
		Code:              v.Code,
		DiscountType:      string(v.DiscountType),
		DiscountValue:     v.DiscountValue,
		MinOrderAmount:    v.MinOrderAmount,
		MaxDiscountAmount: v.MaxDiscountAmount,
		StartAt:           v.StartAt,
		EndAt:             v.EndAt,
	})
}

func (r *voucherRepository) GrantToUser(ctx context.Context, uid, voucherID int64) (int64, error) {
	return r.d.CreateUserVoucher(ctx, dao.UserVoucher{
		UID:       uid,
		VoucherId: voucherID,
		Status:    string(domain.RedemptionStatusAvailable),
	})
}

func (r *voucherRepository) MarkUsed(ctx context.Context, redemptionID int64) error {
	return r.d.MarkUsed(ctx, redemptionID)
}

func (r *voucherRepository) toRedemptionDomain(uv dao.UserVoucher) domain.Redemption {
	return domain.Redemption{
		ID:         uv.Id,
		UID:        uv.UID,
		VoucherID:  uv.VoucherId,
		Status:     domain.RedemptionStatus(uv.Status),
		UsedCount:  uv.UsedCount,
		LastUsedAt: uv.LastUsedAt,
	}
}

func (r *voucherRepository) toVoucherDomain(v dao.Voucher) domain.Voucher {
	return domain.Voucher{
		ID:                v.Id,
		Code:              v.Code,
		DiscountType:      domain.DiscountType(v.DiscountType),
		DiscountValue:     v.DiscountValue,
		MinOrderAmount:    v.MinOrderAmount,
		MaxDiscountAmount: v.MaxDiscountAmount,
		StartAt:           v.StartAt,
		EndAt:             v.EndAt,
	}
}

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
	"time"

	"github.com/ecodeclub/emall/internal/voucher/internal/domain"
	"github.com/ecodeclub/emall/internal/voucher/internal/repository"
)

var (
	ErrVoucherNotFound = errors.New("优惠券不存在或未领取")
	// ErrVoucherExpired 不在 [start, end] 有效期窗口内
	ErrVoucherExpired     = errors.New("优惠券已过期或未生效")
	ErrVoucherUnavailable = errors.New("优惠券已被使用或锁定")
	ErrBelowMinimumAmount = errors.New("未达到优惠券最低订单金额")
)

type Service interface {
	// ValidateForUser 校验顺序: 配对存在 -> 有效期 -> 状态 -> 最低金额,
	// 每一步失败给出独立原因
	ValidateForUser(ctx context.Context, uid int64, code string, orderTotal int64) (domain.Validation, error)
	// MarkUsed 只能在订单落库之后调用,
	// 否则崩溃可能消耗掉一张没有产生订单的券
	MarkUsed(ctx context.Context, redemptionID int64) error
	ListByUID(ctx context.Context, uid int64) ([]domain.Redemption, []domain.Voucher, error)
	CreateVoucher(ctx context.Context, v domain.Voucher) (int64, error)
	GrantToUser(ctx context.Context, uid, voucherID int64) (int64, error)
}

func NewService(repo repository.VoucherRepository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

type service struct {
	repo repository.VoucherRepository
	now  func() time.Time
}

func (s *service) ValidateForUser(ctx context.Context, uid int64, code string, orderTotal int64) (domain.Validation, error) {
	rd, v, err := s.repo.FindRedemption(ctx, uid, code)
	if err != nil {
		return domain.Validation{}, fmt.Errorf("%w: %w", ErrVoucherNotFound, err)
	}

	now := s.now().UnixMilli()
	if now < v.StartAt || now > v.EndAt {
		return domain.Validation{}, ErrVoucherExpired
	}
	if rd.Status != domain.RedemptionStatusAvailable {
		// USED 和 LOCKED 对外是同一个原因
		return domain.Validation{}, ErrVoucherUnavailable
	}
	if orderTotal < v.MinOrderAmount {
		return domain.Validation{}, ErrBelowMinimumAmount
	}

	return domain.Validation{
		VoucherID:    v.ID,
		RedemptionID: rd.ID,
		Discount:     v.Discount(orderTotal),
	}, nil
}

func (s *service) MarkUsed(ctx context.Context, redemptionID int64) error {
	return s.repo.MarkUsed(ctx, redemptionID)
}

func (s *service) ListByUID(ctx context.Context, uid int64) ([]domain.Redemption, []domain.Voucher, error) {
	return s.repo.ListByUID(ctx, uid)
}

func (s *service) CreateVoucher(ctx context.Context, v domain.Voucher) (int64, error) {
	return s.repo.CreateVoucher(ctx, v)
}

func (s *service) GrantToUser(ctx context.Context, uid, voucherID int64) (int64, error) {
	return s.repo.GrantToUser(ctx, uid, voucherID)
}

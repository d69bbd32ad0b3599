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
	"testing"
	"time"

	"github.com/ecodeclub/emall/internal/voucher/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeVoucherRepo struct {
	redemption domain.Redemption
	voucher    domain.Voucher
	found      bool
	markedUsed []int64
}

func (f *fakeVoucherRepo) FindRedemption(_ context.Context, _ int64, _ string) (domain.Redemption, domain.Voucher, error) {
	if !f.found {
		return domain.Redemption{}, domain.Voucher{}, gorm.ErrRecordNotFound
	}
	return f.redemption, f.voucher, nil
}

func (f *fakeVoucherRepo) ListByUID(_ context.Context, _ int64) ([]domain.Redemption, []domain.Voucher, error) {
	return []domain.Redemption{f.redemption}, []domain.Voucher{f.voucher}, nil
}

func (f *fakeVoucherRepo) CreateVoucher(_ context.Context, _ domain.Voucher) (int64, error) {
	return f.voucher.ID, nil
}

func (f *fakeVoucherRepo) GrantToUser(_ context.Context, _, _ int64) (int64, error) {
	return f.redemption.ID, nil
}

func (f *fakeVoucherRepo) MarkUsed(_ context.Context, id int64) error {
	f.markedUsed = append(f.markedUsed, id)
	return nil
}

func TestService_ValidateForUser(t *testing.T) {
	t.Parallel()
	now := time.UnixMilli(1700000000000)
	validWindow := func(v domain.Voucher) domain.Voucher {
		v.StartAt = now.UnixMilli() - 1000
		v.EndAt = now.UnixMilli() + 1000
		return v
	}

	testCases := []struct {
		name       string
		repo       *fakeVoucherRepo
		orderTotal int64

		wantErr      error
		wantDiscount int64
	}{
		{
			name: "百分比折扣触发封顶",
			repo: &fakeVoucherRepo{
				found:      true,
				redemption: domain.Redemption{ID: 11, Status: domain.RedemptionStatusAvailable},
				voucher: validWindow(domain.Voucher{
					ID:                1,
					DiscountType:      domain.DiscountTypePercent,
					DiscountValue:     10,
					MaxDiscountAmount: 20000,
				}),
			},
			orderTotal:   300000,
			wantDiscount: 20000,
		},
		{
			name: "百分比折扣未触发封顶",
			repo: &fakeVoucherRepo{
				found:      true,
				redemption: domain.Redemption{ID: 12, Status: domain.RedemptionStatusAvailable},
				voucher: validWindow(domain.Voucher{
					ID:                2,
					DiscountType:      domain.DiscountTypePercent,
					DiscountValue:     10,
					MaxDiscountAmount: 20000,
				}),
			},
			orderTotal:   150000,
			wantDiscount: 15000,
		},
		{
			name: "固定金额折扣",
			repo: &fakeVoucherRepo{
				found:      true,
				redemption: domain.Redemption{ID: 13, Status: domain.RedemptionStatusAvailable},
				voucher: validWindow(domain.Voucher{
					ID:            3,
					DiscountType:  domain.DiscountTypeAmount,
					DiscountValue: 30000,
				}),
			},
			orderTotal:   100000,
			wantDiscount: 30000,
		},
		{
			name: "免邮券按固定金额抵扣",
			repo: &fakeVoucherRepo{
				found:      true,
				redemption: domain.Redemption{ID: 14, Status: domain.RedemptionStatusAvailable},
				voucher: validWindow(domain.Voucher{
					ID:            4,
					DiscountType:  domain.DiscountTypeFreeShip,
					DiscountValue: 15000,
				}),
			},
			orderTotal:   100000,
			wantDiscount: 15000,
		},
		{
			name:       "未领取",
			repo:       &fakeVoucherRepo{found: false},
			orderTotal: 100000,
			wantErr:    ErrVoucherNotFound,
		},
		{
			name: "已过期",
			repo: &fakeVoucherRepo{
				found:      true,
				redemption: domain.Redemption{ID: 15, Status: domain.RedemptionStatusAvailable},
				voucher: domain.Voucher{
					ID:            5,
					DiscountType:  domain.DiscountTypeAmount,
					DiscountValue: 10000,
					StartAt:       now.UnixMilli() - 2000,
					EndAt:         now.UnixMilli() - 1000,
				},
			},
			orderTotal: 100000,
			wantErr:    ErrVoucherExpired,
		},
		{
			name: "未生效",
			repo: &fakeVoucherRepo{
				found:      true,
				redemption: domain.Redemption{ID: 16, Status: domain.RedemptionStatusAvailable},
				voucher: domain.Voucher{
					ID:            6,
					DiscountType:  domain.DiscountTypeAmount,
					DiscountValue: 10000,
					StartAt:       now.UnixMilli() + 1000,
					EndAt:         now.UnixMilli() + 2000,
				},
			},
			orderTotal: 100000,
			wantErr:    ErrVoucherExpired,
		},
		{
			name: "已核销",
			repo: &fakeVoucherRepo{
				found:      true,
				redemption: domain.Redemption{ID: 17, Status: domain.RedemptionStatusUsed},
				voucher: validWindow(domain.Voucher{
					ID:            7,
					DiscountType:  domain.DiscountTypeAmount,
					DiscountValue: 10000,
				}),
			},
			orderTotal: 100000,
			wantErr:    ErrVoucherUnavailable,
		},
		{
			name: "被锁定与已核销是同一个原因",
			repo: &fakeVoucherRepo{
				found:      true,
				redemption: domain.Redemption{ID: 18, Status: domain.RedemptionStatusLocked},
				voucher: validWindow(domain.Voucher{
					ID:            8,
					DiscountType:  domain.DiscountTypeAmount,
					DiscountValue: 10000,
				}),
			},
			orderTotal: 100000,
			wantErr:    ErrVoucherUnavailable,
		},
		{
			name: "过期优先于状态",
			repo: &fakeVoucherRepo{
				found:      true,
				redemption: domain.Redemption{ID: 19, Status: domain.RedemptionStatusUsed},
				voucher: domain.Voucher{
					ID:            9,
					DiscountType:  domain.DiscountTypeAmount,
					DiscountValue: 10000,
					StartAt:       now.UnixMilli() - 2000,
					EndAt:         now.UnixMilli() - 1000,
				},
			},
			orderTotal: 100000,
			wantErr:    ErrVoucherExpired,
		},
		{
			name: "未达到最低订单金额",
			repo: &fakeVoucherRepo{
				found:      true,
				redemption: domain.Redemption{ID: 20, Status: domain.RedemptionStatusAvailable},
				voucher: validWindow(domain.Voucher{
					ID:             10,
					DiscountType:   domain.DiscountTypeAmount,
					DiscountValue:  10000,
					MinOrderAmount: 200000,
				}),
			},
			orderTotal: 100000,
			wantErr:    ErrBelowMinimumAmount,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := &service{
				repo: tc.repo,
				now:  func() time.Time { return now },
			}
			va, err := svc.ValidateForUser(context.Background(), 123, "SALE2023", tc.orderTotal)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.repo.voucher.ID, va.VoucherID)
			assert.Equal(t, tc.repo.redemption.ID, va.RedemptionID)
			assert.Equal(t, tc.wantDiscount, va.Discount)
		})
	}
}

func TestService_MarkUsed(t *testing.T) {
	t.Parallel()
	repo := &fakeVoucherRepo{}
	svc := NewService(repo)
	require.NoError(t, svc.MarkUsed(context.Background(), 42))
	assert.Equal(t, []int64{42}, repo.markedUsed)
}

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

package domain

type DiscountType string

const (
	DiscountTypePercent DiscountType = "PERCENT"
	DiscountTypeAmount  DiscountType = "AMOUNT"
	// DiscountTypeFreeShip 历史遗留: 名字叫免邮, 实际按固定金额抵扣,
	// 不是运费减免, 线上数据依赖这个行为
	DiscountTypeFreeShip DiscountType = "FREESHIP"
)

type RedemptionStatus string

const (
	RedemptionStatusAvailable RedemptionStatus = "AVAILABLE"
	RedemptionStatusUsed      RedemptionStatus = "USED"
	RedemptionStatusLocked    RedemptionStatus = "LOCKED"
)

// Voucher 优惠券定义
type Voucher struct {
	ID             int64
	Code           string
	DiscountType   DiscountType
	DiscountValue  int64
	MinOrderAmount int64
	// MaxDiscountAmount 只对 PERCENT 生效, 0 表示不封顶
	MaxDiscountAmount int64
	StartAt           int64
	EndAt             int64
}

// Discount 按订单金额计算抵扣额
func (v Voucher) Discount(orderTotal int64) int64 {
	switch v.DiscountType {
	case DiscountTypePercent:
		d := orderTotal * v.DiscountValue / 100
		if v.MaxDiscountAmount > 0 && d > v.MaxDiscountAmount {
			d = v.MaxDiscountAmount
		}
		return d
	case DiscountTypeAmount, DiscountTypeFreeShip:
		return v.DiscountValue
	default:
		return 0
	}
}

// Redemption 用户维度的领券记录, 最多核销一次
type Redemption struct {
	ID         int64
	UID        int64
	VoucherID  int64
	Status     RedemptionStatus
	UsedCount  int64
	LastUsedAt int64
}

// Validation 校验通过后给结账方的结果
type Validation struct {
	VoucherID    int64
	RedemptionID int64
	Discount     int64
}

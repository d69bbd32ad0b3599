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

import (
	"errors"
	"fmt"
)

// Status 订单状态是封闭枚举, 不认识的值直接拒绝,
// 绝不静默回退到某个默认值
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var ErrUnknownStatus = errors.New("未知的订单状态")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Cancelable 只有 pending 和 confirmed 可以被用户取消,
// {delivered, cancelled} 是终态, shipped 已经出库
func (s Status) Cancelable() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Order struct {
	ID  int64
	SN  string
	UID int64
	// AddressSnapshot 下单时刻的文本快照, 不是对地址簿的引用,
	// 之后改地址簿不影响已有订单
	AddressSnapshot string
	PaymentMethodID int64
	VoucherID       int64
	SubTotal        int64
	Discount        int64
	ShippingFee     int64
	TotalAmount     int64
	Status          Status
	// PaymentMethod 粗粒度渠道 cod/credit_card/bank_transfer,
	// 和 PaymentMethodID 指向的记录是两回事
	PaymentMethod string
	MomoTransID   int64
	MomoMessage   string
	Items         []Item
	Ctime         int64
}

// Item 单价在下单时刻冻结, 之后目录调价不回写
type Item struct {
	ID          int64
	ProductID   int64
	ProductName string
	Size        string
	Quantity    int64
	UnitPrice   int64
}

// Total 金额不变式: total = max(0, sub - discount + shipping)
func Total(subTotal, discount, shippingFee int64) int64 {
	t := subTotal - discount + shippingFee
	if t < 0 {
		return 0
	}
	return t
}

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

// Checkout 一次结账请求, 行条目是购物车的快照而不是活引用
type Checkout struct {
	UID             int64
	Items           []CheckoutItem
	AddressID       int64
	PaymentMethodID int64
	VoucherCode     string
}

type CheckoutItem struct {
	ProductID int64
	Quantity  int64
	Size      string
}

// CheckoutResult 结账产物, Momo 只在钱包渠道命中网关品牌时出现
type CheckoutResult struct {
	Order Order
	Momo  *MomoPayload
}

type MomoPayload struct {
	PayURL string
}

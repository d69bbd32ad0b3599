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

import "strings"

// Type 支付方式类型, 存储值为大写字符串
type Type string

const (
	TypeCard   Type = "CARD"
	TypeWallet Type = "WALLET"
	TypeBank   Type = "BANK"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Channel 粗粒度支付渠道, 与支付方式记录本身是两个概念,
// 订单上冗余的是渠道而非支付方式明细
type Channel string

const (
	ChannelCOD          Channel = "cod"
	ChannelCreditCard   Channel = "credit_card"
	ChannelBankTransfer Channel = "bank_transfer"
)

func (c Channel) String() string {
	return string(c)
}

// ResolveChannel CARD/WALLET 归到 credit_card, BANK 归到 bank_transfer,
// 其余一律按货到付款处理
func ResolveChannel(t Type) Channel {
	switch Type(strings.ToUpper(string(t))) {
	case TypeCard, TypeWallet:
		return ChannelCreditCard
	case TypeBank:
		return ChannelBankTransfer
	default:
		return ChannelCOD
	}
}

type PaymentMethod struct {
	ID         int64
	UID        int64
	Type       Type
	Brand      string
	Last4      string
	HolderName string
	Token      string
	IsDefault  bool
	Status     Status
	Ctime      int64
	Utime      int64
}

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

package paymethod

import (
	"github.com/ecodeclub/emall/internal/paymethod/internal/domain"
	"github.com/ecodeclub/emall/internal/paymethod/internal/service"
	"github.com/ecodeclub/emall/internal/paymethod/internal/web"
)

type (
	Handler       = web.Handler
	Service       = service.Service
	PaymentMethod = domain.PaymentMethod
	Type          = domain.Type
	Channel       = domain.Channel
)

const (
	TypeCard   = domain.TypeCard
	TypeWallet = domain.TypeWallet
	TypeBank   = domain.TypeBank

	ChannelCOD          = domain.ChannelCOD
	ChannelCreditCard   = domain.ChannelCreditCard
	ChannelBankTransfer = domain.ChannelBankTransfer
)

// ResolveChannel 把支付方式类型归类为粗粒度支付渠道
func ResolveChannel(t Type) Channel {
	return domain.ResolveChannel(t)
}

type Module struct {
	Hdl *Handler
	Svc Service
}

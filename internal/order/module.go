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

package order

import (
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/order/internal/web"
)

type (
	Handler        = web.Handler
	Service        = service.Service
	Order          = domain.Order
	Item           = domain.Item
	Status         = domain.Status
	Checkout       = domain.Checkout
	CheckoutItem   = domain.CheckoutItem
	CheckoutResult = domain.CheckoutResult
)

const (
	StatusPending   = domain.StatusPending
	StatusConfirmed = domain.StatusConfirmed
	StatusShipped   = domain.StatusShipped
	StatusDelivered = domain.StatusDelivered
	StatusCancelled = domain.StatusCancelled
)

var (
	ErrAddressInvalid       = service.ErrAddressInvalid
	ErrPaymentMethodInvalid = service.ErrPaymentMethodInvalid
	ErrProductNotSellable   = service.ErrProductNotSellable
	ErrStockExhausted       = service.ErrStockExhausted
	ErrOrderNotFound        = service.ErrOrderNotFound
	ErrNotCancelable        = service.ErrNotCancelable
)

type Module struct {
	Hdl *Handler
	Svc Service
}

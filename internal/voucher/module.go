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

package voucher

import (
	"github.com/ecodeclub/emall/internal/voucher/internal/domain"
	"github.com/ecodeclub/emall/internal/voucher/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/voucher/internal/service"
	"github.com/ecodeclub/emall/internal/voucher/internal/web"
)

type (
	Handler    = web.Handler
	Service    = service.Service
	Voucher    = domain.Voucher
	Redemption = domain.Redemption
	Validation = domain.Validation
)

const (
	RedemptionStatusAvailable = domain.RedemptionStatusAvailable
	RedemptionStatusUsed      = domain.RedemptionStatusUsed
	RedemptionStatusLocked    = domain.RedemptionStatusLocked
)

var (
	ErrVoucherNotFound    = service.ErrVoucherNotFound
	ErrVoucherExpired     = service.ErrVoucherExpired
	ErrVoucherUnavailable = service.ErrVoucherUnavailable
	ErrBelowMinimumAmount = service.ErrBelowMinimumAmount
	// ErrAlreadyGranted 撞了 uid+voucher 的唯一索引
	ErrAlreadyGranted = dao.ErrAlreadyGranted
)

type Module struct {
	Hdl *Handler
	Svc Service
}

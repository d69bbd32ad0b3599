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

package web

import (
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/address/internal/domain"
	"github.com/ecodeclub/emall/internal/address/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/address")
	g.POST("/list", ginx.S(h.ListAddresses))
	g.POST("/create", ginx.BS[CreateAddressReq](h.CreateAddress))
	g.POST("/update", ginx.BS[UpdateAddressReq](h.UpdateAddress))
	g.POST("/delete", ginx.BS[DeleteAddressReq](h.DeleteAddress))
	g.POST("/default", ginx.BS[SetDefaultAddressReq](h.SetDefaultAddress))
}

func (h *Handler) ListAddresses(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	as, err := h.svc.List(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询地址列表失败: %w", err)
	}
	return ginx.Result{
		Data: ListAddressesResp{
			Addresses: slice.Map(as, func(idx int, src domain.Address) Address {
				return Address{
					ID:          src.ID,
					FullName:    src.FullName,
					Phone:       src.Phone,
					AddressLine: src.AddressLine,
					IsDefault:   src.IsDefault,
				}
			}),
		},
	}, nil
}

func (h *Handler) CreateAddress(ctx *ginx.Context, req CreateAddressReq, sess session.Session) (ginx.Result, error) {
	id, err := h.svc.Create(ctx.Request.Context(), domain.Address{
		UID:         sess.Claims().Uid,
		FullName:    req.FullName,
		Phone:       req.Phone,
		AddressLine: req.AddressLine,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		return systemErrorResult, fmt.Errorf("创建地址失败: %w", err)
	}
	return ginx.Result{Data: CreateAddressResp{ID: id}}, nil
}

func (h *Handler) UpdateAddress(ctx *ginx.Context, req UpdateAddressReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Update(ctx.Request.Context(), domain.Address{
		ID:          req.ID,
		UID:         sess.Claims().Uid,
		FullName:    req.FullName,
		Phone:       req.Phone,
		AddressLine: req.AddressLine,
	})
	if err != nil {
		return systemErrorResult, fmt.Errorf("更新地址失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) DeleteAddress(ctx *ginx.Context, req DeleteAddressReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Delete(ctx.Request.Context(), sess.Claims().Uid, req.ID)
	if err != nil {
		return systemErrorResult, fmt.Errorf("删除地址失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) SetDefaultAddress(ctx *ginx.Context, req SetDefaultAddressReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.SetDefault(ctx.Request.Context(), sess.Claims().Uid, req.ID)
	if err != nil {
		return systemErrorResult, fmt.Errorf("设置默认地址失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

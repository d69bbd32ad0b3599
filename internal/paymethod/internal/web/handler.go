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
	"github.com/ecodeclub/emall/internal/paymethod/internal/domain"
	"github.com/ecodeclub/emall/internal/paymethod/internal/service"
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
	g := server.Group("/payment-method")
	g.POST("/list", ginx.S(h.ListPaymentMethods))
	g.POST("/create", ginx.BS[CreatePaymentMethodReq](h.CreatePaymentMethod))
	g.POST("/delete", ginx.BS[DeletePaymentMethodReq](h.DeletePaymentMethod))
	g.POST("/default", ginx.BS[SetDefaultPaymentMethodReq](h.SetDefaultPaymentMethod))
}

func (h *Handler) ListPaymentMethods(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	pms, err := h.svc.List(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询支付方式失败: %w", err)
	}
	return ginx.Result{
		Data: ListPaymentMethodsResp{
			PaymentMethods: slice.Map(pms, func(idx int, src domain.PaymentMethod) PaymentMethod {
				return PaymentMethod{
					ID:         src.ID,
					Type:       string(src.Type),
					Brand:      src.Brand,
					Last4:      src.Last4,
					HolderName: src.HolderName,
					IsDefault:  src.IsDefault,
				}
			}),
		},
	}, nil
}

func (h *Handler) CreatePaymentMethod(ctx *ginx.Context, req CreatePaymentMethodReq, sess session.Session) (ginx.Result, error) {
	id, err := h.svc.Create(ctx.Request.Context(), domain.PaymentMethod{
		UID:        sess.Claims().Uid,
		Type:       domain.Type(req.Type),
		Brand:      req.Brand,
		Last4:      req.Last4,
		HolderName: req.HolderName,
		Token:      req.Token,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		return systemErrorResult, fmt.Errorf("创建支付方式失败: %w", err)
	}
	return ginx.Result{Data: CreatePaymentMethodResp{ID: id}}, nil
}

func (h *Handler) DeletePaymentMethod(ctx *ginx.Context, req DeletePaymentMethodReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Delete(ctx.Request.Context(), sess.Claims().Uid, req.ID)
	if err != nil {
		return systemErrorResult, fmt.Errorf("删除支付方式失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) SetDefaultPaymentMethod(ctx *ginx.Context, req SetDefaultPaymentMethodReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.SetDefault(ctx.Request.Context(), sess.Claims().Uid, req.ID)
	if err != nil {
		return systemErrorResult, fmt.Errorf("设置默认支付方式失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

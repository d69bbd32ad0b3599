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
	"errors"
	"fmt"

	"github.com/ecodeclub/emall/internal/voucher/internal/domain"
	"github.com/ecodeclub/emall/internal/voucher/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/voucher/internal/service"
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
	g := server.Group("/voucher")
	g.POST("/list", ginx.S(h.ListVouchers))
	g.POST("/preview", ginx.BS[PreviewVoucherReq](h.PreviewVoucher))
	g.POST("/create", ginx.B[CreateVoucherReq](h.CreateVoucher))
	g.POST("/grant", ginx.B[GrantVoucherReq](h.GrantVoucher))
}

func (h *Handler) ListVouchers(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	rds, vs, err := h.svc.ListByUID(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询用户优惠券失败: %w", err)
	}
	byID := make(map[int64]domain.Redemption, len(rds))
	for _, rd := range rds {
		byID[rd.VoucherID] = rd
	}
	vouchers := make([]Voucher, 0, len(vs))
	for _, v := range vs {
		vouchers = append(vouchers, Voucher{
			ID:             v.ID,
			Code:           v.Code,
			DiscountType:   string(v.DiscountType),
			DiscountValue:  v.DiscountValue,
			MinOrderAmount: v.MinOrderAmount,
			StartAt:        v.StartAt,
			EndAt:          v.EndAt,
			Status:         string(byID[v.ID].Status),
		})
	}
	return ginx.Result{Data: ListVouchersResp{Vouchers: vouchers}}, nil
}

// PreviewVoucher 不改状态, 只报告这张券此刻能不能用、能抵多少
func (h *Handler) PreviewVoucher(ctx *ginx.Context, req PreviewVoucherReq, sess session.Session) (ginx.Result, error) {
	va, err := h.svc.ValidateForUser(ctx.Request.Context(), sess.Claims().Uid, req.Code, req.OrderTotal)
	if err != nil {
		return voucherInvalidResult, fmt.Errorf("优惠券校验未通过: %w", err)
	}
	return ginx.Result{
		Data: PreviewVoucherResp{
			VoucherID: va.VoucherID,
			Discount:  va.Discount,
		},
	}, nil
}

func (h *Handler) CreateVoucher(ctx *ginx.Context, req CreateVoucherReq) (ginx.Result, error) {
	id, err := h.svc.CreateVoucher(ctx.Request.Context(), domain.Voucher{
		Code:              req.Code,
		DiscountType:      domain.DiscountType(req.DiscountType),
		DiscountValue:     req.DiscountValue,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		StartAt:           req.StartAt,
		EndAt:             req.EndAt,
	})
	if err != nil {
		return systemErrorResult, fmt.Errorf("创建优惠券失败: %w", err)
	}
	return ginx.Result{Data: CreateVoucherResp{ID: id}}, nil
}

func (h *Handler) GrantVoucher(ctx *ginx.Context, req GrantVoucherReq) (ginx.Result, error) {
	id, err := h.svc.GrantToUser(ctx.Request.Context(), req.UID, req.VoucherID)
	if err != nil {
		if errors.Is(err, dao.ErrAlreadyGranted) {
			return voucherInvalidResult, fmt.Errorf("重复发放优惠券: %w", err)
		}
		return systemErrorResult, fmt.Errorf("发放优惠券失败: %w", err)
	}
	return ginx.Result{Data: GrantVoucherResp{RedemptionID: id}}, nil
}

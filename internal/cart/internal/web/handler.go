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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ecodeclub/emall/internal/cart/internal/service"
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
	g := server.Group("/cart")
	g.POST("/detail", ginx.S(h.GetCart))
	g.POST("/add", ginx.BS[AddItemReq](h.AddItem))
	g.POST("/update", ginx.BS[UpdateItemReq](h.UpdateItem))
	g.POST("/remove", ginx.BS[RemoveItemReq](h.RemoveItem))
}

func (h *Handler) GetCart(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	c, err := h.svc.Get(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询购物车失败: %w", err)
	}
	return ginx.Result{
		Data: GetCartResp{
			ID: c.ID,
			Items: slice.Map(c.Items, func(idx int, src domain.Item) CartItem {
				return CartItem{
					ID:          src.ID,
					ProductID:   src.ProductID,
					ProductName: src.ProductName,
					ImageURL:    src.ImageURL,
					Size:        src.Size,
					Quantity:    src.Quantity,
					UnitPrice:   src.UnitPrice,
				}
			}),
		},
	}, nil
}

func (h *Handler) AddItem(ctx *ginx.Context, req AddItemReq, sess session.Session) (ginx.Result, error) {
	id, err := h.svc.Add(ctx.Request.Context(), sess.Claims().Uid, domain.Item{
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrProductNotOnShelf) {
		return cartItemInvalidResult, fmt.Errorf("加入购物车失败: %w", err)
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("加入购物车失败: %w", err)
	}
	return ginx.Result{Data: AddItemResp{ItemID: id}}, nil
}

func (h *Handler) UpdateItem(ctx *ginx.Context, req UpdateItemReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.UpdateQuantity(ctx.Request.Context(), sess.Claims().Uid, req.ItemID, req.Quantity)
	if errors.Is(err, service.ErrInvalidQuantity) {
		return cartItemInvalidResult, fmt.Errorf("更新购物车失败: %w", err)
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("更新购物车失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) RemoveItem(ctx *ginx.Context, req RemoveItemReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Remove(ctx.Request.Context(), sess.Claims().Uid, req.ItemID)
	if err != nil {
		return systemErrorResult, fmt.Errorf("移除购物车条目失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

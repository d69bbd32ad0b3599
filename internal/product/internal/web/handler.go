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
	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/emall/internal/product/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/product")
	g.POST("/list", ginx.B[ListProductsReq](h.ListProducts))
	g.POST("/detail", ginx.B[ProductDetailReq](h.ProductDetail))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

// ListProducts 分页查询上架商品
func (h *Handler) ListProducts(ctx *ginx.Context, req ListProductsReq) (ginx.Result, error) {
	ps, total, err := h.svc.List(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询商品列表失败: %w", err)
	}
	return ginx.Result{
		Data: ListProductsResp{
			Total: total,
			Products: slice.Map(ps, func(idx int, src domain.Product) Product {
				return h.toProductVO(src)
			}),
		},
	}, nil
}

func (h *Handler) ProductDetail(ctx *ginx.Context, req ProductDetailReq) (ginx.Result, error) {
	p, err := h.svc.FindByID(ctx.Request.Context(), req.ID)
	if err != nil {
		return systemErrorResult, fmt.Errorf("商品ID非法: %w", err)
	}
	return ginx.Result{
		Data: ProductDetailResp{Product: h.toProductVO(p)},
	}, nil
}

func (h *Handler) toProductVO(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/ginx/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"

	"github.com/ecodeclub/emall/internal/address"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/paymethod"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/voucher"
)

func initGinxServer(sp session.Provider,
	productHdl *product.Handler,
	addressHdl *address.Handler,
	paymethodHdl *paymethod.Handler,
	voucherHdl *voucher.Handler,
	cartHdl *cart.Handler,
	orderHdl *order.Handler,
	paymentHdl *payment.Handler,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			return strings.Contains(origin, "emall.vn")
		},
	}))
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	// 商品目录可以匿名浏览, 网关回调不走登录态
	productHdl.PublicRoutes(res.Engine)
	paymentHdl.PublicRoutes(res.Engine)
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	addressHdl.PrivateRoutes(res.Engine)
	paymethodHdl.PrivateRoutes(res.Engine)
	voucherHdl.PrivateRoutes(res.Engine)
	cartHdl.PrivateRoutes(res.Engine)
	orderHdl.PrivateRoutes(res.Engine)
	paymentHdl.PrivateRoutes(res.Engine)
	return res
}

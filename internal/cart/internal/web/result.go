package web

import (
	"github.com/ecodeclub/emall/internal/cart/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	cartItemInvalidResult = ginx.Result{
		Code: errs.CartItemInvalid.Code,
		Msg:  errs.CartItemInvalid.Msg,
	}
)

package web

import (
	"github.com/ecodeclub/emall/internal/payment/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	amountTooSmallResult = ginx.Result{
		Code: errs.AmountTooSmall.Code,
		Msg:  errs.AmountTooSmall.Msg,
	}
	orderInvalidResult = ginx.Result{
		Code: errs.OrderInvalid.Code,
		Msg:  errs.OrderInvalid.Msg,
	}
)

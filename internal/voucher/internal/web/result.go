package web

import (
	"github.com/ecodeclub/emall/internal/voucher/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	voucherInvalidResult = ginx.Result{
		Code: errs.VoucherInvalid.Code,
		Msg:  errs.VoucherInvalid.Msg,
	}
)

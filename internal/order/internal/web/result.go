package web

import (
	"github.com/ecodeclub/emall/internal/order/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	addressInvalidResult = ginx.Result{
		Code: errs.AddressInvalid.Code,
		Msg:  errs.AddressInvalid.Msg,
	}
	paymentMethodInvalidResult = ginx.Result{
		Code: errs.PaymentMethodInvalid.Code,
		Msg:  errs.PaymentMethodInvalid.Msg,
	}
	productNotSellableResult = ginx.Result{
		Code: errs.ProductNotSellable.Code,
		Msg:  errs.ProductNotSellable.Msg,
	}
	stockExhaustedResult = ginx.Result{
		Code: errs.StockExhausted.Code,
		Msg:  errs.StockExhausted.Msg,
	}
	voucherInvalidResult = ginx.Result{
		Code: errs.VoucherInvalid.Code,
		Msg:  errs.VoucherInvalid.Msg,
	}
	orderNotFoundResult = ginx.Result{
		Code: errs.OrderNotFound.Code,
		Msg:  errs.OrderNotFound.Msg,
	}
	orderNotCancelableResult = ginx.Result{
		Code: errs.OrderNotCancelable.Code,
		Msg:  errs.OrderNotCancelable.Msg,
	}
	checkoutInvalidResult = ginx.Result{
		Code: errs.CheckoutInvalid.Code,
		Msg:  errs.CheckoutInvalid.Msg,
	}
)

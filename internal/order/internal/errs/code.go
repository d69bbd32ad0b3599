package errs

var (
	SystemError          = ErrorCode{Code: 606001, Msg: "系统错误"}
	AddressInvalid       = ErrorCode{Code: 606002, Msg: "收货地址无效"}
	PaymentMethodInvalid = ErrorCode{Code: 606003, Msg: "支付方式无效"}
	ProductNotSellable   = ErrorCode{Code: 606004, Msg: "商品不可售"}
	StockExhausted       = ErrorCode{Code: 606005, Msg: "库存不足"}
	VoucherInvalid       = ErrorCode{Code: 606006, Msg: "优惠券不可用"}
	OrderNotFound        = ErrorCode{Code: 606007, Msg: "订单不存在"}
	OrderNotCancelable   = ErrorCode{Code: 606008, Msg: "订单当前状态不可取消"}
	CheckoutInvalid      = ErrorCode{Code: 606009, Msg: "结账请求非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}

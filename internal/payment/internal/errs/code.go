package errs

var (
	SystemError    = ErrorCode{Code: 607001, Msg: "系统错误"}
	AmountTooSmall = ErrorCode{Code: 607002, Msg: "支付金额低于最低限额"}
	OrderInvalid   = ErrorCode{Code: 607003, Msg: "订单不存在"}
)

type ErrorCode struct {
	Code int
	Msg  string
}

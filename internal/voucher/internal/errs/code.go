package errs

var (
	SystemError    = ErrorCode{Code: 604001, Msg: "系统错误"}
	VoucherInvalid = ErrorCode{Code: 604002, Msg: "优惠券不可用"}
)

type ErrorCode struct {
	Code int
	Msg  string
}

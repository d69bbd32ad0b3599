package errs

var (
	SystemError     = ErrorCode{Code: 605001, Msg: "系统错误"}
	CartItemInvalid = ErrorCode{Code: 605002, Msg: "购物车条目无效"}
)

type ErrorCode struct {
	Code int
	Msg  string
}

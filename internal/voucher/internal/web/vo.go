package web

type ListVouchersResp struct {
	Vouchers []Voucher `json:"vouchers,omitempty"`
}

type Voucher struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	DiscountType   string `json:"discountType"`
	DiscountValue  int64  `json:"discountValue"`
	MinOrderAmount int64  `json:"minOrderAmount"`
	StartAt        int64  `json:"startAt"`
	EndAt          int64  `json:"endAt"`
	Status         string `json:"status"`
}

// PreviewVoucherReq 下单前试算抵扣额
type PreviewVoucherReq struct {
	Code       string `json:"code"`
	OrderTotal int64  `json:"orderTotal"`
}

type PreviewVoucherResp struct {
	VoucherID int64 `json:"voucherId"`
	Discount  int64 `json:"discount"`
}

type CreateVoucherReq struct {
	Code              string `json:"code"`
	DiscountType      string `json:"discountType"`
	DiscountValue     int64  `json:"discountValue"`
	MinOrderAmount    int64  `json:"minOrderAmount"`
	MaxDiscountAmount int64  `json:"maxDiscountAmount"`
	StartAt           int64  `json:"startAt"`
	EndAt             int64  `json:"endAt"`
}

type CreateVoucherResp struct {
	ID int64 `json:"id"`
}

type GrantVoucherReq struct {
	UID       int64 `json:"uid"`
	VoucherID int64 `json:"voucherId"`
}

type GrantVoucherResp struct {
	RedemptionID int64 `json:"redemptionId"`
}

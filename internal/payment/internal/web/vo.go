package web

type CreatePaymentReq struct {
	OrderID int64 `json:"orderId"`
}

type CreatePaymentResp struct {
	PayURL         string `json:"payUrl"`
	GatewayOrderID string `json:"momoOrderId"`
	RequestID      string `json:"requestId"`
}

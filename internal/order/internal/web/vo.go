package web

type CheckoutReq struct {
	// RequestID 客户端生成, 结账不幂等, 重复提交要在入口挡掉
	RequestID       string         `json:"requestId"`
	Items           []CheckoutItem `json:"items"`
	AddressID       int64          `json:"addressId"`
	PaymentMethodID int64          `json:"paymentMethodId,omitempty"`
	VoucherCode     string         `json:"voucherCode,omitempty"`
}

type CheckoutItem struct {
	ProductID int64  `json:"productId"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

type CheckoutResp struct {
	OrderID         int64  `json:"orderId"`
	OrderSN         string `json:"orderSn"`
	AddressID       int64  `json:"addressId"`
	PaymentMethodID int64  `json:"paymentMethodId,omitempty"`
	VoucherID       int64  `json:"voucherId,omitempty"`
	SubTotal        int64  `json:"subTotal"`
	Discount        int64  `json:"discount"`
	ShippingFee     int64  `json:"shippingFee"`
	TotalAmount     int64  `json:"totalAmount"`
	Status          string `json:"status"`
	PaymentMethod   string `json:"paymentMethod"`
	Momo            *Momo  `json:"momo,omitempty"`
}

type Momo struct {
	PayURL string `json:"payUrl"`
}

type ListOrdersReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total"`
	Orders []Order `json:"orders,omitempty"`
}

type OrderDetailReq struct {
	OrderID int64 `json:"orderId"`
}

type CancelOrderReq struct {
	OrderID int64 `json:"orderId"`
}

type Order struct {
	ID              int64       `json:"id"`
	SN              string      `json:"sn"`
	AddressSnapshot string      `json:"addressSnapshot"`
	SubTotal        int64       `json:"subTotal"`
	Discount        int64       `json:"discount"`
	ShippingFee     int64       `json:"shippingFee"`
	TotalAmount     int64       `json:"totalAmount"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"paymentMethod"`
	Ctime           int64       `json:"ctime"`
	Items           []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Size        string `json:"size,omitempty"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

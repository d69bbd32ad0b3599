package web

type GetCartResp struct {
	ID    int64      `json:"id"`
	Items []CartItem `json:"items,omitempty"`
}

type CartItem struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	ImageURL    string `json:"imageUrl"`
	Size        string `json:"size,omitempty"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

type AddItemReq struct {
	ProductID int64  `json:"productId"`
	Size      string `json:"size,omitempty"`
	Quantity  int64  `json:"quantity"`
}

type AddItemResp struct {
	ItemID int64 `json:"itemId"`
}

type UpdateItemReq struct {
	ItemID   int64 `json:"itemId"`
	Quantity int64 `json:"quantity"`
}

type RemoveItemReq struct {
	ItemID int64 `json:"itemId"`
}

package web

// ListProductsReq 商品列表分页请求
type ListProductsReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListProductsResp struct {
	Total    int64     `json:"total,omitempty"`
	Products []Product `json:"products,omitempty"`
}

type ProductDetailReq struct {
	ID int64 `json:"id"`
}

type ProductDetailResp struct {
	Product Product `json:"product"`
}

type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
}

package model

// カタログAPIの画像（サムネイルだけ使う）
type ProductImage struct {
	Thumbnail string `json:"thumbnail"`
	Full      string `json:"full"`
}

// 商品バリエーション（カタログ側）
type Variation struct {
	ID          int64  `json:"id"`
	Description string `json:"deskripsi"`
	Price       int64  `json:"harga_variasi"`
}

// カタログAPIの商品。カートが必要とする項目のみ。
type Product struct {
	ID            int64          `json:"id"`
	Slug          string         `json:"slug"`
	Name          string         `json:"nama_produk"`
	BasePrice     int64          `json:"harga_dasar"`
	FeaturedImage *ProductImage  `json:"gambar_unggulan"`
	Gallery       []ProductImage `json:"galeri_foto"`
	Variations    []Variation    `json:"variasi"`
	Toko          Seller         `json:"toko"`
}

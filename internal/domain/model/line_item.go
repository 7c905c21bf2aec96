package model

import "fmt"

// 商品画像が無いときのフォールバック
const FallbackItemImage = "https://placehold.co/100x100/f4f4f5/a1a1aa?text=Sadesa"

// 店舗（販売者）
type Seller struct {
	ID   int64  `json:"id_pedagang"`
	Name string `json:"nama_toko"`
}

// カート明細に残すバリエーション情報（価格は明細のPriceに写す）
type ItemVariation struct {
	ID          int64  `json:"id"`
	Description string `json:"deskripsi"`
}

// カートの明細。
// IDは productID_variationID の複合キー（バリエーション無しは _0）。
// 同一IDの明細はカート内に1行のみ。
type LineItem struct {
	ID        string         `json:"id"`
	ProductID int64          `json:"productId"`
	Name      string         `json:"name"`
	Price     int64          `json:"price"`
	Quantity  int64          `json:"quantity"`
	Image     string         `json:"image"`
	Variation *ItemVariation `json:"variation" gorm:"serializer:json"`
	Toko      *Seller        `json:"toko" gorm:"serializer:json"`
	SellerID  int64          `json:"sellerId"`
}

// LineItemID は明細の識別キーを組み立てる。
func LineItemID(productID int64, variation *Variation) string {
	if variation != nil {
		return fmt.Sprintf("%d_%d", productID, variation.ID)
	}
	return fmt.Sprintf("%d_0", productID)
}

// NewLineItem は商品（＋任意のバリエーション）から明細を作る。
// 価格はバリエーション価格を優先。画像は代表画像→ギャラリー先頭→フォールバック。
func NewLineItem(p Product, variation *Variation, quantity int64) LineItem {
	price := p.BasePrice
	var iv *ItemVariation
	if variation != nil {
		price = variation.Price
		iv = &ItemVariation{ID: variation.ID, Description: variation.Description}
	}

	image := FallbackItemImage
	if p.FeaturedImage != nil && p.FeaturedImage.Thumbnail != "" {
		image = p.FeaturedImage.Thumbnail
	} else if len(p.Gallery) > 0 && p.Gallery[0].Thumbnail != "" {
		image = p.Gallery[0].Thumbnail
	}

	toko := p.Toko
	return LineItem{
		ID:        LineItemID(p.ID, variation),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     price,
		Quantity:  quantity,
		Image:     image,
		Variation: iv,
		Toko:      &toko,
		SellerID:  p.Toko.ID,
	}
}

// Subtotal は明細小計（単価×数量）。
func (i LineItem) Subtotal() int64 {
	return i.Price * i.Quantity
}

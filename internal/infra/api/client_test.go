package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"
	"github.com/bonangpanjinur/desawisata/internal/infra/api"
	"github.com/bonangpanjinur/desawisata/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// スタブのバックエンド（WordPress REST相当）
type stubBackend struct {
	mu         sync.Mutex
	lastAuth   string
	lastReqID  string
	lastSync   map[string][]model.LineItem // body直デコード用
	cart       []model.LineItem
	failSync   bool
	clearCalls int
}

func newStubServer(t *testing.T, b *stubBackend) *httptest.Server {
	t.Helper()

	e := echo.New()

	record := func(c echo.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.lastAuth = c.Request().Header.Get("Authorization")
		b.lastReqID = c.Request().Header.Get("X-Request-ID")
	}

	e.GET("/pembeli/cart", func(c echo.Context) error {
		record(c)
		return c.JSON(http.StatusOK, b.cart)
	})

	e.POST("/pembeli/cart/sync", func(c echo.Context) error {
		record(c)
		if b.failSync {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "<p>Stok tidak cukup</p>",
			})
		}

		var req map[string][]model.LineItem
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
		}

		b.mu.Lock()
		b.lastSync = req
		b.cart = req["cart"]
		b.mu.Unlock()
		return c.JSON(http.StatusOK, b.cart)
	})

	e.DELETE("/pembeli/cart", func(c echo.Context) error {
		record(c)
		b.mu.Lock()
		b.cart = nil
		b.clearCalls++
		b.mu.Unlock()
		return c.NoContent(http.StatusNoContent)
	})

	e.POST("/auth/login", func(c echo.Context) error {
		var req map[string]string
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
		}
		if req["password"] != "rahasia" {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"message": "Username atau password salah.",
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"user_data": map[string]any{
				"id":           5,
				"username":     req["username"],
				"nama_lengkap": "Budi Santoso",
			},
			"token": "tok123",
		})
	})

	e.GET("/produk/slug/:slug", func(c echo.Context) error {
		if c.Param("slug") != "kopi-robusta" {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Produk tidak ditemukan"})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"id":          42,
			"slug":        "kopi-robusta",
			"nama_produk": "Kopi Robusta",
			"harga_dasar": 25000,
			"variasi": []map[string]any{
				{"id": 3, "deskripsi": "250 gram", "harga_variasi": 40000},
			},
			"toko": map[string]any{"id_pedagang": 7, "nama_toko": "Toko Kopi Desa"},
		})
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, b *stubBackend) *api.Client {
	t.Helper()
	srv := newStubServer(t, b)
	return api.NewClient(srv.URL, 5*time.Second)
}

func TestCartAPI_SyncSendsFullCartWithBearer(t *testing.T) {
	b := &stubBackend{}
	client := newTestClient(t, b)
	client.SetToken("tok123")

	items := []model.LineItem{
		{ID: "42_3", ProductID: 42, Name: "Kopi Robusta", Price: 40000, Quantity: 2,
			Variation: &model.ItemVariation{ID: 3, Description: "250 gram"},
			Toko:      &model.Seller{ID: 7, Name: "Toko Kopi Desa"},
			SellerID:  7},
	}

	merged, err := api.NewCartAPI(client).Sync(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "42_3", merged[0].ID)

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, "Bearer tok123", b.lastAuth)
	assert.NotEmpty(t, b.lastReqID)
	// ペイロードは { "cart": [...] }
	require.Contains(t, b.lastSync, "cart")
	require.Len(t, b.lastSync["cart"], 1)
	assert.Equal(t, int64(2), b.lastSync["cart"][0].Quantity)
	assert.Equal(t, "250 gram", b.lastSync["cart"][0].Variation.Description)
}

func TestCartAPI_FetchAndClear(t *testing.T) {
	b := &stubBackend{cart: []model.LineItem{{ID: "1_0", Quantity: 1}}}
	client := newTestClient(t, b)
	client.SetToken("tok123")
	cartAPI := api.NewCartAPI(client)

	items, err := cartAPI.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, cartAPI.Clear(context.Background()))
	b.mu.Lock()
	assert.Equal(t, 1, b.clearCalls)
	b.mu.Unlock()

	items, err = cartAPI.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartAPI_SyncErrorMessageFromBody(t *testing.T) {
	b := &stubBackend{failSync: true}
	client := newTestClient(t, b)
	client.SetToken("tok123")

	_, err := api.NewCartAPI(client).Sync(context.Background(), nil)
	require.Error(t, err)
	// HTMLタグは剥がしてメッセージだけ残す
	assert.Equal(t, "Stok tidak cukup", err.Error())
}

func TestClient_TokenLifecycle(t *testing.T) {
	b := &stubBackend{}
	client := newTestClient(t, b)

	assert.False(t, client.Authenticated())
	client.SetToken("tok123")
	assert.True(t, client.Authenticated())
	client.ClearToken()
	assert.False(t, client.Authenticated())

	// トークン無しはAuthorizationヘッダも無し
	_, err := api.NewCartAPI(client).Fetch(context.Background())
	require.NoError(t, err)
	b.mu.Lock()
	assert.Empty(t, b.lastAuth)
	b.mu.Unlock()
}

func TestAuthAPI_Login(t *testing.T) {
	b := &stubBackend{}
	client := newTestClient(t, b)
	authAPI := api.NewAuthAPI(client)

	sess, err := authAPI.Login(context.Background(), "budi", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, "tok123", sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, int64(5), sess.User.ID)
	assert.Equal(t, "Budi Santoso", sess.User.FullName)
}

func TestAuthAPI_LoginBadCredentials(t *testing.T) {
	b := &stubBackend{}
	client := newTestClient(t, b)

	_, err := api.NewAuthAPI(client).Login(context.Background(), "budi", "salah")
	require.Error(t, err)
	assert.Equal(t, "Username atau password salah.", err.Error())
}

func TestProductAPI_FindBySlug(t *testing.T) {
	b := &stubBackend{}
	client := newTestClient(t, b)
	productAPI := api.NewProductAPI(client)

	p, err := productAPI.FindBySlug(context.Background(), "kopi-robusta")
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "Kopi Robusta", p.Name)
	require.Len(t, p.Variations, 1)
	assert.Equal(t, int64(40000), p.Variations[0].Price)
	assert.Equal(t, int64(7), p.Toko.ID)

	_, err = productAPI.FindBySlug(context.Background(), "tidak-ada")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorContains(t, err, "Produk tidak ditemukan")
}

var _ repository.RemoteCart = (*api.CartAPI)(nil)
var _ repository.AuthAPI = (*api.AuthAPI)(nil)
var _ repository.ProductAPI = (*api.ProductAPI)(nil)

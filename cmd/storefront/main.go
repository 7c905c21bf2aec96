package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bonangpanjinur/desawisata/internal/config"
	"github.com/bonangpanjinur/desawisata/internal/currency"
	"github.com/bonangpanjinur/desawisata/internal/domain/model"
	"github.com/bonangpanjinur/desawisata/internal/infra/api"
	"github.com/bonangpanjinur/desawisata/internal/infra/db"
	infraRepo "github.com/bonangpanjinur/desawisata/internal/infra/repository"
	"github.com/bonangpanjinur/desawisata/internal/notify"
	"github.com/bonangpanjinur/desawisata/internal/repository"
	"github.com/bonangpanjinur/desawisata/internal/scheduler"
	"github.com/bonangpanjinur/desawisata/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envが無くても環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//ローカル保存
	gormDB, err := db.Connect(cfg.StoragePath)
	if err != nil {
		logger.Fatal("storage open failed", zap.Error(err))
	}
	if err := infraRepo.Migrate(gormDB); err != nil {
		logger.Fatal("storage migrate failed", zap.Error(err))
	}

	cartStorage := infraRepo.NewCartStorageGorm(gormDB)
	sessionStorage := infraRepo.NewSessionStorageGorm(gormDB)

	//リモートAPI
	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	cartAPI := api.NewCartAPI(client)
	authAPI := api.NewAuthAPI(client)
	productAPI := api.NewProductAPI(client)

	notifier := notify.NewWriterNotifier(os.Stderr)
	debouncer := scheduler.NewDebouncer(cfg.SyncWindow)

	//Store生成
	cart := store.NewCartStore(cartStorage, cartAPI, client, debouncer, notifier, logger)
	session := store.NewSessionController(authAPI, cartAPI, sessionStorage, client, cart, notifier, logger)

	ctx := context.Background()
	if err := cart.Restore(ctx); err != nil {
		logger.Warn("cart restore failed", zap.Error(err))
	}
	if err := session.Restore(ctx); err != nil {
		logger.Warn("session restore failed", zap.Error(err))
	}

	runREPL(ctx, cart, session, productAPI)
}

func runREPL(ctx context.Context, cart *store.CartStore, session *store.SessionController, products repository.ProductAPI) {
	fmt.Println("desawisata storefront — ketik 'help' untuk daftar perintah")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "help":
			printHelp()
		case "produk":
			search := strings.Join(args, " ")
			listProducts(ctx, products, search)
		case "add":
			addToCart(ctx, cart, products, args)
		case "cart":
			printCart(cart, session)
		case "qty":
			if len(args) != 2 {
				fmt.Println("pakai: qty <id> <jumlah>")
				continue
			}
			n, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fmt.Println("jumlah harus angka")
				continue
			}
			if err := cart.UpdateQuantity(ctx, args[0], n); err != nil {
				fmt.Println(err)
			}
		case "rm":
			if len(args) != 1 {
				fmt.Println("pakai: rm <id>")
				continue
			}
			_ = cart.RemoveItem(ctx, args[0])
		case "clear":
			_ = cart.ClearCart(ctx)
		case "login":
			if len(args) != 2 {
				fmt.Println("pakai: login <username> <password>")
				continue
			}
			if err := session.SignIn(ctx, args[0], args[1]); err != nil {
				fmt.Println("login gagal:", err)
				continue
			}
			fmt.Println("login berhasil")
		case "logout":
			_ = session.SignOut(ctx)
			fmt.Println("logout selesai")
		case "register":
			if len(args) < 4 {
				fmt.Println("pakai: register <username> <email> <password> <nama lengkap>")
				continue
			}
			in := repository.RegisterInput{
				Username: args[0],
				Email:    args[1],
				Password: args[2],
				FullName: strings.Join(args[3:], " "),
			}
			if err := session.Register(ctx, in); err != nil {
				fmt.Println("registrasi gagal:", err)
				continue
			}
			fmt.Println("registrasi berhasil, silakan login")
		case "exit", "quit":
			return
		default:
			fmt.Println("perintah tidak dikenal:", cmd)
		}
	}
}

func printHelp() {
	fmt.Println(`perintah:
  produk [kata kunci]          cari produk
  add <slug> [jumlah] [varId]  tambah ke keranjang
  cart                         lihat keranjang
  qty <id> <jumlah>            ubah jumlah (0 = hapus)
  rm <id>                      hapus dari keranjang
  clear                        kosongkan keranjang
  login <username> <password>
  logout
  register <username> <email> <password> <nama lengkap>
  exit`)
}

func listProducts(ctx context.Context, products repository.ProductAPI, search string) {
	list, err := products.ListProducts(ctx, repository.ProductQuery{Search: search, PerPage: 10})
	if err != nil {
		fmt.Println("gagal mengambil produk:", err)
		return
	}
	for _, p := range list {
		fmt.Printf("  %-30s %s  (%s)\n", p.Slug, currency.FormatIDR(p.BasePrice), p.Toko.Name)
		for _, v := range p.Variations {
			fmt.Printf("    varian %d: %s %s\n", v.ID, v.Description, currency.FormatIDR(v.Price))
		}
	}
}

func addToCart(ctx context.Context, cart *store.CartStore, products repository.ProductAPI, args []string) {
	if len(args) < 1 {
		fmt.Println("pakai: add <slug> [jumlah] [varId]")
		return
	}

	p, err := products.FindBySlug(ctx, args[0])
	if err != nil {
		fmt.Println("produk tidak ditemukan:", err)
		return
	}

	qty := int64(1)
	if len(args) >= 2 {
		qty, err = strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Println("jumlah harus angka")
			return
		}
	}

	var variation *model.Variation
	if len(args) >= 3 {
		varID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			fmt.Println("varId harus angka")
			return
		}
		for i := range p.Variations {
			if p.Variations[i].ID == varID {
				variation = &p.Variations[i]
				break
			}
		}
		if variation == nil {
			fmt.Println("varian tidak ditemukan")
			return
		}
	}

	if err := cart.AddItem(ctx, p, variation, qty); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("ditambahkan: %s x%d\n", p.Name, qty)
}

func printCart(cart *store.CartStore, session *store.SessionController) {
	groups := cart.GroupBySeller()
	if len(groups) == 0 {
		fmt.Println("keranjang kosong")
		return
	}

	for _, g := range groups {
		fmt.Printf("%s:\n", g.SellerName)
		for _, item := range g.Items {
			label := item.Name
			if item.Variation != nil {
				label += " (" + item.Variation.Description + ")"
			}
			fmt.Printf("  [%s] %-40s x%-3d %s\n", item.ID, label, item.Quantity, currency.FormatIDR(item.Subtotal()))
		}
	}
	fmt.Printf("total %d barang: %s (status: %s)\n",
		cart.TotalItemCount(), currency.FormatIDR(cart.TotalPrice()), session.State())
}

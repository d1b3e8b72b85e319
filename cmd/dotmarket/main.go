package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/dotcomico/dotmarket-client/config"
	"github.com/dotcomico/dotmarket-client/internal/api"
	"github.com/dotcomico/dotmarket-client/internal/export"
	"github.com/dotcomico/dotmarket-client/internal/hooks"
	"github.com/dotcomico/dotmarket-client/internal/model"
	"github.com/dotcomico/dotmarket-client/internal/storage"
	"github.com/dotcomico/dotmarket-client/internal/store"
	"github.com/dotcomico/dotmarket-client/pkg/logger"
)

// app bundles the client, containers, and hooks the commands operate on.
type app struct {
	client     *api.Client
	session    *store.Session
	cart       *store.Cart
	orders     *store.Orders
	products   *store.Products
	categories *store.Categories
	ui         *store.UI

	checkout *hooks.Checkout
	history  *hooks.OrderHistory
	access   *hooks.Access
	board    *hooks.Dashboard
	logout   *hooks.Logout
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		EnableColor: true,
	})

	a, err := buildApp(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize client", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func buildApp(cfg *config.Config) (*app, error) {
	local, err := storage.New(cfg.State.Dir)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return nil, err
	}

	session := store.NewSession(client, local)
	session.Bind(client)
	session.SetForcedLogoutHandler(func() {
		fmt.Fprintln(os.Stderr, "Your session has expired. Please log in again.")
	})

	cart := store.NewCart(local)
	orders := store.NewOrders(client)
	products := store.NewProducts(client)
	categories := store.NewCategories(client)
	ui := store.NewUI(local)

	return &app{
		client:     client,
		session:    session,
		cart:       cart,
		orders:     orders,
		products:   products,
		categories: categories,
		ui:         ui,
		checkout:   hooks.NewCheckout(cart, orders),
		history:    hooks.NewOrderHistory(orders),
		access:     hooks.NewAccess(session),
		board:      hooks.NewDashboard(orders, products),
		logout:     hooks.NewLogout(session, cart, orders),
	}, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		a.logout.Do()
		fmt.Println("Logged out.")
		return nil
	case "me":
		return a.cmdMe(ctx)
	case "products":
		return a.cmdProducts(ctx, args)
	case "product":
		return a.cmdProduct(ctx, args)
	case "categories":
		return a.cmdCategories(ctx)
	case "cart":
		return a.cmdCart(ctx, args)
	case "checkout":
		return a.cmdCheckout(ctx, args)
	case "orders":
		return a.cmdOrders(ctx)
	case "order":
		return a.cmdOrder(ctx, args)
	case "theme":
		return a.cmdTheme(args)
	case "admin":
		return a.cmdAdmin(ctx, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	result := a.session.Login(ctx, api.LoginCredentials{Email: *email, Password: *password})
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	fmt.Printf("Welcome back, %s.\n", result.User.Username)
	if result.Landing == store.LandingBackOffice {
		fmt.Println("Back office available: dotmarket admin ...")
	}
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	result := a.session.Register(ctx, api.RegisterInput{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	fmt.Printf("Account created. Welcome, %s.\n", result.User.Username)
	return nil
}

func (a *app) cmdMe(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}
	user, err := a.session.RefreshUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (%s)\n", user.Username, user.Email, user.Role)
	return nil
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "search term")
	category := fs.String("category", "", "category filter")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	fs.Parse(args)

	err := a.products.Fetch(ctx, &model.ProductFilters{
		Search:   *search,
		Category: *category,
		Page:     *page,
		Limit:    *limit,
	})
	if err != nil {
		return fmt.Errorf("%s", a.products.Err())
	}

	for _, p := range a.products.All() {
		stock := fmt.Sprintf("%d in stock", p.Stock)
		if p.OutOfStock() {
			stock = "out of stock"
		}
		fmt.Printf("#%d  %-30s  %8.2f  %s\n", p.ID, p.Name, p.Price, stock)
	}
	if pg := a.products.Pagination(); pg != nil {
		fmt.Printf("Page %d of %d (%d products)\n", pg.Page, pg.TotalPages, pg.Total)
	}
	return nil
}

func (a *app) cmdProduct(ctx context.Context, args []string) error {
	id, err := intArg(args, 0, "product id")
	if err != nil {
		return err
	}
	product, err := a.client.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s\n%s\nPrice: %.2f  Stock: %d\n", product.ID, product.Name, product.Description, product.Price, product.Stock)
	return nil
}

func (a *app) cmdCategories(ctx context.Context) error {
	if err := a.categories.Fetch(ctx); err != nil {
		return fmt.Errorf("%s", a.categories.Err())
	}
	for _, cat := range a.categories.Flat() {
		indent := ""
		if !cat.IsRoot() {
			indent = "  "
		}
		fmt.Printf("%s#%d %s (%s)\n", indent, cat.ID, cat.Name, cat.Slug)
	}
	return nil
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "add":
		id, err := intArg(args, 1, "product id")
		if err != nil {
			return err
		}
		qty := 1
		if len(args) > 2 {
			if qty, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
		}
		product, err := a.client.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		if qty > product.Stock {
			fmt.Printf("Note: only %d in stock.\n", product.Stock)
		}
		a.cart.AddItem(*product, qty)
		fmt.Printf("Added %d x %s.\n", qty, product.Name)
		return nil
	case "remove":
		id, err := intArg(args, 1, "product id")
		if err != nil {
			return err
		}
		a.cart.RemoveItem(id)
		return nil
	case "set":
		id, err := intArg(args, 1, "product id")
		if err != nil {
			return err
		}
		qty, err := intArg(args, 2, "quantity")
		if err != nil {
			return err
		}
		a.cart.UpdateQuantity(id, qty)
		return nil
	case "clear":
		a.cart.Clear()
		fmt.Println("Cart cleared.")
		return nil
	case "show":
		items := a.cart.Items()
		if len(items) == 0 {
			fmt.Println("Your cart is empty.")
			return nil
		}
		for _, item := range items {
			fmt.Printf("#%d  %-30s  x%d  %8.2f\n", item.Product.ID, item.Product.Name, item.Quantity, item.Subtotal())
		}
		fmt.Printf("%d items, total %.2f\n", a.cart.TotalItems(), a.cart.TotalPrice())
		return nil
	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	address := fs.String("address", "", "delivery address")
	fs.Parse(args)

	result := a.checkout.PlaceOrder(ctx, *address)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	fmt.Printf("Order #%d placed. Total: %.2f\n", result.Order.ID, result.Order.TotalAmount)
	return nil
}

func (a *app) cmdOrders(ctx context.Context) error {
	if err := a.history.Load(ctx); err != nil {
		return fmt.Errorf("%s", a.orders.Err())
	}
	for _, order := range a.orders.All() {
		fmt.Printf("#%d  %s  %8.2f  %s\n", order.ID, order.CreatedAt.Format("2006-01-02"), order.TotalAmount, order.Status.Label())
	}
	stats := a.history.Stats()
	fmt.Printf("%d orders, %.2f spent\n", stats.TotalOrders, stats.TotalSpent)
	return nil
}

func (a *app) cmdOrder(ctx context.Context, args []string) error {
	id, err := intArg(args, 0, "order id")
	if err != nil {
		return err
	}
	order, err := a.history.Details(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Order #%d  %s  %s\n", order.ID, order.Status.Label(), order.Address)
	for _, item := range order.Items {
		name := fmt.Sprintf("product %d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Printf("  %-30s x%d  %8.2f\n", name, item.Quantity, item.Price)
	}
	fmt.Printf("Total: %.2f\n", order.TotalAmount)
	return nil
}

func (a *app) cmdTheme(args []string) error {
	if len(args) == 0 {
		fmt.Println(a.ui.Theme())
		return nil
	}
	switch args[0] {
	case "light":
		a.ui.SetTheme(store.ThemeLight)
	case "dark":
		a.ui.SetTheme(store.ThemeDark)
	case "toggle":
		a.ui.Toggle()
	default:
		return fmt.Errorf("unknown theme %q", args[0])
	}
	fmt.Println(a.ui.Theme())
	return nil
}

func (a *app) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("admin subcommand required")
	}
	if !a.access.IsStaff() {
		return fmt.Errorf("back office requires an admin or manager account")
	}

	switch args[0] {
	case "orders":
		fs := flag.NewFlagSet("admin orders", flag.ExitOnError)
		status := fs.String("status", "", "filter by status")
		fs.Parse(args[1:])

		if err := a.orders.FetchAll(ctx); err != nil {
			return fmt.Errorf("%s", a.orders.Err())
		}
		orders := a.orders.All()
		if *status != "" {
			orders = a.orders.ByStatus(model.OrderStatus(*status))
		}
		for _, order := range orders {
			fmt.Printf("#%d  %-15s  %8.2f  %s\n", order.ID, order.CustomerName(), order.TotalAmount, order.Status.Label())
		}
		return nil
	case "set-status":
		id, err := intArg(args, 1, "order id")
		if err != nil {
			return err
		}
		if len(args) < 3 {
			return fmt.Errorf("status required")
		}
		status := model.OrderStatus(args[2])
		if !status.Valid() {
			return fmt.Errorf("unknown status %q", args[2])
		}
		result := a.history.ChangeStatus(ctx, id, status)
		if !result.Success {
			return fmt.Errorf("%s", result.Error)
		}
		fmt.Printf("Order #%d is now %s.\n", id, result.Order.Status.Label())
		return nil
	case "low-stock":
		if err := a.products.Fetch(ctx, nil); err != nil {
			return fmt.Errorf("%s", a.products.Err())
		}
		for _, product := range a.board.LowStockAlerts() {
			fmt.Printf("#%d  %-30s  %d left\n", product.ID, product.Name, product.Stock)
		}
		return nil
	case "dashboard":
		if err := a.orders.FetchAll(ctx); err != nil {
			return fmt.Errorf("%s", a.orders.Err())
		}
		if err := a.products.Fetch(ctx, nil); err != nil {
			return fmt.Errorf("%s", a.products.Err())
		}
		stats := a.board.Stats()
		fmt.Printf("Revenue: %.2f  Orders: %d  Products: %d  Low stock: %d\n",
			stats.TotalRevenue, stats.TotalOrders, stats.TotalProducts, stats.LowStockCount)
		for _, row := range a.board.RecentOrders(5) {
			fmt.Printf("#%d  %-15s  %8.2f  %-10s  %s\n", row.ID, row.Customer, row.Amount, row.Status, row.Date)
		}
		return nil
	case "export-orders":
		if len(args) < 2 {
			return fmt.Errorf("output file required")
		}
		if err := a.orders.FetchAll(ctx); err != nil {
			return fmt.Errorf("%s", a.orders.Err())
		}
		return export.Orders(args[1], a.orders.All())
	case "export-inventory":
		if len(args) < 2 {
			return fmt.Errorf("output file required")
		}
		if err := a.products.Fetch(ctx, nil); err != nil {
			return fmt.Errorf("%s", a.products.Err())
		}
		return export.Inventory(args[1], a.products.All())
	case "users":
		users, err := a.client.ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, user := range users {
			fmt.Printf("#%d  %-15s  %-25s  %s\n", user.ID, user.Username, user.Email, user.Role)
		}
		return nil
	case "set-role":
		id, err := intArg(args, 1, "user id")
		if err != nil {
			return err
		}
		if len(args) < 3 {
			return fmt.Errorf("role required")
		}
		user, err := a.client.UpdateUserRole(ctx, id, model.Role(args[2]))
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s.\n", user.Username, user.Role)
		return nil
	default:
		return fmt.Errorf("unknown admin subcommand %q", args[0])
	}
}

func intArg(args []string, idx int, name string) (int, error) {
	if len(args) <= idx {
		return 0, fmt.Errorf("%s required", name)
	}
	v, err := strconv.Atoi(args[idx])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[idx])
	}
	return v, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `dotmarket - grocery storefront client

Usage:
  dotmarket login -email ... -password ...
  dotmarket register -username ... -email ... -password ...
  dotmarket logout | me
  dotmarket products [-search ...] [-category ...] [-page N] [-limit N]
  dotmarket product <id>
  dotmarket categories
  dotmarket cart [show|add <id> [qty]|set <id> <qty>|remove <id>|clear]
  dotmarket checkout -address ...
  dotmarket orders | order <id>
  dotmarket theme [light|dark|toggle]
  dotmarket admin [orders|set-status|low-stock|dashboard|export-orders|export-inventory|users|set-role] ...`)
}

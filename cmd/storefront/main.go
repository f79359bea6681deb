// storefront is a small terminal front end for the 67foodstreet backend,
// wiring the client packages together the way a UI layer would.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/cart"
	"github.com/0xletuss/67foodstreet/catalog"
	"github.com/0xletuss/67foodstreet/chat"
	"github.com/0xletuss/67foodstreet/checkout"
	"github.com/0xletuss/67foodstreet/core"
	"github.com/0xletuss/67foodstreet/reservation"
	"github.com/0xletuss/67foodstreet/session"
	"github.com/0xletuss/67foodstreet/telemetry"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() error {
	fmt.Println(`usage: storefront <command>

commands:
  login     -role <customer|seller|admin> -user <email|username> -password <pw>
  logout
  products  [-search q] [-category c] [-sort name|price-low|price-high]
  cart      [-add productID] [-qty n]
  order     -type <Pickup|Delivery> [-address a] [-payment label]
  reserve   -product id -date YYYY-MM-DD [-qty n] [-people n] [-method pickup|delivery] [-address a] [-payment cash|gcash|card]
  chat      -room id [-send text] [-watch seconds]`)
	return nil
}

type app struct {
	cfg    *core.Config
	logger core.Logger
	client *api.Client
	store  session.Store
	gate   *session.Gate
}

func newApp() (*app, error) {
	cfg, err := core.NewConfig(core.WithSessionStore("file", ""))
	if err != nil {
		return nil, err
	}
	logger := core.NewStdLogger("storefront", cfg.Logging.Level, cfg.Logging.Format)

	client := api.NewClient(cfg, logger)
	if cfg.Telemetry.Enabled {
		provider, err := telemetry.NewOTelProvider(cfg.Telemetry.ServiceName)
		if err != nil {
			return nil, err
		}
		client.SetTelemetry(provider)
	}

	var store session.Store
	switch cfg.Session.Store {
	case "memory":
		store = session.NewMemoryStore()
	case "file":
		store = session.NewFileStore(cfg.Session.FilePath)
	case "redis":
		redisStore, err := session.NewRedisStore(cfg.Session.RedisURL, "", 24*time.Hour)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}

	nav := core.NavigatorFunc(func(path string) {
		fmt.Println("-> redirect:", path)
	})

	return &app{
		cfg:    cfg,
		logger: logger,
		client: client,
		store:  store,
		gate:   session.NewGate(store, client, nav, logger),
	}, nil
}

func run(args []string) error {
	if len(args) == 0 {
		return usage()
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	switch args[0] {
	case "login":
		return a.login(ctx, args[1:])
	case "logout":
		a.gate.Logout(ctx)
		return nil
	case "products":
		return a.products(ctx, args[1:])
	case "cart":
		return a.cart(ctx, args[1:])
	case "order":
		return a.order(ctx, args[1:])
	case "reserve":
		return a.reserve(ctx, args[1:])
	case "chat":
		return a.chat(ctx, args[1:])
	default:
		return usage()
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	roleFlag := fs.String("role", "customer", "account role")
	user := fs.String("user", "", "email (customer) or username (seller/admin)")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	role, err := session.ParseRole(*roleFlag)
	if err != nil {
		return err
	}
	if a.gate.RedirectIfAuthenticated(ctx) {
		return nil
	}

	req := api.LoginRequest{Password: *password}
	switch role {
	case session.RoleCustomer:
		req.Email = *user
	case session.RoleSeller, session.RoleAdmin:
		req.Username = *user
	}

	resp, err := a.client.Login(ctx, string(role), req)
	if err != nil {
		return err
	}
	s, err := session.FromAuthResponse(resp, role)
	if err != nil {
		return err
	}
	if err := a.gate.Establish(ctx, s); err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", s.DisplayName, s.Role)
	return nil
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "free-text filter")
	category := fs.String("category", "", "category filter")
	sortKey := fs.String("sort", "", "name|price-low|price-high")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.gate.Require(ctx, session.RoleCustomer); err != nil {
		return err
	}

	loader := catalog.NewLoader(a.client, a.logger)
	products, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	view := catalog.Apply(products, catalog.Query{
		Search:   *search,
		Category: *category,
		Sort:     catalog.SortKey(*sortKey),
	})
	for _, p := range view {
		fmt.Printf("#%-5d %-30s ₱%-10s stock=%d %s\n",
			p.ProductID, p.ProductName, p.UnitPrice.StringFixed(2), p.Stock, p.Category)
	}
	return nil
}

func (a *app) cart(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart", flag.ExitOnError)
	add := fs.Int("add", 0, "product id to add")
	qty := fs.Int("qty", 1, "quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.gate.Require(ctx, session.RoleCustomer); err != nil {
		return err
	}

	ctl := cart.NewController(a.client, a.logger)
	ctl.OnBadgeUpdate(func(count int) {
		fmt.Printf("cart badge: %d item(s)\n", count)
	})

	if *add != 0 {
		product, err := a.client.GetProduct(ctx, *add)
		if err != nil {
			return err
		}
		if err := ctl.AddItem(ctx, product, *qty); err != nil {
			return err
		}
	} else if _, err := ctl.Refresh(ctx); err != nil {
		return err
	}

	snapshot := ctl.Cart()
	for _, item := range snapshot.Items {
		fmt.Printf("%-30s x%-3d ₱%s\n", item.ProductName, item.Quantity,
			item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2))
	}
	summary := cart.Summarize(snapshot, api.OrderTypePickup,
		a.cfg.Checkout.DeliveryFeeAmount(), a.cfg.Checkout.TaxRateValue())
	fmt.Printf("subtotal ₱%s  tax (preview) ₱%s\n",
		summary.Subtotal.StringFixed(2), summary.Tax.StringFixed(2))
	return nil
}

func (a *app) order(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	orderType := fs.String("type", "Pickup", "Pickup or Delivery")
	address := fs.String("address", "", "delivery address")
	payment := fs.String("payment", "cash", "payment method label")
	notes := fs.String("notes", "", "order notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.gate.Require(ctx, session.RoleCustomer); err != nil {
		return err
	}

	ctl := cart.NewController(a.client, a.logger)
	snapshot, err := ctl.Refresh(ctx)
	if err != nil {
		return err
	}

	flow := checkout.NewFlow(a.client, a.cfg.Checkout.DeliveryFeeAmount(), core.NavigatorFunc(func(path string) {
		fmt.Println("-> redirect:", path)
	}), a.logger)

	placement, err := flow.PlaceOrder(ctx, snapshot, checkout.Input{
		OrderType:       api.OrderType(*orderType),
		DeliveryAddress: *address,
		Notes:           *notes,
		PaymentLabel:    *payment,
	})
	if err != nil {
		return err
	}
	fmt.Printf("order #%d placed, total ₱%s\n", placement.OrderID, placement.Total.StringFixed(2))
	return nil
}

func (a *app) reserve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reserve", flag.ExitOnError)
	productID := fs.Int("product", 0, "product id")
	date := fs.String("date", "", "reservation date, YYYY-MM-DD")
	qty := fs.Int("qty", 1, "quantity")
	people := fs.Int("people", 1, "number of people")
	method := fs.String("method", "pickup", "pickup or delivery")
	address := fs.String("address", "", "delivery address")
	payment := fs.String("payment", "cash", "cash, gcash or card")
	requests := fs.String("requests", "", "special requests")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.gate.Require(ctx, session.RoleCustomer); err != nil {
		return err
	}

	product, err := a.client.GetProduct(ctx, *productID)
	if err != nil {
		return err
	}
	when, err := time.ParseInLocation("2006-01-02", *date, time.Local)
	if err != nil {
		return fmt.Errorf("parsing -date: %w", err)
	}

	w := reservation.NewWizard(a.logger)
	if err := w.Open(product); err != nil {
		return err
	}
	if err := w.NextFromStep1(reservation.Step1Input{
		ReservationDate: when,
		NumberOfPeople:  *people,
		Quantity:        *qty,
		SpecialRequests: *requests,
	}); err != nil {
		return err
	}
	if err := w.NextFromStep2(reservation.Step2Input{
		Method:  reservation.DeliveryMethod(*method),
		Address: *address,
	}); err != nil {
		return err
	}
	if err := w.NextFromStep3(reservation.Step3Input{
		Method: reservation.PaymentMethod(*payment),
	}); err != nil {
		return err
	}

	c := w.Confirmation()
	fmt.Printf("%s x%d on %s for %d, %s via %s, total ₱%s\n",
		c.ProductName, c.Quantity, c.Date.Format("Jan 2 2006"), c.People,
		c.DeliveryMethod, c.PaymentMethod, c.Total.StringFixed(2))

	result, err := w.Submit(ctx, a.client)
	if err != nil {
		return err
	}
	fmt.Printf("reservation placed, order #%d\n", result.OrderID)
	if result.Partial != nil {
		fmt.Println("warning:", result.Partial.Error())
	}
	return nil
}

func (a *app) chat(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	roomID := fs.Int("room", 0, "chat room id")
	send := fs.String("send", "", "message to send")
	watch := fs.Int("watch", 0, "keep polling for this many seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.gate.Require(ctx, session.RoleCustomer); err != nil {
		return err
	}

	poller := chat.NewPoller(a.client, a.cfg, a.logger)
	if *roomID == 0 {
		rooms, err := poller.Rooms(ctx)
		if err != nil {
			return err
		}
		for _, r := range rooms {
			fmt.Printf("#%-5d %-25s unread=%d  %s\n", r.RoomID, r.SellerName, r.UnreadCount, r.LastMessage)
		}
		return nil
	}

	sub := poller.OpenRoom(ctx, *roomID, func(msgs []api.ChatMessage) {
		for _, m := range msgs {
			fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Format("15:04"), m.SenderType, m.Content)
		}
	})
	defer sub.Close()

	if *send != "" {
		if err := sub.Send(ctx, *send); err != nil {
			return err
		}
	}
	if *watch > 0 {
		time.Sleep(time.Duration(*watch) * time.Second)
	}
	return nil
}

// Command cartctl drives the cart synchronizer directly against the
// commerce API, keeping the session token in a local file so the same
// anonymous cart survives across invocations. This is the
// client-mediated counterpart of the cookie-based proxy in cmd/web.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"clinic-storefront/internal/cartsync"
	"clinic-storefront/internal/config"
	"clinic-storefront/internal/domain"
	"clinic-storefront/internal/storeapi"
)

const usage = `Usage: cartctl [flags] <command> [args]

Commands:
  show                    print the current cart
  add <product-id> [qty]  add a product (default quantity 1)
  update <key> <qty>      change a line's quantity
  remove <key>            remove a line
  coupon <code>           apply a coupon code
  uncoupon <code>         remove an applied coupon
`

func main() {
	_ = godotenv.Load()

	var (
		tokenFile string
		verbose   bool
	)
	cfg := config.FromEnv()
	flag.StringVar(&tokenFile, "token-file", cfg.TokenFile, "Path to the persisted cart session token")
	flag.BoolVar(&verbose, "v", false, "Log transport activity")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logWriter := io.Discard
	if verbose {
		logWriter = os.Stderr
	}
	logger := log.New(logWriter, "[cartctl] ", log.LstdFlags)

	client := storeapi.New(cfg.StoreAPIURL, cfg.UpstreamTimeout, logger)
	session := storeapi.NewSession(client, storeapi.NewFileTokenStore(tokenFile))
	store := cartsync.New(session, logger)

	ctx := context.Background()

	if err := run(ctx, store, args); err != nil {
		log.Fatalf("cartctl: %v", err)
	}

	if cart := store.Cart(); cart != nil {
		printCart(cart)
	} else {
		fmt.Println("cart not loaded")
	}
}

func run(ctx context.Context, store *cartsync.Store, args []string) error {
	switch cmd, rest := args[0], args[1:]; cmd {
	case "show":
		store.Refresh(ctx)
		return nil
	case "add":
		if len(rest) < 1 {
			return fmt.Errorf("add requires a product id")
		}
		id, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", rest[0])
		}
		qty := 1
		if len(rest) > 1 {
			if qty, err = strconv.Atoi(rest[1]); err != nil {
				return fmt.Errorf("invalid quantity %q", rest[1])
			}
		}
		return store.AddItem(ctx, id, qty)
	case "update":
		if len(rest) < 2 {
			return fmt.Errorf("update requires a line key and quantity")
		}
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", rest[1])
		}
		// The synchronizer never receives a quantity below 1.
		if qty < 1 {
			qty = 1
		}
		store.UpdateItem(ctx, rest[0], qty)
		return nil
	case "remove":
		if len(rest) < 1 {
			return fmt.Errorf("remove requires a line key")
		}
		store.RemoveItem(ctx, rest[0])
		return nil
	case "coupon":
		if len(rest) < 1 {
			return fmt.Errorf("coupon requires a code")
		}
		return store.ApplyCoupon(ctx, rest[0])
	case "uncoupon":
		if len(rest) < 1 {
			return fmt.Errorf("uncoupon requires a code")
		}
		return store.RemoveCoupon(ctx, rest[0])
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printCart(cart *domain.Cart) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tPRODUCT\tQTY\tSUBTOTAL\tTOTAL")
	for _, item := range cart.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", item.Key, item.ProductName, item.Quantity, item.LineSubtotal, item.LineTotal)
	}
	w.Flush()

	for _, coupon := range cart.AppliedCoupons {
		fmt.Printf("coupon %s: -%s\n", coupon.Code, coupon.DiscountAmount)
	}
	fmt.Printf("items: %d  subtotal: %s  shipping: %s  tax: %s  total: %s\n",
		cart.ItemCount, cart.Subtotal, cart.ShippingTotal, cart.TotalTax, cart.Total)
}

// Package shell runs an interactive storefront session on a line-oriented
// terminal.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/cart"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/checkout"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/relay"
	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/logger"
)

// maxQuantity is the largest quantity the quantity picker offers.
const maxQuantity = 10

// Customer-facing notices.
const (
	msgAdded         = "تمت إضافة المنتج إلى سلة التسوق"
	msgRemoved       = "تم حذف المنتج من السلة"
	msgWishAdded     = "تمت الإضافة إلى المفضلة"
	msgWishRemoved   = "تمت الإزالة من المفضلة"
	msgChooseVariant = "الرجاء اختيار المقاس واللون"
	msgNotFound      = "المنتج غير موجود"
	msgBusy          = "جاري إرسال الطلب"
	msgUnavailable   = "المتجر غير متاح حاليا، يرجى المحاولة لاحقا"
)

// Catalog is the read API the session browses.
type Catalog interface {
	List(ctx context.Context, f domain.Filter) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ListByBrand(ctx context.Context, brand string) ([]domain.Product, error)
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	Detail(ctx context.Context, id int) (*domain.ProductDetail, error)
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string, rest string) error
}

type usageError struct {
	usage string
}

func (e *usageError) Error() string { return "usage: " + e.usage }

// Session is one shopper: it owns a cart and a wishlist for its lifetime.
type Session struct {
	id        string
	catalog   Catalog
	cart      *cart.Store
	wishlist  *cart.Wishlist
	submitter *checkout.Submitter
	out       io.Writer
	logger    *slog.Logger
	commands  map[string]*command
	order     []string
}

// NewSession creates a session with an empty cart that checks out through r.
func NewSession(catalog Catalog, r relay.Relay, out io.Writer, log *slog.Logger) *Session {
	store := cart.NewStore()
	s := &Session{
		id:        uuid.NewString(),
		catalog:   catalog,
		cart:      store,
		wishlist:  cart.NewWishlist(),
		submitter: checkout.NewSubmitter(store, r, log),
		out:       out,
		logger:    log,
	}
	s.registerCommands()
	return s
}

// ID returns the session id sent to the catalog in X-Session-ID.
func (s *Session) ID() string { return s.id }

// Cart returns the session cart.
func (s *Session) Cart() *cart.Store { return s.cart }

// Wishlist returns the session wishlist.
func (s *Session) Wishlist() *cart.Wishlist { return s.wishlist }

func (s *Session) register(name string, c *command) {
	if s.commands == nil {
		s.commands = make(map[string]*command)
	}
	s.commands[name] = c
	s.order = append(s.order, name)
}

func (s *Session) registerCommands() {
	s.register("list", &command{usage: "list [category|all] [type|all]", help: "browse the catalog", run: s.list})
	s.register("category", &command{usage: "category <category>", help: "products of one category", run: s.category})
	s.register("brand", &command{usage: "brand <brand>", help: "products of one brand", run: s.brand})
	s.register("show", &command{usage: "show <id>", help: "product page", run: s.show})
	s.register("add", &command{usage: "add <id> <size> <color>", help: "add one pair to the cart", run: s.add})
	s.register("remove", &command{usage: "remove <id> <size> <color>", help: "remove a line item", run: s.remove})
	s.register("qty", &command{usage: "qty <id> <size> <color> <n>", help: "set a quantity (1 to 10)", run: s.quantity})
	s.register("cart", &command{usage: "cart", help: "show the cart", run: s.showCart})
	s.register("clear", &command{usage: "clear", help: "empty the cart", run: s.clear})
	s.register("wish", &command{usage: "wish <id>", help: "toggle a wishlist entry", run: s.wish})
	s.register("wishlist", &command{usage: "wishlist", help: "show the wishlist", run: s.showWishlist})
	s.register("checkout", &command{usage: "checkout <name>|<phone>|<address>|<city>", help: "send the order", run: s.checkout})
	s.register("help", &command{usage: "help", help: "this help", run: s.help})
}

// Run reads commands from in until quit, end of input or ctx is cancelled.
// Cancellation ends the session even while it waits for a line.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx = logger.WithSessionID(ctx, s.id)
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "session started")

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	lines, readErr := readLines(ctx, in)

	fmt.Fprintln(s.out, "type help for the list of commands")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, "> ")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return ctx.Err()
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if s.Exec(ctx, line) {
				return nil
			}
		}
	}
}

// readLines scans in on its own goroutine. The lines channel is closed at end
// of input or once ctx is done; a scan error is delivered on the second
// channel before the close.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// Exec runs one command line and reports whether the session should end.
// Command errors are written to the output.
func (s *Session) Exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	name, rest, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	rest = strings.TrimSpace(rest)

	if name == "quit" || name == "exit" {
		return true
	}

	cmd, ok := s.commands[name]
	if !ok {
		fmt.Fprintf(s.out, "unknown command %q, type help\n", name)
		return false
	}
	if err := cmd.run(ctx, strings.Fields(rest), rest); err != nil {
		s.report(ctx, err)
	}
	return false
}

func (s *Session) report(ctx context.Context, err error) {
	var ue *usageError
	var ve *checkout.ValidationError
	switch {
	case errors.As(err, &ue):
		fmt.Fprintln(s.out, ue.Error())
	case errors.As(err, &ve):
		fields := make([]string, 0, len(ve.Fields))
		for f := range ve.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(s.out, "  %s: %s\n", f, ve.Fields[f])
		}
	case errors.Is(err, apperrors.ErrNotFound):
		fmt.Fprintln(s.out, msgNotFound)
	case errors.Is(err, checkout.ErrSubmitInProgress):
		fmt.Fprintln(s.out, msgBusy)
	case errors.Is(err, apperrors.ErrServiceUnavail):
		s.logger.WarnContext(ctx, "catalog unavailable", slog.String("error", err.Error()))
		fmt.Fprintln(s.out, msgUnavailable)
	default:
		s.logger.ErrorContext(ctx, "command failed", slog.String("error", err.Error()))
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *Session) usage(name string) error {
	return &usageError{usage: s.commands[name].usage}
}

func parseID(v string) (int, bool) {
	id, err := strconv.Atoi(v)
	return id, err == nil
}

// ============================================================================
// Browsing
// ============================================================================

func (s *Session) list(ctx context.Context, args []string, _ string) error {
	if len(args) > 2 {
		return s.usage("list")
	}
	var f domain.Filter
	if len(args) > 0 {
		f.Category = args[0]
	}
	if len(args) > 1 {
		f.Type = args[1]
	}
	products, err := s.catalog.List(ctx, f)
	if err != nil {
		return err
	}
	RenderProducts(s.out, products, s.wishlist.Contains)
	return nil
}

func (s *Session) category(ctx context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return s.usage("category")
	}
	products, err := s.catalog.ListByCategory(ctx, args[0])
	if err != nil {
		return err
	}
	RenderProducts(s.out, products, s.wishlist.Contains)
	return nil
}

func (s *Session) brand(ctx context.Context, _ []string, rest string) error {
	if rest == "" {
		return s.usage("brand")
	}
	products, err := s.catalog.ListByBrand(ctx, rest)
	if err != nil {
		return err
	}
	RenderProducts(s.out, products, s.wishlist.Contains)
	return nil
}

func (s *Session) show(ctx context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return s.usage("show")
	}
	id, ok := parseID(args[0])
	if !ok {
		return s.usage("show")
	}
	d, err := s.catalog.Detail(ctx, id)
	if err != nil {
		return err
	}
	RenderDetail(s.out, d)
	return nil
}

// ============================================================================
// Cart
// ============================================================================

func (s *Session) add(ctx context.Context, args []string, _ string) error {
	if len(args) != 3 {
		if len(args) == 1 {
			fmt.Fprintln(s.out, msgChooseVariant)
		}
		return s.usage("add")
	}
	id, ok := parseID(args[0])
	if !ok {
		return s.usage("add")
	}
	p, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.InStock {
		fmt.Fprintln(s.out, labelSoldOut)
		return nil
	}
	size, color := args[1], args[2]
	if !p.HasSize(size) || !p.HasColor(color) {
		fmt.Fprintln(s.out, msgChooseVariant)
		return nil
	}

	s.cart.AddItem(*p, size, color)
	fmt.Fprintln(s.out, msgAdded)
	return nil
}

func (s *Session) remove(_ context.Context, args []string, _ string) error {
	if len(args) != 3 {
		return s.usage("remove")
	}
	id, ok := parseID(args[0])
	if !ok {
		return s.usage("remove")
	}
	before := s.cart.Len()
	s.cart.RemoveItem(id, args[1], args[2])
	if s.cart.Len() < before {
		fmt.Fprintln(s.out, msgRemoved)
	}
	return nil
}

func (s *Session) quantity(_ context.Context, args []string, _ string) error {
	if len(args) != 4 {
		return s.usage("qty")
	}
	id, ok := parseID(args[0])
	if !ok {
		return s.usage("qty")
	}
	n, err := strconv.Atoi(args[3])
	if err != nil {
		return s.usage("qty")
	}
	if n > maxQuantity {
		n = maxQuantity
	}
	if s.cart.UpdateQuantity(id, args[1], args[2], n) {
		RenderCart(s.out, s.cart.Snapshot())
	}
	return nil
}

func (s *Session) showCart(context.Context, []string, string) error {
	RenderCart(s.out, s.cart.Snapshot())
	return nil
}

func (s *Session) clear(context.Context, []string, string) error {
	s.cart.Clear()
	fmt.Fprintln(s.out, labelCartEmpty)
	return nil
}

// ============================================================================
// Wishlist
// ============================================================================

func (s *Session) wish(_ context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return s.usage("wish")
	}
	id, ok := parseID(args[0])
	if !ok {
		return s.usage("wish")
	}
	if s.wishlist.Toggle(id) {
		fmt.Fprintln(s.out, msgWishAdded)
	} else {
		fmt.Fprintln(s.out, msgWishRemoved)
	}
	return nil
}

func (s *Session) showWishlist(ctx context.Context, _ []string, _ string) error {
	var products []domain.Product
	for _, id := range s.wishlist.IDs() {
		p, err := s.catalog.GetByID(ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		products = append(products, *p)
	}
	RenderProducts(s.out, products, nil)
	return nil
}

// ============================================================================
// Checkout
// ============================================================================

func (s *Session) checkout(ctx context.Context, _ []string, rest string) error {
	parts := strings.Split(rest, "|")
	if len(parts) != 4 {
		return s.usage("checkout")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	notice, err := s.submitter.Submit(ctx, checkout.Customer{
		Name:    parts[0],
		Phone:   parts[1],
		Address: parts[2],
		City:    parts[3],
	})
	if notice.Title != "" {
		fmt.Fprintf(s.out, "%s: %s\n", notice.Title, notice.Description)
	}
	if err != nil && notice.Kind == checkout.NoticeError {
		s.logger.WarnContext(ctx, "checkout failed", slog.String("error", err.Error()))
		return nil
	}
	return err
}

func (s *Session) help(context.Context, []string, string) error {
	tw := newTabWriter(s.out)
	for _, name := range s.order {
		c := s.commands[name]
		fmt.Fprintf(tw, "  %s\t%s\n", c.usage, c.help)
	}
	fmt.Fprintf(tw, "  %s\t%s\n", "quit", "end the session")
	return tw.Flush()
}

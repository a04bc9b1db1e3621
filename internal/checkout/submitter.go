package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/cart"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/relay"
	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
)

// ErrSubmitInProgress is returned when Submit is called while a previous
// submission has not finished.
var ErrSubmitInProgress = errors.New("checkout: submission already in progress")

// State is the submission state of a Submitter.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// NoticeKind distinguishes success and error notices.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the customer-facing outcome of a submission.
type Notice struct {
	Kind        NoticeKind
	Title       string
	Description string
}

var (
	noticeSent = Notice{
		Kind:        NoticeSuccess,
		Title:       "تم الطلب بنجاح",
		Description: "تم استلام طلبك وسيتم التواصل معك قريباً",
	}
	noticeFailed = Notice{
		Kind:        NoticeError,
		Title:       "حدث خطأ",
		Description: "لم نتمكن من إرسال طلبك، يرجى المحاولة مرة أخرى",
	}
	noticeCartEmpty = Notice{
		Kind:        NoticeError,
		Title:       "السلة فارغة",
		Description: MsgCartEmpty,
	}
)

// Submitter sends the order held in one cart. The cart is cleared only after
// the relay accepted the message. Nothing is retried.
type Submitter struct {
	cart   *cart.Store
	relay  relay.Relay
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

// NewSubmitter creates a submitter for store.
func NewSubmitter(store *cart.Store, r relay.Relay, logger *slog.Logger) *Submitter {
	return &Submitter{cart: store, relay: r, logger: logger}
}

// State returns the current submission state.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Submitter) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return false
	}
	s.state = StateSubmitting
	return true
}

func (s *Submitter) end() {
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

// Submit validates customer, formats the cart and sends it.
//
// A *ValidationError is returned for invalid fields (with a zero Notice) and
// for an empty cart. A relay failure returns an error matching
// apperrors.ErrRelayFailed and leaves the cart untouched.
func (s *Submitter) Submit(ctx context.Context, customer Customer) (Notice, error) {
	if !s.begin() {
		return Notice{}, ErrSubmitInProgress
	}
	defer s.end()

	if err := customer.Validate(); err != nil {
		return Notice{}, err
	}

	snap := s.cart.Snapshot()
	if snap.Empty() {
		return noticeCartEmpty, &ValidationError{Fields: map[string]string{"cart": MsgCartEmpty}}
	}

	msg := FormatOrder(customer, snap)
	msg.Reference = uuid.NewString()

	if err := s.relay.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "order submission failed",
			slog.String("relay", s.relay.Name()),
			slog.String("reference", msg.Reference),
			slog.String("error", err.Error()),
		)
		if !errors.Is(err, apperrors.ErrRelayFailed) {
			err = apperrors.RelayFailed(s.relay.Name(), err)
		}
		return noticeFailed, err
	}

	s.logger.InfoContext(ctx, "order submitted",
		slog.String("relay", s.relay.Name()),
		slog.String("reference", msg.Reference),
		slog.Int("items", snap.Count),
		slog.String("total", snap.Summary.Total.String()),
	)
	s.cart.Clear()
	return noticeSent, nil
}

package checkout

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/cart"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/relay"
	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ============================================================================
// Mock relay
// ============================================================================

type mockRelay struct {
	mock.Mock
}

func (m *mockRelay) Name() string { return "mock" }

func (m *mockRelay) Send(ctx context.Context, msg relay.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func filledCart() *cart.Store {
	store := cart.NewStore()
	store.AddItem(shoe(1, "Nike Air", "100"), "42", "black")
	store.AddItem(shoe(1, "Nike Air", "100"), "42", "black")
	return store
}

// ============================================================================
// Submit
// ============================================================================

func TestSubmit_SuccessClearsCart(t *testing.T) {
	store := filledCart()
	r := new(mockRelay)
	r.On("Send", mock.Anything, mock.MatchedBy(func(msg relay.Message) bool {
		return msg.Reference != "" && msg.Contact == "0612345678" && msg.Name == "Ahmed Alami"
	})).Return(nil).Once()

	s := NewSubmitter(store, r, testLogger())
	notice, err := s.Submit(context.Background(), validCustomer())

	require.NoError(t, err)
	assert.Equal(t, NoticeSuccess, notice.Kind)
	assert.Equal(t, "تم الطلب بنجاح", notice.Title)
	assert.Equal(t, "تم استلام طلبك وسيتم التواصل معك قريباً", notice.Description)
	assert.Zero(t, store.Len())
	assert.Equal(t, StateIdle, s.State())
	r.AssertExpectations(t)
}

func TestSubmit_RelayFailureKeepsCart(t *testing.T) {
	store := filledCart()
	before := store.Snapshot()
	r := new(mockRelay)
	r.On("Send", mock.Anything, mock.Anything).
		Return(apperrors.RelayFailed("mock", errors.New("status 500"))).Once()

	s := NewSubmitter(store, r, testLogger())
	notice, err := s.Submit(context.Background(), validCustomer())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRelayFailed)
	assert.Equal(t, NoticeError, notice.Kind)
	assert.Equal(t, "حدث خطأ", notice.Title)
	assert.Equal(t, before, store.Snapshot())
	assert.Equal(t, StateIdle, s.State())
}

func TestSubmit_PlainRelayErrorIsWrapped(t *testing.T) {
	store := filledCart()
	r := new(mockRelay)
	r.On("Send", mock.Anything, mock.Anything).Return(context.DeadlineExceeded).Once()

	_, err := NewSubmitter(store, r, testLogger()).Submit(context.Background(), validCustomer())

	assert.ErrorIs(t, err, apperrors.ErrRelayFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, store.Count())
}

func TestSubmit_InvalidCustomerNeverSends(t *testing.T) {
	store := filledCart()
	r := new(mockRelay)

	c := validCustomer()
	c.Phone = "123"
	notice, err := NewSubmitter(store, r, testLogger()).Submit(context.Background(), c)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, MsgPhoneInvalid, ve.Fields["phone"])
	assert.Zero(t, notice)
	assert.Equal(t, 2, store.Count())
	r.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmit_EmptyCartRejected(t *testing.T) {
	r := new(mockRelay)

	notice, err := NewSubmitter(cart.NewStore(), r, testLogger()).Submit(context.Background(), validCustomer())

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, MsgCartEmpty, ve.Fields["cart"])
	assert.Equal(t, "السلة فارغة", notice.Title)
	r.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmit_ConcurrentSubmitRejected(t *testing.T) {
	store := filledCart()
	release := make(chan struct{})
	r := new(mockRelay)
	r.On("Send", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(nil).Once()

	s := NewSubmitter(store, r, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), validCustomer())
		done <- err
	}()

	require.Eventually(t, func() bool { return s.State() == StateSubmitting }, time.Second, 5*time.Millisecond)

	_, err := s.Submit(context.Background(), validCustomer())
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, s.State())
	assert.Zero(t, store.Len())
	r.AssertNumberOfCalls(t, "Send", 1)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
}

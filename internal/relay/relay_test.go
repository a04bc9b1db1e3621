package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/config"
	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/httpclient"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/kafka"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testMessage() Message {
	return Message{
		Reference: "ord-1",
		Name:      "Ahmed",
		Contact:   "0612345678",
		Body:      "طلب جديد",
	}
}

func newEmailJS(t *testing.T, url string) *EmailJS {
	t.Helper()
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("emailjs-"+t.Name()),
		testLogger(),
	)
	return NewEmailJS(EmailJSConfig{
		Endpoint:   url,
		ServiceID:  "service_x",
		TemplateID: "template_y",
		UserID:     "user_z",
	}, client, testLogger())
}

// ============================================================================
// EmailJS
// ============================================================================

func TestEmailJS_SendsPayload(t *testing.T) {
	var got map[string]any
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	err := newEmailJS(t, srv.URL).Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "service_x", got["service_id"])
	assert.Equal(t, "template_y", got["template_id"])
	assert.Equal(t, "user_z", got["user_id"])
	assert.Equal(t, map[string]any{
		"name":    "Ahmed",
		"email":   "0612345678",
		"message": "طلب جديد",
	}, got["template_params"])
}

func TestEmailJS_NonSuccessIsRelayFailure(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("The user ID is invalid"))
		}))

		err := newEmailJS(t, srv.URL).Send(context.Background(), testMessage())
		srv.Close()

		require.Error(t, err, "status %d", status)
		assert.ErrorIs(t, err, apperrors.ErrRelayFailed)
		assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))
	}
}

func TestEmailJS_PostIsNotRetried(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := newEmailJS(t, srv.URL).Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestEmailJS_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newEmailJS(t, url).Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, apperrors.ErrRelayFailed)
}

func TestEmailJS_EmptyBody(t *testing.T) {
	err := newEmailJS(t, "http://127.0.0.1:1").Send(context.Background(), Message{Name: "x"})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

// ============================================================================
// Kafka
// ============================================================================

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafkago.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafka_PublishesOrderEvent(t *testing.T) {
	w := &fakeWriter{}
	producer := kafka.NewProducerWithWriter(w, []string{"localhost:9092"}, testLogger())
	r := NewKafka(producer, "shoestore.order.submitted")

	ctx := logger.WithCorrelationID(context.Background(), "corr-1")
	ctx = logger.WithSessionID(ctx, "sess-1")
	require.NoError(t, r.Send(ctx, testMessage()))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "shoestore.order.submitted", msg.Topic)
	assert.Equal(t, []byte("ord-1"), msg.Key)

	event, err := kafka.UnmarshalEvent(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, EventOrderSubmitted, event.EventType)
	assert.Equal(t, "ord-1", event.AggregateID)
	assert.Equal(t, "corr-1", event.CorrelationID)
	assert.Equal(t, "sess-1", event.Metadata["session_id"])

	var data OrderSubmitted
	require.NoError(t, event.UnmarshalData(&data))
	assert.Equal(t, OrderSubmitted{
		Reference: "ord-1",
		Name:      "Ahmed",
		Contact:   "0612345678",
		Message:   "طلب جديد",
	}, data)
}

func TestKafka_PublishFailure(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	producer := kafka.NewProducerWithWriter(w, nil, testLogger())

	err := NewKafka(producer, "orders").Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRelayFailed)
	assert.Contains(t, err.Error(), "kafka")
}

// ============================================================================
// Log, instrumentation, factory
// ============================================================================

func TestLog_Succeeds(t *testing.T) {
	r := NewLog(testLogger())
	assert.Equal(t, "log", r.Name())
	assert.NoError(t, r.Send(context.Background(), testMessage()))
	assert.ErrorIs(t, r.Send(context.Background(), Message{}), ErrEmptyMessage)
}

func TestInstrument_CountsOutcomes(t *testing.T) {
	r := Instrument(NewLog(testLogger()))
	success := testutil.ToFloat64(messagesTotal.WithLabelValues("log", outcomeSuccess))
	failure := testutil.ToFloat64(messagesTotal.WithLabelValues("log", outcomeFailure))

	require.NoError(t, r.Send(context.Background(), testMessage()))
	require.Error(t, r.Send(context.Background(), Message{}))

	assert.Equal(t, success+1, testutil.ToFloat64(messagesTotal.WithLabelValues("log", outcomeSuccess)))
	assert.Equal(t, failure+1, testutil.ToFloat64(messagesTotal.WithLabelValues("log", outcomeFailure)))
	assert.Equal(t, "log", r.Name())
}

func TestInstrument_Idempotent(t *testing.T) {
	r := Instrument(NewLog(testLogger()))
	assert.Equal(t, r, Instrument(r))
}

func TestNew_KafkaUnreachableWarns(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg := &config.Storefront{
		RelayDriver:        config.RelayKafka,
		HTTPTimeoutSeconds: 1,
		KafkaBrokers:       []string{"127.0.0.1:1"},
		OrderTopic:         "orders",
	}

	r, closeFn, err := New(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	assert.Equal(t, "kafka", r.Name())
	assert.Contains(t, buf.String(), "kafka brokers unreachable")
	assert.Contains(t, buf.String(), "127.0.0.1:1")
}

func TestNew_SelectsDriver(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{config.RelayLog, "log"},
		{config.RelayEmailJS, "emailjs"},
		{config.RelayKafka, "kafka"},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := &config.Storefront{
				RelayDriver:        tt.driver,
				HTTPTimeoutSeconds: 5,
				EmailJSEndpoint:    "http://127.0.0.1:1",
				KafkaBrokers:       []string{"127.0.0.1:1"},
				OrderTopic:         "orders",
			}
			r, closeFn, err := New(cfg, testLogger())
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Name())
			assert.NoError(t, closeFn())
		})
	}

	_, _, err := New(&config.Storefront{RelayDriver: "smtp"}, testLogger())
	assert.Error(t, err)
}

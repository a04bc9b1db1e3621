package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsJSON = `[
  {"id":1,"name":"Air Max","price":100,"brand":"Nike","category":"men","type":"رياضي","image":"air.jpg","sizes":[41,42],"colors":["black"],"rating":4.5,"reviews":10,"inStock":true},
  {"id":2,"name":"Fresh Foam","price":450,"brand":"New Balance","category":"women","type":"رياضي","image":"ff.jpg","sizes":["38"],"colors":["pink"],"rating":4,"reviews":3,"inStock":true}
]`

func newCatalogStub(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(productsJSON))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(input), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProductsCommand(t *testing.T) {
	srv, requests := newCatalogStub(t)
	t.Setenv("CATALOG_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "", "products", "men", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "Air Max")
	assert.Equal(t, []string{"/products?category=men"}, *requests)
}

func TestProductsCommand_Brand(t *testing.T) {
	srv, requests := newCatalogStub(t)
	t.Setenv("CATALOG_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")

	_, err := execute(t, "", "products", "--brand", "New Balance")
	require.NoError(t, err)
	assert.Equal(t, []string{"/products/brand/New%20Balance"}, *requests)
}

func TestShopCommand(t *testing.T) {
	srv, _ := newCatalogStub(t)
	t.Setenv("CATALOG_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("RELAY_DRIVER", "log")

	out, err := execute(t, "list\ncart\nquit\n", "shop")
	require.NoError(t, err)
	assert.Contains(t, out, "Fresh Foam")
	assert.Contains(t, out, "السلة فارغة")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("CATALOG_URL", "not a url")

	_, err := execute(t, "", "products")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_URL")
}

func TestUnknownRelay(t *testing.T) {
	srv, _ := newCatalogStub(t)
	t.Setenv("CATALOG_URL", srv.URL)
	t.Setenv("RELAY_DRIVER", "pigeon")

	_, err := execute(t, "", "shop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RELAY_DRIVER")
}

func TestShopCommand_Interrupted(t *testing.T) {
	srv, _ := newCatalogStub(t)
	t.Setenv("CATALOG_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("RELAY_DRIVER", "log")

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	var out, errOut bytes.Buffer
	cmd := newRootCmd(pr, &out, &errOut)
	cmd.SetArgs([]string{"shop"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("shop did not stop after interrupt")
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TucanHome/tucan-chat-api/models"
)

func productsApp(h *ProductsHandler) *fiber.App {
	app := fiber.New()
	app.Get("/api/products", h.Handle)
	return app
}

func TestProductsHandlerReturnsMatches(t *testing.T) {
	searcher := &fakeSearcher{products: []models.Product{
		{ID: "p1", Name: "Pendente Aurora", Price: 389},
	}}
	app := productsApp(&ProductsHandler{Catalog: searcher, DefaultLimit: 6})

	req, _ := http.NewRequest(http.MethodGet, "/api/products?term=pendente&limit=3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "pendente", searcher.gotTerm)
	assert.Equal(t, 3, searcher.gotLimit)

	body, _ := io.ReadAll(resp.Body)
	var out struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Pendente Aurora", out.Products[0].Name)
}

func TestProductsHandlerDefaultsLimit(t *testing.T) {
	searcher := &fakeSearcher{products: []models.Product{}}
	app := productsApp(&ProductsHandler{Catalog: searcher, DefaultLimit: 6})

	req, _ := http.NewRequest(http.MethodGet, "/api/products?term=vaso", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 6, searcher.gotLimit)
}

func TestProductsHandlerSearchFailure(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("mongo down")}
	app := productsApp(&ProductsHandler{Catalog: searcher, DefaultLimit: 6})

	req, _ := http.NewRequest(http.MethodGet, "/api/products?term=abajur", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out["error"])
}

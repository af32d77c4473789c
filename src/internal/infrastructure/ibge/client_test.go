package ibge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIBGEServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/localidades/estados", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nome", r.URL.Query().Get("orderBy"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":33,"sigla":"RJ","nome":"Rio de Janeiro"},{"id":35,"sigla":"SP","nome":"São Paulo"}]`))
	})
	mux.HandleFunc("GET /api/v1/localidades/estados/{uf}/municipios", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("uf") != "SP" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`[{"id":3509502,"nome":"Campinas"},{"id":3550308,"nome":"São Paulo"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListStates(t *testing.T) {
	srv := newIBGEServer(t)
	client := NewClient(srv.URL+"/", nil)

	states, err := client.ListStates(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"RJ", "SP"}, states)
}

func TestClient_ListCities(t *testing.T) {
	srv := newIBGEServer(t)
	client := NewClient(srv.URL, srv.Client())

	cities, err := client.ListCities(context.Background(), "SP")

	require.NoError(t, err)
	assert.Equal(t, []string{"Campinas", "São Paulo"}, cities)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	srv := newIBGEServer(t)
	client := NewClient(srv.URL, srv.Client())

	_, err := client.ListCities(context.Background(), "ZZ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).ListStates(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestClient_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL, nil).ListStates(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

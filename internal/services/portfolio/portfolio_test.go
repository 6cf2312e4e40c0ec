package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmccarthy/riskfolio/internal/clients/axioma"
	"github.com/bobmccarthy/riskfolio/internal/common"
	"github.com/bobmccarthy/riskfolio/internal/models"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func testPosition(clientID string) models.Position {
	return models.Position{
		ClientID:    clientID,
		Identifiers: models.Identifiers{}.Add(models.IdentifierTicker, "AAPL"),
		Quantity:    models.NewQuantity(decimal.NewFromInt(100), models.ScaleNumberOfInstruments),
	}
}

// newTestPortfolio builds a facade against an httptest server driven by
// handler. requests records "METHOD path" in arrival order.
func newTestPortfolio(t *testing.T, handler http.HandlerFunc) (*Portfolio, *[]string) {
	t.Helper()

	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := axioma.NewClient("test-key", axioma.WithBaseURL(srv.URL))
	p := New(client, common.NewSilentLogger(), "Test Portfolio", models.Date{})
	p.SetDate(mustDate(t, "2025-06-25"))
	return p, &requests
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeDuplicate(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"message": "Duplicate Resource"})
}

func TestSave_CreatesNew(t *testing.T) {
	p, requests := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/api/v1/portfolios/42")
		w.WriteHeader(http.StatusCreated)
	})

	id, err := p.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(42), id)
	assert.Equal(t, []string{"POST /portfolios"}, *requests)

	remoteID, resolved := p.RemoteID()
	assert.True(t, resolved)
	assert.Equal(t, int64(42), remoteID)
}

func TestSave_ConflictFallsBackToUpdate(t *testing.T) {
	p, requests := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			writeDuplicate(w)
		case r.Method == http.MethodGet:
			assert.Equal(t, "name eq 'Test Portfolio'", r.URL.Query().Get("$filter"))
			writeJSON(w, models.Page{Items: []models.Record{{ID: 42, Name: "Test Portfolio"}}})
		case r.Method == http.MethodPut:
			assert.Equal(t, "/portfolios/42", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}
	})

	id, err := p.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(42), id)
	assert.Equal(t, []string{"POST /portfolios", "GET /portfolios", "PUT /portfolios/42"}, *requests)
}

func TestSave_IdempotentOnNaturalKey(t *testing.T) {
	p, _ := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/portfolios/42")
		w.WriteHeader(http.StatusCreated)
	})

	first, err := p.Save(context.Background())
	require.NoError(t, err)

	// Second save against a server that now reports the duplicate.
	second, requests2 := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			writeDuplicate(w)
		case http.MethodGet:
			writeJSON(w, models.Page{Items: []models.Record{{ID: 42, Name: "Test Portfolio"}}})
		case http.MethodPut:
			w.WriteHeader(http.StatusOK)
		}
	})

	secondID, err := second.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, secondID, "upserting the same natural key must yield the same identity")
	assert.Equal(t, []string{"POST /portfolios", "GET /portfolios", "PUT /portfolios/42"}, *requests2,
		"second upsert is one create plus one conflict-triggered update, not two creates")
}

func TestSave_OtherFailurePropagates(t *testing.T) {
	p, _ := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]string{"message": "Validation Failed"})
	})

	_, err := p.Save(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Test Portfolio")

	_, resolved := p.RemoteID()
	assert.False(t, resolved, "failed save must leave local state unchanged")
}

func TestAddRemovePositions_KeepsSortedInvariant(t *testing.T) {
	p, _ := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {})

	p.AddPosition(testPosition("003"))
	p.AddPosition(testPosition("001"))
	p.AddPosition(testPosition("002"))
	p.RemovePosition("002")
	p.AddPosition(testPosition("000"))
	p.RemovePosition("absent") // no-op

	var got []string
	for _, position := range p.Positions() {
		got = append(got, position.ClientID)
	}
	assert.Equal(t, []string{"000", "001", "003"}, got)
}

func TestChunkPositions_Boundaries(t *testing.T) {
	build := func(n int) []models.Position {
		positions := make([]models.Position, n)
		for i := range positions {
			positions[i] = testPosition(fmt.Sprintf("%06d", i))
		}
		return positions
	}

	assert.Nil(t, chunkPositions(nil, 10000))

	chunks := chunkPositions(build(10000), 10000)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 10000)

	chunks = chunkPositions(build(10001), 10000)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 10000)
	assert.Len(t, chunks[1], 1)
}

func TestReplacePositions_Success(t *testing.T) {
	var patches int
	p, requests := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Location", "/portfolios/42")
			w.WriteHeader(http.StatusCreated)
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		case http.MethodPatch:
			patches++
			w.WriteHeader(http.StatusOK)
		}
	})

	p.SetPositions([]models.Position{testPosition("001"), testPosition("002")})

	require.True(t, p.ReplacePositions(context.Background()))

	assert.Equal(t, 1, patches)
	assert.Equal(t, []string{
		"POST /portfolios", // cascading save for the missing identity
		"DELETE /portfolios/42/positions/2025-06-25",
		"PATCH /portfolios/42/positions/2025-06-25",
	}, *requests)
}

func TestReplacePositions_DeleteFailureAbortsBeforeWrites(t *testing.T) {
	var patches int
	p, _ := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Location", "/portfolios/42")
			w.WriteHeader(http.StatusCreated)
		case http.MethodDelete:
			w.WriteHeader(http.StatusInternalServerError)
		case http.MethodPatch:
			patches++
		}
	})

	p.SetPositions([]models.Position{testPosition("001")})

	assert.False(t, p.ReplacePositions(context.Background()))
	assert.Equal(t, 0, patches, "no chunk may be written after a failed delete")
}

func TestReplacePositions_PartialFailureStopsAtFailingChunk(t *testing.T) {
	var patches int
	p, _ := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Location", "/portfolios/42")
			w.WriteHeader(http.StatusCreated)
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		case http.MethodPatch:
			patches++
			if patches == 2 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	})

	p.SetChunkSize(1) // three positions, three chunks
	p.SetPositions([]models.Position{testPosition("001"), testPosition("002"), testPosition("003")})

	assert.False(t, p.ReplacePositions(context.Background()))
	assert.Equal(t, 2, patches, "chunk 3 must never be attempted after chunk 2 fails")
}

func TestReplacePositions_MissingDateIsPrecondition(t *testing.T) {
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method)
	}))
	defer srv.Close()

	client := axioma.NewClient("test-key", axioma.WithBaseURL(srv.URL))
	p := New(client, common.NewSilentLogger(), "Test Portfolio", models.Date{})

	assert.False(t, p.ReplacePositions(context.Background()))
	assert.Empty(t, requests, "precondition failures happen before any remote call")
}

func TestFetchPositions_ReplacesLocalStateSorted(t *testing.T) {
	p, _ := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Location", "/portfolios/42")
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			writeJSON(w, models.PositionsPage{
				Currency: "USD",
				Items: []models.PositionPayload{
					testPosition("002").Payload(),
					testPosition("001").Payload(),
				},
			})
		}
	})

	p.AddPosition(testPosition("999")) // replaced by the fetch

	count, err := p.FetchPositions(context.Background(), mustDate(t, "2025-06-25"))
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	require.Len(t, p.Positions(), 2)
	assert.Equal(t, "001", p.Positions()[0].ClientID)
	assert.Equal(t, "002", p.Positions()[1].ClientID)
	assert.Equal(t, "USD", p.Currency())
}

func TestFetchPositions_FailureLeavesLocalStateUnchanged(t *testing.T) {
	p, _ := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Location", "/portfolios/42")
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	p.AddPosition(testPosition("001"))

	_, err := p.FetchPositions(context.Background(), mustDate(t, "2025-06-25"))
	require.Error(t, err)

	require.Len(t, p.Positions(), 1)
	assert.Equal(t, "001", p.Positions()[0].ClientID)
}

func TestPositionDates_RestartableAndUncached(t *testing.T) {
	var listCalls int
	p, _ := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Location", "/portfolios/42")
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			listCalls++
			writeJSON(w, models.PositionDatesPage{Items: []models.PositionDateRecord{
				{Date: models.NewDate(2025, 6, 24), PositionCount: 10},
				{Date: models.NewDate(2025, 6, 25), PositionCount: 12},
			}})
		}
	})

	dates := p.PositionDates(context.Background())

	var first []string
	for record, err := range dates {
		require.NoError(t, err)
		first = append(first, record.Date.String())
	}
	assert.Equal(t, []string{"2025-06-24", "2025-06-25"}, first)

	// Restarting the sequence re-queries the service.
	for range dates {
		break
	}
	assert.Equal(t, 2, listCalls)
}

func TestSetValuation_CachesAndDateChangeInvalidates(t *testing.T) {
	p, _ := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Location", "/portfolios/42")
			w.WriteHeader(http.StatusCreated)
		case http.MethodPut:
			assert.Equal(t, "/portfolios/42/valuations/2025-06-25", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}
	})

	aum := decimal.NewFromInt(1000000)
	net := decimal.NewFromInt(990000)
	valuation := models.Valuation{
		AUM:      &aum,
		Scale:    models.ScaleMarketValue,
		NetValue: &net,
	}

	require.NoError(t, p.SetValuation(context.Background(), valuation, mustDate(t, "2025-06-25")))
	require.NotNil(t, p.Valuation())
	assert.True(t, p.Valuation().AUM.Equal(aum))

	p.SetDate(mustDate(t, "2025-07-01"))
	assert.Nil(t, p.Valuation(), "changing the as-of date invalidates the cached valuation")
}

func TestSetValuation_RejectsMissingMandatoryFields(t *testing.T) {
	p, requests := newTestPortfolio(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})

	aum := decimal.NewFromInt(1000000)
	net := decimal.NewFromInt(990000)
	asOf := mustDate(t, "2025-06-25")

	err := p.SetValuation(context.Background(), models.Valuation{Scale: models.ScaleMarketValue, NetValue: &net}, asOf)
	require.ErrorIs(t, err, models.ErrIncompleteValuation)

	err = p.SetValuation(context.Background(), models.Valuation{AUM: &aum, Scale: models.ScaleMarketValue}, asOf)
	require.ErrorIs(t, err, models.ErrIncompleteValuation)

	err = p.SetValuation(context.Background(), models.Valuation{AUM: &aum, NetValue: &net}, asOf)
	require.ErrorIs(t, err, models.ErrIncompleteValuation)

	assert.Empty(t, *requests)
	assert.Nil(t, p.Valuation())
}

func TestListAll_BuildsResolvedFacades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Page{Items: []models.Record{
			{ID: 1, Name: "Portfolio 1", LongName: "First Portfolio", DefaultCurrency: "USD"},
			{ID: 2, Name: "Portfolio 2", LongName: "Second Portfolio"},
		}})
	}))
	defer srv.Close()

	client := axioma.NewClient("test-key", axioma.WithBaseURL(srv.URL))
	portfolios, err := ListAll(context.Background(), client, common.NewSilentLogger())
	require.NoError(t, err)

	require.Len(t, portfolios, 2)
	assert.Equal(t, "Portfolio 1", portfolios[0].Name())
	assert.Equal(t, "First Portfolio", portfolios[0].Description())
	assert.Equal(t, "USD", portfolios[0].Currency())

	id, resolved := portfolios[0].RemoteID()
	assert.True(t, resolved)
	assert.Equal(t, int64(1), id)
}

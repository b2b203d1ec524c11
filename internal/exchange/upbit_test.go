package exchange

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("ak", "sk", "day")
	c.BaseURL = srv.URL
	return c
}

func TestMarkets_FiltersByQuote(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/market/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"market":"KRW-BTC"},{"market":"BTC-ETH"},{"market":"KRW-ETH"}]`))
	})
	markets, err := c.Markets("KRW")
	if err != nil {
		t.Fatal(err)
	}
	if len(markets) != 2 || markets[0] != "KRW-BTC" || markets[1] != "KRW-ETH" {
		t.Errorf("unexpected markets: %v", markets)
	}
}

func TestCandles_ChronologicalOrder(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/candles/days" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("market") != "KRW-BTC" {
			t.Errorf("unexpected market param %q", r.URL.Query().Get("market"))
		}
		// Upbit serves newest first.
		w.Write([]byte(`[
			{"market":"KRW-BTC","candle_date_time_utc":"2024-03-03T00:00:00","opening_price":3,"high_price":3,"low_price":3,"trade_price":3,"candle_acc_trade_volume":1},
			{"market":"KRW-BTC","candle_date_time_utc":"2024-03-02T00:00:00","opening_price":2,"high_price":2,"low_price":2,"trade_price":2,"candle_acc_trade_volume":1},
			{"market":"KRW-BTC","candle_date_time_utc":"2024-03-01T00:00:00","opening_price":1,"high_price":1,"low_price":1,"trade_price":1,"candle_acc_trade_volume":1}
		]`))
	})
	candles, err := c.Candles("KRW-BTC", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(candles) != 3 {
		t.Fatalf("got %d candles, want 3", len(candles))
	}
	if candles[0].Close != 1 || candles[2].Close != 3 {
		t.Errorf("candles not chronological: %v", candles)
	}
}

func TestBestAsk(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"market":"KRW-BTC","orderbook_units":[{"ask_price":50100,"bid_price":50000}]}]`))
	})
	ask, err := c.BestAsk("KRW-BTC")
	if err != nil {
		t.Fatal(err)
	}
	if ask != 50100 {
		t.Errorf("ask = %v, want 50100", ask)
	}
}

func TestBalance_AuthAndLookup(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			t.Errorf("missing bearer token, got %q", auth)
		}
		w.Write([]byte(`[{"currency":"KRW","balance":"10000.5","avg_buy_price":"0"},{"currency":"BTC","balance":"0.25","avg_buy_price":"41000000"}]`))
	})
	bal, err := c.Balance("BTC")
	if err != nil {
		t.Fatal(err)
	}
	if bal != 0.25 {
		t.Errorf("balance = %v, want 0.25", bal)
	}
	missing, err := c.Balance("DOGE")
	if err != nil {
		t.Fatal(err)
	}
	if missing != 0 {
		t.Errorf("unowned currency balance = %v, want 0", missing)
	}
}

func TestBuyMarket_OrderParams(t *testing.T) {
	var got url.Values
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got, _ = url.ParseQuery(string(body))
		w.Write([]byte(`{"uuid":"abc","market":"KRW-BTC","side":"bid","price":"5000","volume":"","created_at":"2024-03-01T00:00:10+09:00"}`))
	})
	receipt, err := c.BuyMarket("KRW-BTC", 5000)
	if err != nil {
		t.Fatal(err)
	}
	if got.Get("side") != "bid" || got.Get("ord_type") != "price" || got.Get("price") != "5000" {
		t.Errorf("unexpected order params: %v", got)
	}
	if receipt.UUID != "abc" || receipt.Price != 5000 {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
}

func TestSellMarket_OrderParams(t *testing.T) {
	var got url.Values
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got, _ = url.ParseQuery(string(body))
		w.Write([]byte(`{"uuid":"def","market":"KRW-BTC","side":"ask","price":"","volume":"0.25","created_at":"2024-03-01T00:00:10+09:00"}`))
	})
	if _, err := c.SellMarket("KRW-BTC", 0.25); err != nil {
		t.Fatal(err)
	}
	if got.Get("side") != "ask" || got.Get("ord_type") != "market" || got.Get("volume") != "0.25" {
		t.Errorf("unexpected order params: %v", got)
	}
}

func TestDo_ErrorStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"too many requests"}}`))
	})
	if _, err := c.Markets("KRW"); err == nil {
		t.Error("expected error for non-2xx status")
	}
}

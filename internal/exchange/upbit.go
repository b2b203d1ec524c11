package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"CoinSentinel/internal/model"
)

const defaultBaseURL = "https://api.upbit.com"

// Client talks to the Upbit REST API. Quotation endpoints are public;
// account and order endpoints are authenticated per request.
type Client struct {
	BaseURL   string
	AccessKey string
	SecretKey string
	Interval  string // candle interval: day, week, month
	Client    *http.Client
}

// NewClient creates an Upbit client for the given credentials.
func NewClient(accessKey, secretKey, interval string) *Client {
	if interval == "" {
		interval = "day"
	}
	return &Client{
		BaseURL:   defaultBaseURL,
		AccessKey: accessKey,
		SecretKey: secretKey,
		Interval:  interval,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// upbitCandle is the JSON shape of Upbit's candle endpoints.
type upbitCandle struct {
	Market       string  `json:"market"`
	DateTimeUTC  string  `json:"candle_date_time_utc"`
	OpeningPrice float64 `json:"opening_price"`
	HighPrice    float64 `json:"high_price"`
	LowPrice     float64 `json:"low_price"`
	TradePrice   float64 `json:"trade_price"`
	AccVolume    float64 `json:"candle_acc_trade_volume"`
}

type upbitMarket struct {
	Market string `json:"market"`
}

type upbitAccount struct {
	Currency    string `json:"currency"`
	Balance     string `json:"balance"`
	AvgBuyPrice string `json:"avg_buy_price"`
}

type upbitOrderbook struct {
	Market string `json:"market"`
	Units  []struct {
		AskPrice float64 `json:"ask_price"`
		BidPrice float64 `json:"bid_price"`
	} `json:"orderbook_units"`
}

type upbitOrder struct {
	UUID      string `json:"uuid"`
	Market    string `json:"market"`
	Side      string `json:"side"`
	Price     string `json:"price"`
	Volume    string `json:"volume"`
	CreatedAt string `json:"created_at"`
}

// Markets lists all market codes quoted in the given currency, in the
// exchange's listing order.
func (c *Client) Markets(quote string) ([]string, error) {
	var all []upbitMarket
	if err := c.getPublic("/v1/market/all", nil, &all); err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	prefix := quote + "-"
	markets := make([]string, 0, len(all))
	for _, m := range all {
		if strings.HasPrefix(m.Market, prefix) {
			markets = append(markets, m.Market)
		}
	}
	return markets, nil
}

// Candles fetches the most recent count candles for the market at the
// client's configured interval, returned oldest-first.
func (c *Client) Candles(market string, count int) ([]model.Candle, error) {
	params := url.Values{}
	params.Set("market", market)
	params.Set("count", strconv.Itoa(count))

	var raw []upbitCandle
	if err := c.getPublic("/v1/candles/"+intervalPath(c.Interval), params, &raw); err != nil {
		return nil, fmt.Errorf("fetch candles for %s: %w", market, err)
	}

	candles := make([]model.Candle, len(raw))
	for i, u := range raw {
		ts, err := time.Parse("2006-01-02T15:04:05", u.DateTimeUTC)
		if err != nil {
			return nil, fmt.Errorf("parse candle time %q: %w", u.DateTimeUTC, err)
		}
		candles[i] = model.Candle{
			Time:   ts.UTC(),
			Open:   u.OpeningPrice,
			High:   u.HighPrice,
			Low:    u.LowPrice,
			Close:  u.TradePrice,
			Volume: u.AccVolume,
		}
	}
	// Upbit returns newest first; ensure chronological order.
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	return candles, nil
}

// BestAsk returns the lowest ask price from the market's order book.
func (c *Client) BestAsk(market string) (float64, error) {
	params := url.Values{}
	params.Set("markets", market)

	var books []upbitOrderbook
	if err := c.getPublic("/v1/orderbook", params, &books); err != nil {
		return 0, fmt.Errorf("fetch orderbook for %s: %w", market, err)
	}
	if len(books) == 0 || len(books[0].Units) == 0 {
		return 0, fmt.Errorf("empty orderbook for %s", market)
	}
	return books[0].Units[0].AskPrice, nil
}

// Balance returns the owned amount of a currency, zero when the account
// holds none of it.
func (c *Client) Balance(currency string) (float64, error) {
	var accounts []upbitAccount
	if err := c.doPrivate(http.MethodGet, "/v1/accounts", nil, &accounts); err != nil {
		return 0, fmt.Errorf("fetch accounts: %w", err)
	}
	for _, a := range accounts {
		if a.Currency == currency {
			bal, err := strconv.ParseFloat(a.Balance, 64)
			if err != nil {
				return 0, fmt.Errorf("parse balance %q: %w", a.Balance, err)
			}
			return bal, nil
		}
	}
	return 0, nil
}

// BuyMarket places a market buy spending the given notional amount of the
// quote currency.
func (c *Client) BuyMarket(market string, notional float64) (*model.OrderReceipt, error) {
	params := url.Values{}
	params.Set("market", market)
	params.Set("side", "bid")
	params.Set("ord_type", "price")
	params.Set("price", strconv.FormatFloat(notional, 'f', -1, 64))
	return c.placeOrder(params)
}

// SellMarket places a market sell of the given base-currency quantity.
func (c *Client) SellMarket(market string, quantity float64) (*model.OrderReceipt, error) {
	params := url.Values{}
	params.Set("market", market)
	params.Set("side", "ask")
	params.Set("ord_type", "market")
	params.Set("volume", strconv.FormatFloat(quantity, 'f', -1, 64))
	return c.placeOrder(params)
}

func (c *Client) placeOrder(params url.Values) (*model.OrderReceipt, error) {
	var order upbitOrder
	if err := c.doPrivate(http.MethodPost, "/v1/orders", params, &order); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	price, _ := strconv.ParseFloat(order.Price, 64)
	volume, _ := strconv.ParseFloat(order.Volume, 64)
	return &model.OrderReceipt{
		UUID:      order.UUID,
		Market:    order.Market,
		Side:      order.Side,
		Price:     price,
		Volume:    volume,
		CreatedAt: order.CreatedAt,
	}, nil
}

func (c *Client) getPublic(path string, params url.Values, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) doPrivate(method, path string, params url.Values, out interface{}) error {
	token, err := authToken(c.AccessKey, c.SecretKey, params)
	if err != nil {
		return err
	}

	endpoint := c.BaseURL + path
	var body io.Reader
	if len(params) > 0 {
		if method == http.MethodGet {
			endpoint += "?" + params.Encode()
		} else {
			body = strings.NewReader(params.Encode())
		}
	}
	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upbit API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func intervalPath(interval string) string {
	switch interval {
	case "week":
		return "weeks"
	case "month":
		return "months"
	default:
		return "days"
	}
}

package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"QuantSentinel/internal/model"
)

const tushareDefaultBaseURL = "http://api.tushare.pro"

// TushareSource implements the equity data-source contract over the
// Tushare Pro JSON-RPC style API (China A-shares).
type TushareSource struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewTushareSource creates a Tushare source with optional base URL
// override and proxy support.
func NewTushareSource(baseURL, token, proxyURL string) *TushareSource {
	if baseURL == "" {
		baseURL = tushareDefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TushareSource{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (t *TushareSource) Name() string { return "tushare" }

// FormatSymbol maps a bare 6-digit code to Tushare's suffixed form:
// 6xxxxx → .SH (Shanghai), everything else → .SZ (Shenzhen). Codes that
// already carry a suffix pass through uppercased.
func (t *TushareSource) FormatSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.HasSuffix(s, ".SH") || strings.HasSuffix(s, ".SZ") {
		return s
	}
	if len(s) == 6 && strings.HasPrefix(s, "6") {
		return s + ".SH"
	}
	if len(s) == 6 {
		return s + ".SZ"
	}
	return s
}

type tushareRequest struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params"`
	Fields  string            `json:"fields"`
}

type tushareResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Fields []string `json:"fields"`
		Items  [][]any  `json:"items"`
	} `json:"data"`
}

func (t *TushareSource) call(apiName string, params map[string]string, fields string) (*tushareResponse, error) {
	payload, err := json.Marshal(tushareRequest{
		APIName: apiName,
		Token:   t.Token,
		Params:  params,
		Fields:  fields,
	})
	if err != nil {
		return nil, fmt.Errorf("tushare encode: %w", err)
	}

	resp, err := t.Client.Post(t.BaseURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tushare fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tushare read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tushare: status %d, body: %s", resp.StatusCode, string(body))
	}

	var out tushareResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("tushare decode: %w", err)
	}
	if out.Code != 0 {
		return nil, fmt.Errorf("tushare api error: %s", out.Msg)
	}
	return &out, nil
}

// row maps one result row by field name; missing or null cells read as 0.
type tushareRow struct {
	fields map[string]int
	cells  []any
}

func (r tushareRow) float(name string) float64 {
	idx, ok := r.fields[name]
	if !ok || idx >= len(r.cells) {
		return 0
	}
	switch v := r.cells[idx].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func (r tushareRow) str(name string) string {
	idx, ok := r.fields[name]
	if !ok || idx >= len(r.cells) {
		return ""
	}
	if s, ok := r.cells[idx].(string); ok {
		return s
	}
	return ""
}

func rowsOf(resp *tushareResponse) []tushareRow {
	fields := make(map[string]int, len(resp.Data.Fields))
	for i, f := range resp.Data.Fields {
		fields[f] = i
	}
	rows := make([]tushareRow, len(resp.Data.Items))
	for i, cells := range resp.Data.Items {
		rows[i] = tushareRow{fields: fields, cells: cells}
	}
	return rows
}

// RealtimePrice returns the latest daily close, 0 when the code is unknown.
func (t *TushareSource) RealtimePrice(code string) (float64, error) {
	resp, err := t.call("daily", map[string]string{"ts_code": code, "limit": "1"},
		"trade_date,close")
	if err != nil {
		return 0, err
	}
	rows := rowsOf(resp)
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].float("close"), nil
}

// DailyBars returns up to limit daily bars between start and end. Tushare
// serves rows newest-first; callers rebuild ordering via model.NewSeries.
func (t *TushareSource) DailyBars(code string, start, end time.Time, limit int) ([]model.Bar, error) {
	resp, err := t.call("daily", map[string]string{
		"ts_code":    code,
		"start_date": start.Format("20060102"),
		"end_date":   end.Format("20060102"),
		"limit":      fmt.Sprintf("%d", limit),
	}, "trade_date,open,high,low,close,vol")
	if err != nil {
		return nil, err
	}

	rows := rowsOf(resp)
	bars := make([]model.Bar, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse("20060102", row.str("trade_date"))
		if err != nil {
			continue
		}
		bars = append(bars, model.Bar{
			Time:   day,
			Open:   row.float("open"),
			High:   row.float("high"),
			Low:    row.float("low"),
			Close:  row.float("close"),
			Volume: row.float("vol"),
		})
	}
	return bars, nil
}

// DailyBasic returns the most recent fundamentals snapshot, nil when the
// upstream has none for the code.
func (t *TushareSource) DailyBasic(code string) (*model.Fundamentals, error) {
	resp, err := t.call("daily_basic", map[string]string{"ts_code": code, "limit": "1"},
		"turnover_rate,volume_ratio,pe,pe_ttm,pb,ps,ps_ttm,dv_ratio,dv_ttm,total_mv,circ_mv,total_share,float_share")
	if err != nil {
		return nil, err
	}
	rows := rowsOf(resp)
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &model.Fundamentals{
		TurnoverRate:     row.float("turnover_rate"),
		VolumeRatio:      row.float("volume_ratio"),
		PE:               row.float("pe"),
		PETTM:            row.float("pe_ttm"),
		PB:               row.float("pb"),
		PS:               row.float("ps"),
		PSTTM:            row.float("ps_ttm"),
		DividendYield:    row.float("dv_ratio"),
		DividendYieldTTM: row.float("dv_ttm"),
		TotalMarketValue: row.float("total_mv"),
		CircMarketValue:  row.float("circ_mv"),
		TotalShare:       row.float("total_share"),
		FloatShare:       row.float("float_share"),
	}, nil
}

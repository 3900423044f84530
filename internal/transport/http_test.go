package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/domain/summary"
	"github.com/rpggio/cookbook/internal/testserver"
	"github.com/rpggio/cookbook/internal/transport"
)

func post(t *testing.T, target, body string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(target, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func get(t *testing.T, target string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func summaryURL(ts *testserver.TestServer, name string) string {
	return ts.URL("/summary?name=" + url.QueryEscape(name))
}

func forEachDriver(t *testing.T, fn func(t *testing.T, ts *testserver.TestServer)) {
	for _, driver := range testserver.Drivers {
		t.Run(driver, func(t *testing.T) {
			fn(t, testserver.New(t, driver))
		})
	}
}

func TestHTTPServer_Parse(t *testing.T) {
	ts := testserver.New(t, testserver.DriverMemory)

	resp, body := post(t, ts.URL("/parse"), `{"input":"Riz@z RISO00tto!"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"msg":"Rizz Risotto"}`, body)

	resp, body = post(t, ts.URL("/parse"), `{"input":"alpHa-alFRedo"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"msg":"Alpha Alfredo"}`, body)

	resp, body = post(t, ts.URL("/parse"), `{"input":"1234"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, transport.CodeInput, resp.Header.Get("X-Error-Code"))
	require.Equal(t, "unparseable input", body)

	resp, _ = post(t, ts.URL("/parse"), `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = post(t, ts.URL("/parse"), `{"input":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid request body", body)
}

func TestHTTPServer_EntryValidation(t *testing.T) {
	forEachDriver(t, func(t *testing.T, ts *testserver.TestServer) {
		resp, body := post(t, ts.URL("/entry"), `{"type":"ingredient","name":"Beef","cookTime":5}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Empty(t, body)

		tests := []struct {
			name string
			body string
			want string
		}{
			{"unknown type", `{"type":"pan","name":"Wok","cookTime":1}`, "invalid type"},
			{"type case", `{"type":"Recipe","name":"Stew","requiredItems":[]}`, "invalid type"},
			{"empty name", `{"type":"ingredient","name":"","cookTime":1}`, "invalid name"},
			{"negative cook time", `{"type":"ingredient","name":"Egg","cookTime":-1}`, "negative cook time"},
			{"duplicate ingredient", `{"type":"ingredient","name":"Beef","cookTime":1}`, "duplicate name"},
			{"duplicate across kinds", `{"type":"recipe","name":"Beef","requiredItems":[]}`, "duplicate name"},
			{"repeated item", `{"type":"recipe","name":"Stew","requiredItems":[{"name":"Beef","quantity":1},{"name":"Beef","quantity":2}]}`, "invalid required items"},
			{"zero quantity", `{"type":"recipe","name":"Stew","requiredItems":[{"name":"Beef","quantity":0}]}`, "invalid required items"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp, body := post(t, ts.URL("/entry"), tt.body)
				require.Equal(t, http.StatusBadRequest, resp.StatusCode)
				require.Equal(t, transport.CodeValidation, resp.Header.Get("X-Error-Code"))
				require.Equal(t, tt.want, body)
			})
		}

		resp, body = post(t, ts.URL("/entry"), `not json`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, transport.CodeInput, resp.Header.Get("X-Error-Code"))
		require.Equal(t, "invalid request body", body)
	})
}

func TestHTTPServer_Summary(t *testing.T) {
	forEachDriver(t, func(t *testing.T, ts *testserver.TestServer) {
		for _, body := range []string{
			`{"type":"recipe","name":"Skibidi Spaghetti","requiredItems":[{"name":"Meatball","quantity":3},{"name":"Pasta","quantity":1},{"name":"Tomato","quantity":2}]}`,
			`{"type":"recipe","name":"Meatball","requiredItems":[{"name":"Beef","quantity":2},{"name":"Egg","quantity":1}]}`,
			`{"type":"recipe","name":"Pasta","requiredItems":[{"name":"Flour","quantity":3},{"name":"Egg","quantity":1}]}`,
			`{"type":"ingredient","name":"Beef","cookTime":5}`,
			`{"type":"ingredient","name":"Egg","cookTime":3}`,
			`{"type":"ingredient","name":"Flour","cookTime":0}`,
			`{"type":"ingredient","name":"Tomato","cookTime":2}`,
		} {
			resp, respBody := post(t, ts.URL("/entry"), body)
			require.Equal(t, http.StatusOK, resp.StatusCode, respBody)
		}

		resp, body := get(t, summaryURL(ts, "Skibidi Spaghetti"))
		require.Equal(t, http.StatusOK, resp.StatusCode, body)

		var got summary.Summary
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		require.Equal(t, summary.Summary{
			Name:     "Skibidi Spaghetti",
			CookTime: 46,
			Ingredients: []entry.RequiredItem{
				{Name: "Beef", Quantity: 6},
				{Name: "Egg", Quantity: 4},
				{Name: "Flour", Quantity: 3},
				{Name: "Tomato", Quantity: 2},
			},
		}, got)
	})
}

func TestHTTPServer_SummaryErrors(t *testing.T) {
	forEachDriver(t, func(t *testing.T, ts *testserver.TestServer) {
		for _, body := range []string{
			`{"type":"recipe","name":"Cake","requiredItems":[{"name":"Sugar","quantity":1000}]}`,
			`{"type":"ingredient","name":"Bruh","cookTime":1}`,
			`{"type":"recipe","name":"Loop","requiredItems":[{"name":"Loop","quantity":1}]}`,
			`{"type":"recipe","name":"Plain","requiredItems":[]}`,
		} {
			resp, respBody := post(t, ts.URL("/entry"), body)
			require.Equal(t, http.StatusOK, resp.StatusCode, respBody)
		}

		resp, body := get(t, summaryURL(ts, "Cake"))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, transport.CodeLookup, resp.Header.Get("X-Error-Code"))
		require.Equal(t, "dependency not found: Sugar", body)

		resp, body = get(t, summaryURL(ts, "Bruh"))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "recipe not found", body)

		resp, _ = get(t, summaryURL(ts, "Nothing"))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = get(t, ts.URL("/summary"))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = get(t, summaryURL(ts, "Loop"))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, transport.CodeGraph, resp.Header.Get("X-Error-Code"))

		resp, body = get(t, summaryURL(ts, "Plain"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `{"name":"Plain","cookTime":0,"ingredients":[]}`, body)

		// A late dependency makes the earlier failure succeed.
		resp, _ = post(t, ts.URL("/entry"), `{"type":"ingredient","name":"Sugar","cookTime":2}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp, body = get(t, summaryURL(ts, "Cake"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `{"name":"Cake","cookTime":2000,"ingredients":[{"name":"Sugar","quantity":1000}]}`, body)
	})
}

func TestHTTPServer_Entries(t *testing.T) {
	forEachDriver(t, func(t *testing.T, ts *testserver.TestServer) {
		resp, body := get(t, ts.URL("/entries"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `[]`, body)

		post(t, ts.URL("/entry"), `{"type":"recipe","name":"Toast","requiredItems":[{"name":"Bread","quantity":2}]}`)
		post(t, ts.URL("/entry"), `{"type":"ingredient","name":"Bread","cookTime":0}`)

		resp, body = get(t, ts.URL("/entries"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `[
			{"type":"recipe","name":"Toast","requiredItems":[{"name":"Bread","quantity":2}]},
			{"type":"ingredient","name":"Bread","cookTime":0}
		]`, body)

		resp, body = get(t, ts.URL("/entry/Bread"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `{"type":"ingredient","name":"Bread","cookTime":0}`, body)

		resp, body = get(t, ts.URL("/entry/bread"))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "entry not found", body)
	})
}

func TestHTTPServer_HealthReadyMetrics(t *testing.T) {
	forEachDriver(t, func(t *testing.T, ts *testserver.TestServer) {
		resp, body := get(t, ts.URL("/health"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "ok", body)

		resp, _ = get(t, ts.URL("/ready"))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		post(t, ts.URL("/parse"), `{"input":"x"}`)
		resp, body = get(t, ts.URL("/metrics"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, strings.Contains(body, "cookbook_http_requests_total"))
	})
}

func TestHTTPServer_RequestID(t *testing.T) {
	ts := testserver.New(t, testserver.DriverMemory)

	resp, _ := get(t, ts.URL("/health"))
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	req, err := http.NewRequest(http.MethodGet, ts.URL("/health"), nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", resp.Header.Get("X-Request-Id"))
}

func TestHTTPServer_RateLimit(t *testing.T) {
	ts := testserver.NewWithOptions(t, testserver.Options{
		Driver:    testserver.DriverMemory,
		RateLimit: 0.001,
		RateBurst: 1,
	})

	resp, _ := post(t, ts.URL("/parse"), `{"input":"first"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := post(t, ts.URL("/parse"), `{"input":"second"}`)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, transport.CodeRateLimit, resp.Header.Get("X-Error-Code"))
	require.Equal(t, "rate limit exceeded", body)

	// Probes are not rate limited.
	resp, _ = get(t, ts.URL("/health"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_MaxDepth(t *testing.T) {
	ts := testserver.NewWithOptions(t, testserver.Options{Driver: testserver.DriverMemory, MaxDepth: 1})

	post(t, ts.URL("/entry"), `{"type":"recipe","name":"A","requiredItems":[{"name":"B","quantity":1}]}`)
	post(t, ts.URL("/entry"), `{"type":"recipe","name":"B","requiredItems":[{"name":"C","quantity":1}]}`)
	post(t, ts.URL("/entry"), `{"type":"ingredient","name":"C","cookTime":1}`)

	resp, _ := get(t, summaryURL(ts, "B"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, summaryURL(ts, "A"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, transport.CodeGraph, resp.Header.Get("X-Error-Code"))
}

func TestHTTPServer_MCP(t *testing.T) {
	ts := testserver.New(t, testserver.DriverMemory)
	ctx := context.Background()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.URL("/mcp")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "add_entry",
		Arguments: map[string]any{"type": "ingredient", "name": "Salt", "cookTime": 1},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	// Entries written over MCP are visible over REST.
	resp, body := get(t, ts.URL("/entry/Salt"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"type":"ingredient","name":"Salt","cookTime":1}`, body)
}

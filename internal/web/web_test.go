package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/api"
	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/client"
	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/db"
	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/model"
)

func setupConsole(t *testing.T) (*httptest.Server, *http.Client, *Sessions) {
	t.Helper()
	database := db.NewTestDB(t)
	apiServer := httptest.NewServer(api.NewRouter(database, api.DefaultPrefix))
	t.Cleanup(apiServer.Close)

	sessions := NewSessions(client.New(apiServer.URL, api.DefaultPrefix, time.Second), time.Minute)
	router, err := NewRouter(sessions)
	require.NoError(t, err)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return server, &http.Client{Jar: jar}, sessions
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func submit(t *testing.T, c *http.Client, server *httptest.Server, action string, fields url.Values) string {
	t.Helper()
	if fields == nil {
		fields = url.Values{}
	}
	fields.Set("action", action)
	resp, err := c.PostForm(server.URL+"/console", fields)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return readBody(t, resp)
}

func widgetFields() url.Values {
	return url.Values{
		"name":          {"Widget"},
		"description":   {"blue"},
		"quantity":      {"4"},
		"price":         {"3.5"},
		"product_id":    {"12"},
		"restock_level": {"2"},
		"condition":     {model.ConditionNew},
	}
}

func TestConsolePage(t *testing.T) {
	server, c, sessions := setupConsole(t)

	resp, err := c.Get(server.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)

	for _, id := range []string{
		`id="product_id"`, `id="product_name"`, `id="product_condition"`,
		`id="create-btn"`, `id="list-btn"`, `id="clear-btn"`,
		`id="flash_message"`, `id="search_results"`,
	} {
		assert.Contains(t, body, id)
	}
	assert.Contains(t, body, `<option value="Unknown" selected>`)
	assert.Contains(t, body, `<option value="" selected>Any</option>`)
	assert.Equal(t, 1, sessions.Len())

	u, _ := url.Parse(server.URL)
	cookies := c.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
}

func TestConsoleSessionIsReused(t *testing.T) {
	server, c, sessions := setupConsole(t)

	for range 3 {
		resp, err := c.Get(server.URL + "/")
		require.NoError(t, err)
		readBody(t, resp)
	}
	assert.Equal(t, 1, sessions.Len())
}

func TestConsoleCreateAndSearch(t *testing.T) {
	server, c, _ := setupConsole(t)

	body := submit(t, c, server, "create", widgetFields())
	assert.Contains(t, body, ">Success</div>")
	assert.Contains(t, body, `id="product_id" name="id" value="1"`)
	assert.Contains(t, body, `value="3.50"`)

	body = submit(t, c, server, "clear", nil)
	assert.Contains(t, body, `id="product_name" name="name" value=""`)

	body = submit(t, c, server, "search", url.Values{
		"name": {"Widget"}, "condition": {model.ConditionUnknown}, "search_condition": {model.ConditionNew},
	})
	assert.Contains(t, body, `id="row_1"`)
	assert.Contains(t, body, `id="product_id" name="id" value="1"`)

	body = submit(t, c, server, "search", url.Values{
		"name": {"Sprocket"}, "condition": {model.ConditionUnknown}, "search_condition": {""},
	})
	assert.Contains(t, body, "No items found")
	assert.NotContains(t, body, "<table>")
}

func TestConsoleSearchByNameAfterClear(t *testing.T) {
	server, c, _ := setupConsole(t)

	submit(t, c, server, "create", widgetFields())
	body := submit(t, c, server, "clear", nil)

	// After Clear the page submits the default condition and an empty filter.
	assert.Contains(t, body, `<option value="Unknown" selected>`)
	assert.Contains(t, body, `<option value="" selected>Any</option>`)
	defaults := url.Values{
		"id": {""}, "name": {"Widget"}, "description": {""}, "quantity": {""}, "price": {""},
		"product_id": {""}, "restock_level": {""},
		"condition": {model.ConditionUnknown}, "search_condition": {""},
	}

	body = submit(t, c, server, "search", defaults)
	assert.Contains(t, body, `id="row_1"`)
	assert.Contains(t, body, `id="product_id" name="id" value="1"`)
	assert.Contains(t, body, `<option value="New" selected>`)

	defaults.Set("search_condition", model.ConditionUsed)
	body = submit(t, c, server, "search", defaults)
	assert.Contains(t, body, "No items found")
	assert.Contains(t, body, `<option value="Used" selected>Used</option>`)
}

func TestConsoleValidationAndErrors(t *testing.T) {
	server, c, _ := setupConsole(t)

	body := submit(t, c, server, "retrieve", url.Values{"id": {""}})
	assert.Contains(t, body, "Please enter an ID")

	body = submit(t, c, server, "retrieve", url.Values{"id": {"42"}, "name": {"Ghost"}})
	assert.Contains(t, body, "Item with id &#39;42&#39; was not found.")
	assert.Contains(t, body, `id="product_id" name="id" value="42"`)
	assert.Contains(t, body, `id="product_name" name="name" value=""`)

	fields := widgetFields()
	fields.Set("quantity", "lots")
	body = submit(t, c, server, "create", fields)
	assert.Contains(t, body, "quantity must be an integer")
}

func TestConsoleDelete(t *testing.T) {
	server, c, _ := setupConsole(t)

	submit(t, c, server, "create", widgetFields())
	body := submit(t, c, server, "delete", url.Values{"id": {"1"}})
	assert.Contains(t, body, "Item has been deleted!")

	body = submit(t, c, server, "list", nil)
	assert.Contains(t, body, "No items found")
}

func TestConsoleUnknownAction(t *testing.T) {
	server, c, _ := setupConsole(t)

	resp, err := c.PostForm(server.URL+"/console", url.Values{"action": {"explode"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionsPrune(t *testing.T) {
	sessions := NewSessions(nil, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	idle, _ := sessions.Start()
	active, _ := sessions.Start()

	now = now.Add(45 * time.Second)
	_, ok := sessions.Lookup(active)
	require.True(t, ok)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, sessions.Prune())
	assert.Equal(t, 1, sessions.Len())

	_, ok = sessions.Lookup(idle)
	assert.False(t, ok)
	_, ok = sessions.Lookup(active)
	assert.True(t, ok)
}

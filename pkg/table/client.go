package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

//Client publishes to a remote table server speaking the /get, /set and /get_keys routes
type Client struct {
	baseURL string
	http    *http.Client
}

//NewClient returns a client for server, e.g. "http://10.25.2.2:5807"
func NewClient(server string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("NewClient: bad server url '%s', got '%v'", server, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("NewClient: unsupported scheme in '%s'", server)
	}

	return &Client{
		baseURL: strings.TrimSuffix(server, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

//Set posts v to /set/<key>
func (c *Client) Set(key string, v Value) error {
	if err := checkKey(key); err != nil {
		return err
	}

	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	resp, err := c.http.Post(c.baseURL+"/set/"+url.PathEscape(key), "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("Client.Set: '%s', got '%v'", key, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("Client.Set: '%s', got status %d", key, resp.StatusCode)
	}

	return nil
}

//Get reads /get/<key>, ok is false when the server has no such key
func (c *Client) Get(key string) (v Value, ok bool, err error) {
	if err := checkKey(key); err != nil {
		return Value{}, false, err
	}

	var raw json.RawMessage
	if err := c.getJSON("/get/"+url.PathEscape(key), &raw); err != nil {
		return Value{}, false, err
	}

	if len(raw) == 0 || string(raw) == "null" {
		return Value{}, false, nil
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		return Value{}, false, fmt.Errorf("Client.Get: '%s', got '%v'", key, err)
	}

	return v, true, nil
}

//Keys reads /get_keys
func (c *Client) Keys() ([]string, error) {
	keys := make([]string, 0)
	if err := c.getJSON("/get_keys", &keys); err != nil {
		return nil, err
	}

	return keys, nil
}

func (c *Client) getJSON(path string, out interface{}) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("Client: GET '%s', got '%v'", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Client: GET '%s', got status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) PutNumberArray(key string, values []float64) error {
	return c.Set(key, NumberArrayValue(values))
}

func (c *Client) PutNumber(key string, value float64) error {
	return c.Set(key, NumberValue(value))
}

func (c *Client) PutBool(key string, value bool) error {
	return c.Set(key, BoolValue(value))
}

func (c *Client) PutText(key string, value string) error {
	return c.Set(key, TextValue(value))
}

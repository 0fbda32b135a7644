package table

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//fakeTelemetryServer mimics the robot telemetry routes backed by a Store
func fakeTelemetryServer(t *testing.T, store *Store) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/set/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		body, _ := io.ReadAll(r.Body)
		var v Value
		if err := json.Unmarshal(body, &v); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}

		store.Set(r.URL.Path[len("/set/"):], v)
		io.WriteString(w, "Success")
	})
	mux.HandleFunc("/get/", func(w http.ResponseWriter, r *http.Request) {
		v, ok := store.Get(r.URL.Path[len("/get/"):])
		if !ok {
			io.WriteString(w, "null")
			return
		}
		json.NewEncoder(w).Encode(v)
	})
	mux.HandleFunc("/get_keys", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(store.Keys())
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClientPublishes(t *testing.T) {
	store := NewStore()
	server := fakeTelemetryServer(t, store)

	c, err := NewClient(server.URL+"/", time.Second)
	require.NoError(t, err)

	require.NoError(t, c.PutNumberArray("friendly coordinates:", []float64{53, 53, 95, 95}))
	require.NoError(t, c.PutBool("flywheel state", true))

	v, ok := store.Get("friendly coordinates:")
	require.True(t, ok)
	assert.Equal(t, []float64{53, 53, 95, 95}, v.NumberArray)

	got, ok, err := c.Get("friendly coordinates:")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, KindNumberArray, got.Kind)

	_, ok, err = c.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"flywheel state", "friendly coordinates:"}, keys)
}

func TestClientErrors(t *testing.T) {
	_, err := NewClient("10.25.2.2:5807", time.Second)
	assert.Error(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := NewClient(server.URL, time.Second)
	require.NoError(t, err)

	assert.Error(t, c.PutNumber("hertz", 8))
	assert.ErrorIs(t, c.PutNumber("", 8), ErrEmptyKey)

	_, err = c.Keys()
	assert.Error(t, err)
}

func TestClientRejectsSlashInKey(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c, err := NewClient(server.URL, time.Second)
	require.NoError(t, err)

	assert.ErrorIs(t, c.PutNumberArray("camera/note coordinates:", []float64{1}), ErrSlashInKey)

	_, _, err = c.Get("camera/note coordinates:")
	assert.ErrorIs(t, err, ErrSlashInKey)

	assert.Equal(t, 0, requests)
}

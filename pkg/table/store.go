package table

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	//ErrEmptyKey is returned when setting a value without a key
	ErrEmptyKey = errors.New("table: empty key")
	//ErrSlashInKey is returned for keys containing '/', the /get/:key and /set/:key routes cannot carry them
	ErrSlashInKey = errors.New("table: key contains '/'")
)

func checkKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if strings.Contains(key, "/") {
		return ErrSlashInKey
	}

	return nil
}

//Update is sent to subscribers every time a key is set
type Update struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

//Store is the in-process network table. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]Value
	subs map[chan Update]struct{}
}

func NewStore() *Store {
	return &Store{
		data: make(map[string]Value),
		subs: make(map[chan Update]struct{}),
	}
}

//Set stores v under key and notifies subscribers. Subscribers whose buffer is full miss the update.
func (s *Store) Set(key string, v Value) error {
	if err := checkKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = v
	for sub := range s.subs {
		select {
		case sub <- Update{Key: key, Value: v}:
		default:
		}
	}

	return nil
}

func (s *Store) Get(key string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok
}

//Keys returns every key, sorted
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}

//Subscribe returns a channel of updates and a function that unsubscribes and closes it
func (s *Store) Subscribe(buffer int) (<-chan Update, func()) {
	sub := make(chan Update, buffer)

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return sub, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, sub)
			close(sub)
			s.mu.Unlock()
		})
	}
}

func (s *Store) PutNumberArray(key string, values []float64) error {
	return s.Set(key, NumberArrayValue(values))
}

func (s *Store) PutNumber(key string, value float64) error {
	return s.Set(key, NumberValue(value))
}

func (s *Store) PutBool(key string, value bool) error {
	return s.Set(key, BoolValue(value))
}

func (s *Store) PutText(key string, value string) error {
	return s.Set(key, TextValue(value))
}

package table

//Publisher puts values in a network table
type Publisher interface {
	PutNumberArray(key string, values []float64) error
	PutNumber(key string, value float64) error
	PutBool(key string, value bool) error
	PutText(key string, value string) error
}

//Discard is the Publisher used when no table is configured
type Discard struct{}

func (Discard) PutNumberArray(string, []float64) error { return nil }

func (Discard) PutNumber(string, float64) error { return nil }

func (Discard) PutBool(string, bool) error { return nil }

func (Discard) PutText(string, string) error { return nil }

var (
	_ Publisher = (*Store)(nil)
	_ Publisher = (*Client)(nil)
	_ Publisher = Discard{}
)

package setstore

import "encoding/json"

// Codec turns a whole collection into a blob payload and back.
type Codec[T any] interface {
	Marshal(records []T) ([]byte, error)
	Unmarshal(data []byte) ([]T, error)
	ContentType() string
}

// JSONCodec stores the collection as a single JSON array.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Marshal(records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	return json.MarshalIndent(records, "", "  ")
}

func (JSONCodec[T]) Unmarshal(data []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (JSONCodec[T]) ContentType() string { return "application/json" }

// MappedCodec converts between domain values and wire records before
// delegating to an inner codec.
type MappedCodec[T, R any] struct {
	Inner    Codec[R]
	ToRecord func(T) R
	ToDomain func(R) (T, error)
}

func (c MappedCodec[T, R]) Marshal(records []T) ([]byte, error) {
	wire := make([]R, 0, len(records))
	for _, record := range records {
		wire = append(wire, c.ToRecord(record))
	}
	return c.inner().Marshal(wire)
}

func (c MappedCodec[T, R]) Unmarshal(data []byte) ([]T, error) {
	wire, err := c.inner().Unmarshal(data)
	if err != nil {
		return nil, err
	}
	records := make([]T, 0, len(wire))
	for _, w := range wire {
		record, err := c.ToDomain(w)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (c MappedCodec[T, R]) ContentType() string { return c.inner().ContentType() }

func (c MappedCodec[T, R]) inner() Codec[R] {
	if c.Inner == nil {
		return JSONCodec[R]{}
	}
	return c.Inner
}

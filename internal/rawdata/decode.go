package rawdata

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
)

// probe sniffs the discriminating fields of one result entry.
type probe struct {
	Type       string          `json:"type"`
	Datapoints json.RawMessage `json:"datapoints"`
	Columns    json.RawMessage `json:"columns"`
	Min        *json.Number    `json:"min"`
	Title      *string         `json:"title"`
}

// Decode parses a JSON array of raw results. Entries are told apart by
// "type" (table, docs), by "datapoints" (series) or by "min"/"title"
// (annotations).
func Decode(data []byte) ([]Result, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "rawdata: results must be a JSON array")
	}
	out := make([]Result, 0, len(entries))
	for i, raw := range entries {
		r, err := decodeOne(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "rawdata: result %d", i)
		}
		out = append(out, r)
	}
	return out, nil
}

// Encode is the inverse of Decode.
func Encode(results []Result) ([]byte, error) {
	if results == nil {
		results = []Result{}
	}
	return json.Marshal(results)
}

func decodeOne(raw json.RawMessage) (Result, error) {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	switch {
	case p.Type == TypeTable:
		t := &Table{}
		if err := json.Unmarshal(raw, t); err != nil {
			return nil, err
		}
		return t, nil

	case p.Type == TypeDocs:
		docs, err := decodeDocuments(p.Datapoints)
		if err != nil {
			return nil, err
		}
		return &Docs{Datapoints: docs}, nil

	case p.Type == TypeAnnotation || (p.Datapoints == nil && (p.Min != nil || p.Title != nil)):
		a := &Annotation{}
		if err := json.Unmarshal(raw, a); err != nil {
			return nil, err
		}
		return a, nil

	case p.Datapoints != nil:
		s := &Series{}
		if err := json.Unmarshal(raw, s); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.Errorf("unrecognized result shape (type %q)", p.Type)
}

func decodeDocuments(raw json.RawMessage) ([]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []any{}, nil
	}
	v, err := DecodeDocument(raw)
	if err != nil {
		return nil, err
	}
	docs, ok := v.([]any)
	if !ok {
		return nil, errors.New("docs datapoints must be an array")
	}
	return docs, nil
}

// DecodeDocument parses one JSON value keeping object key order: objects
// become *ordereddict.Dict, arrays []any, numbers json.Number.
func DecodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := ordereddict.NewDict()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := kt.(string)
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil

	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, errors.Errorf("unexpected delimiter %v", delim)
}

// MarshalDocument renders a document as JSON, keeping *ordereddict.Dict key
// order.
func MarshalDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocument(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeDocument(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case *ordereddict.Dict:
		if x == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range x.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			item, _ := x.Get(k)
			if err := writeDocument(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case []any:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeDocument(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

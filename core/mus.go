package core

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types persisted by the storage layer.
// Field order is part of the stored format; append new fields at the end.

// DocumentMUS serializes Document values.
var DocumentMUS = documentMUS{}

// ChatTurnMUS serializes ChatTurn values.
var ChatTurnMUS = chatTurnMUS{}

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

type documentMUS struct{}

func (documentMUS) Marshal(d Document, bs []byte) (n int) {
	n = ord.String.Marshal(d.DocumentID, bs)
	n += ord.String.Marshal(d.Source, bs[n:])
	n += ord.String.Marshal(d.Title, bs[n:])
	n += ord.String.Marshal(d.Content, bs[n:])
	n += ord.String.Marshal(d.DocumentType, bs[n:])
	n += ord.String.Marshal(string(d.Category), bs[n:])
	n += ord.String.Marshal(d.Jurisdiction, bs[n:])
	n += ord.String.Marshal(d.Authority, bs[n:])
	n += ord.String.Marshal(d.URL, bs[n:])
	n += ord.String.Marshal(d.EffectiveDate, bs[n:])
	n += marshalMetadata(d.Metadata, bs[n:])
	n += ord.String.Marshal(d.Summary, bs[n:])
	n += marshalKeywords(d.Keywords, bs[n:])
	n += ord.String.Marshal(d.ContentHash, bs[n:])
	n += marshalTime(d.InsertedAt, bs[n:])
	n += marshalTime(d.UpdatedAt, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (d Document, n int, err error) {
	var m int
	if d.DocumentID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if d.Source, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if d.Title, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if d.Content, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if d.DocumentType, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	var category string
	if category, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	d.Category = Category(category)
	n += m
	if d.Jurisdiction, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if d.Authority, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if d.URL, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if d.EffectiveDate, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if d.Metadata, m, err = unmarshalMetadata(bs[n:]); err != nil {
		return
	}
	n += m
	if d.Summary, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if d.Keywords, m, err = unmarshalKeywords(bs[n:]); err != nil {
		return
	}
	n += m
	if d.ContentHash, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if d.InsertedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += m
	if d.UpdatedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += m
	return
}

func (documentMUS) Size(d Document) (size int) {
	size = ord.String.Size(d.DocumentID)
	size += ord.String.Size(d.Source)
	size += ord.String.Size(d.Title)
	size += ord.String.Size(d.Content)
	size += ord.String.Size(d.DocumentType)
	size += ord.String.Size(string(d.Category))
	size += ord.String.Size(d.Jurisdiction)
	size += ord.String.Size(d.Authority)
	size += ord.String.Size(d.URL)
	size += ord.String.Size(d.EffectiveDate)
	size += sizeMetadata(d.Metadata)
	size += ord.String.Size(d.Summary)
	size += sizeKeywords(d.Keywords)
	size += ord.String.Size(d.ContentHash)
	size += sizeTime(d.InsertedAt)
	size += sizeTime(d.UpdatedAt)
	return size
}

type chatTurnMUS struct{}

func (chatTurnMUS) Marshal(t ChatTurn, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(t.Id), bs)
	n += varint.Int.Marshal(int(t.Role), bs[n:])
	n += ord.String.Marshal(t.Message, bs[n:])
	n += marshalTime(t.Timestamp, bs[n:])
	n += marshalTime(t.InsertedAt, bs[n:])
	return n
}

func (chatTurnMUS) Unmarshal(bs []byte) (t ChatTurn, n int, err error) {
	var m int
	var id uint64
	if id, n, err = varint.Uint64.Unmarshal(bs); err != nil {
		return
	}
	t.Id = ID(id)
	var role int
	if role, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	t.Role = Role(role)
	n += m
	if t.Message, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if t.Timestamp, m, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += m
	if t.InsertedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += m
	return
}

func (chatTurnMUS) Size(t ChatTurn) (size int) {
	size = varint.Uint64.Size(uint64(t.Id))
	size += varint.Int.Size(int(t.Role))
	size += ord.String.Size(t.Message)
	size += sizeTime(t.Timestamp)
	size += sizeTime(t.InsertedAt)
	return size
}

// Metadata values are tagged so nil, string, bool and numeric values survive
// a round trip. Floats are carried as their shortest decimal rendering,
// which is also the form the ranker and templates match against.
const (
	metaNil = iota
	metaString
	metaBool
	metaFloat
)

func marshalMetadata(meta map[string]any, bs []byte) (n int) {
	n = varint.Int.Marshal(len(meta), bs)
	for _, key := range sortedKeys(meta) {
		n += ord.String.Marshal(key, bs[n:])
		n += marshalMetaValue(meta[key], bs[n:])
	}
	return n
}

func unmarshalMetadata(bs []byte) (meta map[string]any, n int, err error) {
	var count int
	if count, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	if count == 0 {
		return nil, n, nil
	}
	meta = make(map[string]any, count)
	var m int
	for i := 0; i < count; i++ {
		var key string
		if key, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
		var value any
		if value, m, err = unmarshalMetaValue(bs[n:]); err != nil {
			return
		}
		n += m
		meta[key] = value
	}
	return
}

func sizeMetadata(meta map[string]any) (size int) {
	size = varint.Int.Size(len(meta))
	for key, value := range meta {
		size += ord.String.Size(key)
		size += sizeMetaValue(value)
	}
	return size
}

func marshalMetaValue(v any, bs []byte) (n int) {
	switch t := v.(type) {
	case nil:
		return varint.Int.Marshal(metaNil, bs)
	case bool:
		n = varint.Int.Marshal(metaBool, bs)
		n += ord.Bool.Marshal(t, bs[n:])
		return n
	case float64:
		n = varint.Int.Marshal(metaFloat, bs)
		n += ord.String.Marshal(strconv.FormatFloat(t, 'f', -1, 64), bs[n:])
		return n
	default:
		n = varint.Int.Marshal(metaString, bs)
		n += ord.String.Marshal(stringify(t), bs[n:])
		return n
	}
}

func unmarshalMetaValue(bs []byte) (v any, n int, err error) {
	var tag int
	if tag, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	var m int
	switch tag {
	case metaNil:
		return nil, n, nil
	case metaBool:
		var b bool
		b, m, err = ord.Bool.Unmarshal(bs[n:])
		return b, n + m, err
	case metaFloat:
		var s string
		if s, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return nil, n + m, err
		}
		n += m
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return nil, n, fmt.Errorf("metadata float %q: %w", s, perr)
		}
		return f, n, nil
	case metaString:
		var s string
		s, m, err = ord.String.Unmarshal(bs[n:])
		return s, n + m, err
	default:
		return nil, n, fmt.Errorf("unknown metadata value tag %d", tag)
	}
}

func sizeMetaValue(v any) int {
	switch t := v.(type) {
	case nil:
		return varint.Int.Size(metaNil)
	case bool:
		return varint.Int.Size(metaBool) + ord.Bool.Size(t)
	case float64:
		return varint.Int.Size(metaFloat) +
			ord.String.Size(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		return varint.Int.Size(metaString) + ord.String.Size(stringify(t))
	}
}

func marshalKeywords(keywords []Keyword, bs []byte) (n int) {
	n = varint.Int.Marshal(len(keywords), bs)
	for _, kw := range keywords {
		n += ord.String.Marshal(kw.Word, bs[n:])
		n += varint.Int.Marshal(kw.Count, bs[n:])
	}
	return n
}

func unmarshalKeywords(bs []byte) (keywords []Keyword, n int, err error) {
	var count int
	if count, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	if count == 0 {
		return nil, n, nil
	}
	keywords = make([]Keyword, count)
	var m int
	for i := 0; i < count; i++ {
		if keywords[i].Word, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
		if keywords[i].Count, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
	}
	return
}

func sizeKeywords(keywords []Keyword) (size int) {
	size = varint.Int.Size(len(keywords))
	for _, kw := range keywords {
		size += ord.String.Size(kw.Word)
		size += varint.Int.Size(kw.Count)
	}
	return size
}

func marshalTime(t time.Time, bs []byte) int {
	if t.IsZero() {
		return varint.Int64.Marshal(0, bs)
	}
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil || micros == 0 {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	if t.IsZero() {
		return varint.Int64.Size(0)
	}
	return varint.Int64.Size(t.UnixMicro())
}

// sortedKeys returns metadata keys in a fixed order so marshaled bytes are
// stable for identical documents.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

package href

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/golang/protobuf/proto"
	structpb "github.com/golang/protobuf/ptypes/struct"
	"github.com/vmihailenco/msgpack"
)

// MarshalText implements the `encoding.TextMarshaler`.
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements the `encoding.TextUnmarshaler`.
func (u *URL) UnmarshalText(text []byte) error {
	parseInto(u, string(text))
	return nil
}

// MarshalJSON implements the `json.Marshaler`. The u is marshaled as a JSON
// string.
func (u *URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON implements the `json.Unmarshaler`. A JSON null leaves the u
// untouched.
func (u *URL) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parseInto(u, s)

	return nil
}

// EncodeMsgpack implements the `msgpack.CustomEncoder`. The u is encoded as
// a msgpack string.
func (u *URL) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(u.String())
}

// DecodeMsgpack implements the `msgpack.CustomDecoder`.
func (u *URL) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}

	parseInto(u, s)

	return nil
}

// errMalformedQueryProto is returned when the protobuf wire form of a query
// collection is not a list of key/value pairs.
var errMalformedQueryProto = errors.New("href: malformed query protobuf")

// MarshalProto returns the protobuf wire form of the q: a
// `google.protobuf.ListValue` of [key, value] pairs in order. A nil value is
// kept as a `google.protobuf.NullValue`, so it survives the round trip.
func (q *Query) MarshalProto() ([]byte, error) {
	lv := &structpb.ListValue{}
	for _, k := range q.keys {
		lv.Values = append(lv.Values, &structpb.Value{
			Kind: &structpb.Value_ListValue{
				ListValue: &structpb.ListValue{
					Values: []*structpb.Value{
						{
							Kind: &structpb.Value_StringValue{
								StringValue: k,
							},
						},
						protoValue(q.values[k]),
					},
				},
			},
		})
	}

	return proto.Marshal(lv)
}

// UnmarshalProto replaces the entries of the q with the ones in the b, which
// must be produced by the `Query.MarshalProto`. The q is left untouched when
// an error is returned.
func (q *Query) UnmarshalProto(b []byte) error {
	lv := &structpb.ListValue{}
	if err := proto.Unmarshal(b, lv); err != nil {
		return err
	}

	nq := &Query{}
	for _, v := range lv.Values {
		pair := v.GetListValue()
		if pair == nil || len(pair.Values) != 2 {
			return errMalformedQueryProto
		}

		k, ok := pair.Values[0].GetKind().(*structpb.Value_StringValue)
		if !ok || k.StringValue == "" {
			return errMalformedQueryProto
		}

		qv, err := goValue(pair.Values[1])
		if err != nil {
			return err
		}

		nq.set(k.StringValue, qv)
	}

	*q = *nq

	return nil
}

// protoValue returns the `structpb.Value` form of the v.
func protoValue(v interface{}) *structpb.Value {
	switch v := v.(type) {
	case nil:
		return &structpb.Value{
			Kind: &structpb.Value_NullValue{
				NullValue: structpb.NullValue_NULL_VALUE,
			},
		}
	case bool:
		return &structpb.Value{
			Kind: &structpb.Value_BoolValue{
				BoolValue: v,
			},
		}
	}

	if isNumber(v) {
		if f, err := strconv.ParseFloat(stringify(v), 64); err == nil {
			return &structpb.Value{
				Kind: &structpb.Value_NumberValue{
					NumberValue: f,
				},
			}
		}
	}

	return &structpb.Value{
		Kind: &structpb.Value_StringValue{
			StringValue: stringify(v),
		},
	}
}

// goValue returns the Go form of the v.
func goValue(v *structpb.Value) (interface{}, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_NumberValue:
		return k.NumberValue, nil
	case *structpb.Value_BoolValue:
		return k.BoolValue, nil
	}

	return nil, errMalformedQueryProto
}

package api

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// Shape names the body layout a response arrived in.
type Shape int

const (
	// ShapeWrapped is {data, success?, message?, pagination?|meta?}. With an
	// alias key data may itself be {<alias>: [...], pagination?|meta?}.
	ShapeWrapped Shape = iota
	// ShapeAliased is {<alias>: [...], pagination?}.
	ShapeAliased
	// ShapeBare is a body with no envelope: an array, a plain object
	// without data/success, or nothing at all.
	ShapeBare
)

func (s Shape) String() string {
	switch s {
	case ShapeWrapped:
		return "wrapped"
	case ShapeAliased:
		return "aliased"
	case ShapeBare:
		return "bare"
	default:
		return "unknown"
	}
}

// Normalize decodes a 2xx body into the canonical envelope. aliasKey names
// the resource key some list endpoints use instead of data; pass "" when
// the endpoint never aliases. A missing success flag counts as true.
func Normalize[T any](body []byte, aliasKey string) (types.Envelope[T], Shape, error) {
	var env types.Envelope[T]

	if len(body) == 0 {
		env.Success = true
		return env, ShapeBare, nil
	}
	if !gjson.ValidBytes(body) {
		return env, ShapeBare, errors.New(errors.ErrCodeEnvelopeInvalid, "response body is not valid JSON")
	}

	root := gjson.ParseBytes(body)
	shape := classify(root, aliasKey)

	var payload gjson.Result
	metaRoot := root
	switch shape {
	case ShapeWrapped:
		payload = root.Get("data")
		if nested := payload.Get(aliasKey); aliasKey != "" && payload.IsObject() && nested.Exists() {
			// {data: {<alias>: [...], pagination?}}
			metaRoot = payload
			payload = nested
		}
		env.Success = true
		if s := root.Get("success"); s.Exists() {
			env.Success = s.Bool()
		}
		env.Message = root.Get("message").String()
	case ShapeAliased:
		payload = root.Get(aliasKey)
		env.Success = true
		env.Message = root.Get("message").String()
	default:
		payload = root
		env.Success = true
	}

	if shape != ShapeBare {
		meta, err := pagination(metaRoot, root)
		if err != nil {
			return env, shape, err
		}
		env.Pagination = meta
	}

	if payload.Exists() && payload.Type != gjson.Null {
		if err := json.Unmarshal([]byte(payload.Raw), &env.Data); err != nil {
			// An unsuccessful envelope may carry anything in data; callers must
			// not use it, so a decode failure there is not an error.
			if !env.Success {
				var zero T
				env.Data = zero
				return env, shape, nil
			}
			return env, shape, errors.Wrap(errors.ErrCodeEnvelopeInvalid, "response data does not match the expected type", err)
		}
	}

	return env, shape, nil
}

func classify(root gjson.Result, aliasKey string) Shape {
	if !root.IsObject() {
		return ShapeBare
	}
	if root.Get("data").Exists() {
		return ShapeWrapped
	}
	if aliasKey != "" && root.Get(aliasKey).Exists() {
		return ShapeAliased
	}
	if root.Get("success").Exists() {
		return ShapeWrapped
	}
	return ShapeBare
}

// pagination reads pagination or meta from the first object that has one.
func pagination(objects ...gjson.Result) (*types.PaginationMeta, error) {
	var raw gjson.Result
	for _, obj := range objects {
		if raw = obj.Get("pagination"); raw.IsObject() {
			break
		}
		if raw = obj.Get("meta"); raw.IsObject() {
			break
		}
	}
	if !raw.IsObject() {
		return nil, nil
	}

	var meta types.PaginationMeta
	if err := json.Unmarshal([]byte(raw.Raw), &meta); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEnvelopeInvalid, "pagination metadata is malformed", err)
	}
	return &meta, nil
}

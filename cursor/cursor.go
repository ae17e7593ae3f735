// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cursor provides opaque keyset pagination tokens.
//
// A token carries the sort it was minted for, the last-seen value of the
// sort key and the last-seen row id:
//
//	token, _ := cursor.Encode(cursor.Cursor{Sort: "new", Value: createdAt, ID: id})
//	c, err := cursor.Decode(token)
//
// Tokens are base64url (no padding) over a small JSON object. They are
// opaque to clients but not signed; the store only ever uses them as
// bind parameters.
package cursor

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned for tokens that cannot be decoded or used.
var ErrInvalid = errors.New("invalid cursor")

// Cursor is the decoded state of a pagination token.
type Cursor struct {
	Sort  string `json:"s"`
	Value any    `json:"v"`
	ID    string `json:"id"`
}

// Encode encodes a cursor to an opaque URL-safe string.
func Encode(c Cursor) (string, error) {
	if c.ID == "" {
		return "", fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if c.Value == nil {
		return "", fmt.Errorf("%w: missing value", ErrInvalid)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode decodes a token produced by Encode.
// Numeric values come back as json.Number; use Int64, Float64 or Text.
func Decode(token string) (Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Cursor{}, fmt.Errorf("%w: empty token", ErrInvalid)
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: decode base64: %v", ErrInvalid, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var c Cursor
	if err := dec.Decode(&c); err != nil {
		return Cursor{}, fmt.Errorf("%w: unmarshal: %v", ErrInvalid, err)
	}

	if c.ID == "" {
		return Cursor{}, fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if c.Value == nil {
		return Cursor{}, fmt.Errorf("%w: missing value", ErrInvalid)
	}

	return c, nil
}

// Int64 returns the sort value as an integer.
func (c Cursor) Int64() (int64, error) {
	switch v := c.Value.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: value %q is not an integer", ErrInvalid, v)
		}
		return n, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	}
	return 0, fmt.Errorf("%w: value is %T, want integer", ErrInvalid, c.Value)
}

// Float64 returns the sort value as a float.
func (c Cursor) Float64() (float64, error) {
	switch v := c.Value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: value %q is not a number", ErrInvalid, v)
		}
		return f, nil
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: value is %T, want number", ErrInvalid, c.Value)
}

// Text returns the sort value as a string.
func (c Cursor) Text() (string, error) {
	s, ok := c.Value.(string)
	if !ok {
		return "", fmt.Errorf("%w: value is %T, want string", ErrInvalid, c.Value)
	}
	return s, nil
}

package apiclient

import (
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// Envelope keys tried after the caller's own keys.
var defaultListKeys = []string{"data", "items", "Data", "Items", "data.items", "data.data"}

// UnwrapList finds the list inside a response body. The body may be a bare array or an object
// holding the array under one of keys (gjson paths such as "feedbacks" or "data.users") or one
// of the usual envelope keys. An unrecognised shape yields an empty list and false.
func UnwrapList(body []byte, keys ...string) ([]gjson.Result, bool) {
	doc := gjson.ParseBytes(body)
	if doc.IsArray() {
		return nonNil(doc.Array()), true
	}
	if !doc.IsObject() {
		log.Warn().Str("shape", doc.Type.String()).Msg("list payload is not an array or object")
		return []gjson.Result{}, false
	}

	candidates := append(append([]string{}, keys...), defaultListKeys...)
	for _, key := range candidates {
		if v := doc.Get(key); v.IsArray() {
			return nonNil(v.Array()), true
		}
	}
	log.Warn().Strs("tried", candidates).Msg("no list found in payload")
	return []gjson.Result{}, false
}

// UnwrapObject returns the object under the first of keys present, or the document itself.
// It handles {success, data:{...}} wrappers.
func UnwrapObject(body []byte, keys ...string) gjson.Result {
	doc := gjson.ParseBytes(body)
	for _, key := range append(append([]string{}, keys...), "data", "Data") {
		if v := doc.Get(key); v.IsObject() {
			return v
		}
	}
	return doc
}

func nonNil(items []gjson.Result) []gjson.Result {
	if items == nil {
		return []gjson.Result{}
	}
	return items
}

package client

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/itchyny/gojq"
	validator "github.com/santhosh-tekuri/jsonschema/v6"
)

// Compiled array-of-item validators, built once from the Go types.
var (
	productsValidator   = sync.OnceValues(func() (*validator.Schema, error) { return compileListSchema(reflect.TypeFor[Product]()) })
	categoriesValidator = sync.OnceValues(func() (*validator.Schema, error) { return compileListSchema(reflect.TypeFor[Category]()) })
)

// decodeList selects the item array from a raw payload with a jq expression,
// validates it against the schema for T, and decodes it.
func decodeList[T any](body []byte, selector string, schema func() (*validator.Schema, error)) ([]T, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedPayload, err)
	}

	selected, err := selectArray(doc, selector)
	if err != nil {
		return nil, err
	}

	compiled, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compiling payload schema: %w", err)
	}
	if err := compiled.Validate(selected); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	// Round-trip through JSON so T's tags drive the decode.
	raw, err := json.Marshal(selected)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	items := make([]T, 0, len(selected))
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return items, nil
}

// selectArray runs a jq expression and returns its first output, which must be
// an array. A null output, such as a missing envelope key, is malformed: an
// empty catalog has to be an explicit [].
func selectArray(doc any, selector string) ([]any, error) {
	if selector == "" || selector == "." {
		return asArray(doc)
	}

	query, err := gojq.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", selector, err)
	}

	iter := code.Run(doc)
	v, ok := iter.Next()
	if !ok {
		return nil, fmt.Errorf("%w: selector %q produced no output", ErrMalformedPayload, selector)
	}
	if err, isErr := v.(error); isErr {
		return nil, fmt.Errorf("%w: selector %q: %v", ErrMalformedPayload, selector, err)
	}
	return asArray(v)
}

func asArray(v any) ([]any, error) {
	switch arr := v.(type) {
	case []any:
		return arr, nil
	case nil:
		return nil, fmt.Errorf("%w: expected array, got null", ErrMalformedPayload)
	default:
		return nil, fmt.Errorf("%w: expected array, got %T", ErrMalformedPayload, v)
	}
}

// compileListSchema reflects a JSON Schema for item type t and compiles an
// array-of-t validator from it. Unknown properties are allowed since the
// backend sends more fields than the storefront reads.
func compileListSchema(t reflect.Type) (*validator.Schema, error) {
	r := &jsonschema.Reflector{
		Anonymous:                  true,
		DoNotReference:             true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
	item := r.ReflectFromType(t)
	item.Version = ""

	itemJSON, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("marshaling item schema: %w", err)
	}
	var itemValue any
	if err := json.Unmarshal(itemJSON, &itemValue); err != nil {
		return nil, fmt.Errorf("unmarshaling item schema: %w", err)
	}

	doc := map[string]any{
		"type":  "array",
		"items": itemValue,
	}

	compiler := validator.NewCompiler()
	name := t.Name() + "-list.json"
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return compiled, nil
}

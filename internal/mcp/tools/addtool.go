package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking its input and output types with
// CheckInputFields and CheckOutputSchema. Either check failing is a
// programming error, so AddTool panics at registration rather than letting
// the first call fail.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	if err := CheckInputFields[In](t.Name); err != nil {
		panic(err.Error())
	}
	if err := CheckOutputSchema[Out](t.Name); err != nil {
		panic(err.Error())
	}
	sdkmcp.AddTool(srv, t, h)
}

// SchemaCheckError describes a tool type that would misbehave once
// registered.
type SchemaCheckError struct {
	Tool   string
	Type   reflect.Type
	Fields []string // offending field paths, when known
	Reason string
	Fix    string
}

func (e *SchemaCheckError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "AddTool %q: %s: %s", e.Tool, e.Type, e.Reason)
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " (at %s)", strings.Join(e.Fields, ", "))
	}
	if e.Fix != "" {
		b.WriteString("\n  Fix: " + e.Fix)
	}
	return b.String()
}

var argNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

// CheckInputFields reports input struct fields whose argument names are not
// snake_case. Tool arguments are documented and referenced from prompts by
// name (product_id, tier_name), so a field without a json tag would surface
// under its Go name instead.
func CheckInputFields[T any](toolName string) error {
	rt := derefType(reflect.TypeFor[T]())
	if rt.Kind() != reflect.Struct {
		return nil
	}

	var bad []string
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if !argNamePattern.MatchString(name) {
			bad = append(bad, f.Name)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return &SchemaCheckError{
		Tool:   toolName,
		Type:   rt,
		Fields: bad,
		Reason: "input fields need snake_case json names",
		Fix:    "add a json tag such as `json:\"product_id\"`",
	}
}

// CheckOutputSchema checks that the zero value of T validates against the
// schema the SDK infers for it.
//
// json.Marshal writes a nil slice as null while the inferred schema says
// "array", so a handler returning an empty result would fail validation at
// runtime. json.RawMessage fields have the opposite problem: the schema says
// array of bytes but the value is arbitrary JSON.
func CheckOutputSchema[T any](toolName string) error {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return nil
	}
	elem := derefType(rt)

	if paths := rawMessagePaths(elem); len(paths) > 0 {
		return &SchemaCheckError{
			Tool:   toolName,
			Type:   elem,
			Fields: paths,
			Reason: "json.RawMessage is inferred as an array of bytes",
			Fix:    "use a typed struct, or any holding the decoded value",
		}
	}

	// Inference and resolution failures are reported by the SDK itself.
	schema, err := jsonschema.ForType(elem, &jsonschema.ForOptions{})
	if err != nil {
		return nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil
	}

	data, err := json.Marshal(reflect.Zero(elem).Interface())
	if err != nil {
		return nil
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	if err := resolved.Validate(&v); err != nil {
		return &SchemaCheckError{
			Tool:   toolName,
			Type:   elem,
			Reason: fmt.Sprintf("zero value %s fails schema validation: %v", data, err),
			Fix:    "add `omitzero` to slice fields that default to nil, or initialize them",
		}
	}
	return nil
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths walks t and returns the paths of json.RawMessage values,
// using [] for slice elements and [value] for map values.
func rawMessagePaths(t reflect.Type) []string {
	var found []string
	visiting := make(map[reflect.Type]bool)

	var walk func(t reflect.Type, path string)
	walk = func(t reflect.Type, path string) {
		t = derefType(t)
		if t == rawMessageType {
			found = append(found, path)
			return
		}
		if visiting[t] {
			return
		}
		visiting[t] = true
		defer delete(visiting, t)

		switch t.Kind() {
		case reflect.Struct:
			for i := range t.NumField() {
				if f := t.Field(i); f.IsExported() {
					walk(f.Type, joinPath(path, f.Name))
				}
			}
		case reflect.Slice, reflect.Array:
			walk(t.Elem(), joinPath(path, "[]"))
		case reflect.Map:
			walk(t.Elem(), joinPath(path, "[value]"))
		}
	}
	walk(t, "")
	return found
}

func joinPath(path, part string) string {
	if path == "" {
		return part
	}
	return path + "." + part
}

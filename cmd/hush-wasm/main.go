//go:build js && wasm

// Command hush-wasm exposes transformSync(code, options?) to JavaScript.
// The result is {code, map?} on success and {error} on failure; it never throws.
package main

import (
	"context"
	"fmt"
	"sync"
	"syscall/js"

	"hush/internal/boundary"
	"hush/internal/driver"
)

var (
	compilerOnce sync.Once
	compiler     *driver.Compiler
)

// shared строит компилятор при первом вызове и переиспользует его дальше.
func shared() *driver.Compiler {
	compilerOnce.Do(func() {
		compiler = driver.NewCompiler()
	})
	return compiler
}

func main() {
	js.Global().Set("transformSync", js.FuncOf(transformSync))
	// держим рантайм живым для последующих вызовов
	select {}
}

func transformSync(_ js.Value, args []js.Value) (result any) {
	// паника внутри js.FuncOf останавливает рантайм для всех следующих вызовов
	defer func() {
		if r := recover(); r != nil {
			result = response(boundary.Response{Error: fmt.Sprintf("transformSync: internal error: %v", r)})
		}
	}()

	if len(args) == 0 || args[0].Type() != js.TypeString {
		return response(boundary.Response{Error: "transformSync: expected source code string"})
	}
	opts, err := readOptions(args[1:])
	if err != nil {
		return response(boundary.Response{Error: err.Error()})
	}
	out, err := shared().Transform(context.Background(), args[0].String(), opts)
	return response(boundary.Respond(out, err))
}

// readOptions decodes the optional second argument. Only a plain object
// (or null/undefined) is accepted; fields of the wrong type are errors.
func readOptions(args []js.Value) (driver.Options, error) {
	if len(args) == 0 || args[0].IsUndefined() || args[0].IsNull() {
		return driver.Options{}, nil
	}
	o := args[0]
	if o.Type() != js.TypeObject {
		return driver.Options{}, fmt.Errorf("transformSync: options must be an object, got %s", o.Type())
	}
	var raw boundary.Options
	var err error
	if raw.Filename, err = stringField(o, "filename"); err != nil {
		return driver.Options{}, err
	}
	if raw.ErrorFormat, err = stringField(o, "errorFormat"); err != nil {
		return driver.Options{}, err
	}
	if v := o.Get("sourceMap"); !v.IsUndefined() && !v.IsNull() {
		if v.Type() != js.TypeBoolean {
			return driver.Options{}, fmt.Errorf("transformSync: sourceMap must be a boolean, got %s", v.Type())
		}
		raw.SourceMap = v.Bool()
	}
	return raw.DriverOptions()
}

func stringField(o js.Value, name string) (string, error) {
	v := o.Get(name)
	switch v.Type() {
	case js.TypeUndefined, js.TypeNull:
		return "", nil
	case js.TypeString:
		return v.String(), nil
	default:
		return "", fmt.Errorf("transformSync: %s must be a string, got %s", name, v.Type())
	}
}

func response(r boundary.Response) any {
	obj := map[string]any{}
	if r.Error != "" {
		obj["error"] = r.Error
		return obj
	}
	obj["code"] = r.Code
	if r.Map != "" {
		obj["map"] = r.Map
	}
	return obj
}

//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"
	"testing"
)

func call(args ...any) js.Value {
	values := make([]js.Value, len(args))
	for i, a := range args {
		values[i] = js.ValueOf(a)
	}
	return js.ValueOf(transformSync(js.Undefined(), values))
}

func TestTransformSyncCode(t *testing.T) {
	res := call("console.log(1)")
	if got := res.Get("code").String(); got != "(void 0)(1);\n" {
		t.Fatalf("code = %q", got)
	}
	if !res.Get("error").IsUndefined() || !res.Get("map").IsUndefined() {
		t.Fatal("success carries neither error nor map")
	}
}

func TestTransformSyncOptionsObject(t *testing.T) {
	res := call("if (", map[string]any{"filename": "in.js", "errorFormat": "json"})
	msg := res.Get("error").String()
	if !strings.HasPrefix(msg, "{") || !strings.Contains(msg, `"in.js"`) {
		t.Fatalf("expected JSON diagnostics for in.js, got %q", msg)
	}
	res = call("a()", map[string]any{"sourceMap": true})
	if res.Get("map").IsUndefined() {
		t.Fatal("sourceMap: true must return a map")
	}
}

func TestTransformSyncRejectsBadOptions(t *testing.T) {
	cases := []struct {
		opts any
		want string
	}{
		{"json", "options must be an object, got string"},
		{1, "options must be an object, got number"},
		{map[string]any{"filename": 3}, "filename must be a string"},
		{map[string]any{"sourceMap": "yes"}, "sourceMap must be a boolean"},
		{map[string]any{"errorFormat": "xml"}, "unknown error format"},
	}
	for _, tc := range cases {
		res := call("console.log(1)", tc.opts)
		if msg := res.Get("error"); msg.IsUndefined() || !strings.Contains(msg.String(), tc.want) {
			t.Errorf("options %v: error = %v, want %q", tc.opts, msg, tc.want)
		}
	}
	// рантайм жив после ошибок
	if got := call("console.log(2)").Get("code").String(); got != "(void 0)(2);\n" {
		t.Fatalf("later call = %q", got)
	}
}

func TestTransformSyncRequiresSource(t *testing.T) {
	for _, args := range [][]any{nil, {42}} {
		res := call(args...)
		if !strings.Contains(res.Get("error").String(), "expected source code string") {
			t.Errorf("args %v: %v", args, res)
		}
	}
}

package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E103",
			wantMsg: "Invalid router mode",
			wantCat: CategoryConfig,
		},
		{
			name:    "routing error",
			code:    "E302",
			wantMsg: "Redirect loop",
			wantCat: CategoryRouting,
		},
		{
			name:    "dev error",
			code:    "E402",
			wantMsg: "Dev server failed",
			wantCat: CategoryDev,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewCopiesSuggestion(t *testing.T) {
	err := New("E104")
	if err.Suggestion != "Use a port between 1 and 65535." {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}

	// Templates are copied, not shared.
	err.WithSuggestion("changed")
	if New("E104").Suggestion == "changed" {
		t.Error("WithSuggestion changed the registry")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "app.yaml")
	if err.Message != `file "app.yaml" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New("E301"), "E301: Unknown route"},
		{New("E301").WithDetail("not part of the message"), "E301: Unknown route"},
		{New("E402").Wrap(fmt.Errorf("address in use")), "E402: Dev server failed: address in use"},
		{&Error{Message: "plain"}, "plain"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestError_WithLocation(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "einblatt.yaml")
	content := "router:\n  basename: /app\n  mode: tabs\n  routes:\n    - name: home\n      path: /\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E103").WithLocation(tmpFile, 3, 9)

	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.String() != tmpFile+":3:9" {
		t.Errorf("Location = %q", err.Location.String())
	}
	want := []string{"router:", "  basename: /app", "  mode: tabs", "  routes:", "    - name: home"}
	if strings.Join(err.Context, "\n") != strings.Join(want, "\n") {
		t.Errorf("Context = %q", err.Context)
	}
}

func TestError_WithLocationNearTop(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "einblatt.yaml")
	if err := os.WriteFile(tmpFile, []byte("a\nb\nc\nd\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E102").WithLocation(tmpFile, 1, 0)
	if strings.Join(err.Context, ",") != "a,b,c" {
		t.Errorf("Context = %q", err.Context)
	}

	DisableColors()
	defer EnableColors()
	if !strings.Contains(err.Format(), "→    1 │ a") {
		t.Errorf("Format should point at line 1:\n%s", err.Format())
	}
}

func TestError_WithLocationFromError(t *testing.T) {
	parseErr := fmt.Errorf("yaml: line 7: mapping values are not allowed in this context")
	err := New("E102").WithLocationFromError("missing.yaml", parseErr)
	if err.Location.Line != 7 || err.Location.File != "missing.yaml" {
		t.Errorf("Location = %+v", err.Location)
	}
	if len(err.Context) != 0 {
		t.Error("unreadable file should have no context")
	}

	err = New("E102").WithLocationFromError("app.json", fmt.Errorf("unexpected end of JSON input"))
	if err.Location.Line != 0 || err.Location.String() != "app.json" {
		t.Errorf("Location = %q", err.Location.String())
	}
}

func TestError_Builders(t *testing.T) {
	err := New("E301").
		WithDetail("Custom detail").
		WithSuggestion("Try again")
	if err.Detail != "Custom detail" || err.Suggestion != "Try again" {
		t.Errorf("got %+v", err)
	}

	err.WithDetailf("route %q", "users")
	if err.Detail != `route "users"` {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestError_Wrap(t *testing.T) {
	inner := New("E404")
	outer := New("E402").Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E402") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	e := New("E301")
	if FromError(e, "E402") != e {
		t.Error("FromError should return *Error as-is")
	}
	if FromError(fmt.Errorf("navigating: %w", e), "E402") != e {
		t.Error("FromError should find *Error in the chain")
	}

	stdErr := fmt.Errorf("boom")
	result := FromError(stdErr, "E402")
	if result.Wrapped != stdErr || result.Code != "E402" {
		t.Errorf("got %+v", result)
	}
}

func TestCode(t *testing.T) {
	if Code(fmt.Errorf("wrapped: %w", New("E106"))) != "E106" {
		t.Error("Code should find the wrapped code")
	}
	if Code(fmt.Errorf("plain")) != "" {
		t.Error("Code of a plain error should be empty")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{"nil location", nil, ""},
		{"file only", &Location{File: "app.yaml"}, "app.yaml"},
		{"with column", &Location{File: "app.yaml", Line: 10, Column: 5}, "app.yaml:10:5"},
		{"without column", &Location{File: "app.yaml", Line: 10}, "app.yaml:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpFile := filepath.Join(t.TempDir(), "einblatt.yaml")
	content := "router:\n  mode: tabs\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	formatted := New("E103").
		WithLocation(tmpFile, 2, 9).
		WithDetailf("router.mode is %q", "tabs").
		Wrap(fmt.Errorf("unknown mode")).
		Format()

	for _, want := range []string{
		"ERROR E103: Invalid router mode",
		tmpFile + ":2:9",
		"→    2 │   mode: tabs",
		"        ^",
		`router.mode is "tabs"`,
		`Hint: Set router.mode to "browser", "hash" or "memory".`,
		"Cause: unknown mode",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E105").WithLocation("app.yaml", 10, 5)
	want := "app.yaml:10:5: E105: Invalid route definition"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E105").WithLocation("app.yaml", 10, 5).Wrap(fmt.Errorf("name is empty"))

	var got map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &got); jerr != nil {
		t.Fatalf("FormatJSON is not valid JSON: %v", jerr)
	}
	if got["code"] != "E105" || got["category"] != "config" || got["cause"] != "name is empty" {
		t.Errorf("got %v", got)
	}
	loc, ok := got["location"].(map[string]any)
	if !ok || loc["file"] != "app.yaml" || loc["line"] != float64(10) {
		t.Errorf("location = %v", got["location"])
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("serve: %w", New("E403")))
	if !strings.Contains(buf.String(), "ERROR E403: Static directory not found") {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, fmt.Errorf("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("got %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("GetAllCodes() should return codes")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted: %v", codes)
			break
		}
	}
	for _, code := range codes {
		tmpl, _ := GetTemplate(code)
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s: incomplete template %+v", code, tmpl)
		}
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate("E302")
	if !ok {
		t.Fatal("E302 should exist")
	}
	if template.Message != "Redirect loop" {
		t.Error("Template message mismatch")
	}

	if _, ok := GetTemplate("E999"); ok {
		t.Error("E999 should not exist")
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryCLI,
		Message:  "Custom test error",
		Detail:   "This is a test error",
	})
	defer delete(registry, "E999")

	err := New("E999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}

	got = wrapText("see /user/:id/settings/notifications now", 10)
	if len(got) != 3 || got[1] != "/user/:id/settings/notifications" {
		t.Errorf("wrapText long word: got %q", got)
	}
}

func TestFormatHeader(t *testing.T) {
	DisableColors()
	defer EnableColors()

	formatted := New("E304").Format()
	if !strings.HasPrefix(formatted, "\nERROR E304: No route matches [routing]\n\n") {
		t.Errorf("header = %q", formatted)
	}
	if strings.Contains(formatted, "Hint:") {
		t.Error("E304 has no suggestion")
	}

	plain := (&Error{Message: "plain"}).Format()
	if !strings.HasPrefix(plain, "\nERROR: plain\n") || strings.Contains(plain, "[") {
		t.Errorf("uncategorized header = %q", plain)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	if red("") != "" {
		t.Error("empty text should stay empty")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}

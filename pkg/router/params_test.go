package router

import (
	"testing"

	"github.com/google/uuid"
)

func TestParamsDecode(t *testing.T) {
	type args struct {
		Name   string    `param:"name"`
		ID     int       `param:"id"`
		Page   uint16    `param:"page"`
		Score  float64   `param:"score"`
		Active bool      `param:"active"`
		Tags   []string  `param:"tags"`
		Owner  uuid.UUID `param:"owner"`
		Plain  string
	}

	owner := uuid.New()
	p := Params{
		"name":   "ada",
		"id":     "42",
		"page":   "7",
		"score":  "9.5",
		"active": "true",
		"tags":   "a,b,c",
		"owner":  owner.String(),
		"Plain":  "ignored",
	}

	var got args
	if err := p.Decode(&got); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got.Name != "ada" || got.ID != 42 || got.Page != 7 || got.Score != 9.5 || !got.Active {
		t.Errorf("Decode() = %+v", got)
	}
	if len(got.Tags) != 3 || got.Tags[2] != "c" {
		t.Errorf("Tags = %v, want [a b c]", got.Tags)
	}
	if got.Owner != owner {
		t.Errorf("Owner = %v, want %v", got.Owner, owner)
	}
	if got.Plain != "" {
		t.Errorf("untagged field was set to %q", got.Plain)
	}
}

func TestParamsDecodeMissingLeavesZero(t *testing.T) {
	var got struct {
		ID   int    `param:"id"`
		Slug string `param:"slug"`
	}
	if err := (Params{"slug": "x"}).Decode(&got); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got.ID != 0 || got.Slug != "x" {
		t.Errorf("Decode() = %+v", got)
	}
}

func TestParamsDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		target any
	}{
		{"invalid int", Params{"id": "abc"}, &struct {
			ID int `param:"id"`
		}{}},
		{"int overflow", Params{"id": "300"}, &struct {
			ID int8 `param:"id"`
		}{}},
		{"negative uint", Params{"n": "-1"}, &struct {
			N uint `param:"n"`
		}{}},
		{"invalid bool", Params{"b": "maybe"}, &struct {
			B bool `param:"b"`
		}{}},
		{"invalid uuid", Params{"u": "not-a-uuid"}, &struct {
			U uuid.UUID `param:"u"`
		}{}},
		{"unsupported slice", Params{"s": "1,2"}, &struct {
			S []int `param:"s"`
		}{}},
		{"not a pointer", Params{}, struct{}{}},
		{"pointer to non-struct", Params{}, new(int)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.params.Decode(tt.target); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParamsDecodeNilTarget(t *testing.T) {
	if err := (Params{"id": "1"}).Decode(nil); err != nil {
		t.Errorf("Decode(nil) error: %v", err)
	}
}

func TestParamsAccessors(t *testing.T) {
	id := uuid.New()
	p := Params{"n": "12", "bad": "x", "id": id.String()}

	if n, err := p.Int("n"); err != nil || n != 12 {
		t.Errorf("Int(n) = %d, %v", n, err)
	}
	if _, err := p.Int("bad"); err == nil {
		t.Error("Int(bad) should fail")
	}
	if _, err := p.Int("missing"); err == nil {
		t.Error("Int(missing) should fail")
	}
	if got, err := p.UUID("id"); err != nil || got != id {
		t.Errorf("UUID(id) = %v, %v", got, err)
	}
	if _, err := p.UUID("n"); err == nil {
		t.Error("UUID(n) should fail")
	}
	if p.Get("missing") != "" {
		t.Error("Get(missing) should be empty")
	}

	keys := p.Keys()
	if len(keys) != 3 || keys[0] != "bad" || keys[1] != "id" || keys[2] != "n" {
		t.Errorf("Keys() = %v", keys)
	}

	c := p.Clone()
	c["n"] = "13"
	if p["n"] != "12" {
		t.Error("Clone shares storage")
	}
	if Params(nil).Clone() == nil {
		t.Error("Clone of nil should be empty, not nil")
	}
}

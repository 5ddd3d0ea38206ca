package el

// Prop is one key/value pair.
type Prop struct {
	Key   string
	Value Value
}

// Attr builds a prop, classifying value with V.
func Attr(key string, value any) Prop {
	return Prop{Key: key, Value: V(value)}
}

// Props is an ordered list of props. A later prop with the same key wins.
type Props []Prop

// Get returns the last value for key.
func (p Props) Get(key string) (Value, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Key == key {
			return p[i].Value, true
		}
	}
	return Value{}, false
}

// Literal returns the literal for key, or nil.
func (p Props) Literal(key string) any {
	v, ok := p.Get(key)
	if !ok || v.Kind() != KindLiteral {
		return nil
	}
	return v.Literal()
}

// Text returns the stringified literal for key.
func (p Props) Text(key string) string {
	return Stringify(p.Literal(key))
}

// With returns a copy with prop appended.
func (p Props) With(key string, value any) Props {
	out := p.clone()
	return append(out, Attr(key, value))
}

func (p Props) clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	copy(out, p)
	return out
}

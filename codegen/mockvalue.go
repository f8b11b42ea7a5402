package codegen

// MockField is one key/value pair of a MockObject.
type MockField struct {
	Key   string
	Value any
}

// MockObject is an ordered JSON-compatible object. Keys keep the order they
// were first set in, which is what makes emitted mock literals follow the
// selection order written in the source document.
type MockObject struct {
	fields []MockField
}

func NewMockObject() *MockObject {
	return &MockObject{}
}

// Set stores a value under key, replacing an existing entry in place.
func (o *MockObject) Set(key string, value any) {
	for i := range o.fields {
		if o.fields[i].Key == key {
			o.fields[i].Value = value

			return
		}
	}
	o.fields = append(o.fields, MockField{Key: key, Value: value})
}

// Get returns the value stored under key.
func (o *MockObject) Get(key string) (any, bool) {
	for _, field := range o.fields {
		if field.Key == key {
			return field.Value, true
		}
	}

	return nil, false
}

// TypeName returns the __typename value, if the object carries one.
func (o *MockObject) TypeName() string {
	if v, ok := o.Get("__typename"); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}

	return ""
}

// Fields returns the ordered key/value pairs.
func (o *MockObject) Fields() []MockField {
	return o.fields
}

// Len returns the number of keys.
func (o *MockObject) Len() int {
	return len(o.fields)
}

// Copy deep-copies the object tree. Forked union variants must not alias the
// base partial they were copied from.
func (o *MockObject) Copy() *MockObject {
	copied := &MockObject{fields: make([]MockField, len(o.fields))}
	for i, field := range o.fields {
		copied.fields[i] = MockField{Key: field.Key, Value: copyMockValue(field.Value)}
	}

	return copied
}

func copyMockValue(value any) any {
	switch v := value.(type) {
	case *MockObject:
		return v.Copy()
	case []any:
		copied := make([]any, len(v))
		for i, elem := range v {
			copied[i] = copyMockValue(elem)
		}

		return copied
	default:
		return v
	}
}

// NamedMock is the builder's output unit: one concrete mock value plus the
// generated name and the GraphQL type it represents.
type NamedMock struct {
	Name      string
	TypeName  string
	MockValue any
}

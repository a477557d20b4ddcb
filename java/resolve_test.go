package java

import "testing"

// orderResource references the inner class Order.Line as if it lived in the
// package, the way a per-file dump records it.
func orderClasses() []*ClassModel {
	order := &ClassModel{
		Name:    "com.example.Order",
		Package: "com.example",
		InnerClasses: []InnerClassModel{
			{InnerClass: "com.example.Order.Line", OuterClass: "com.example.Order", InnerName: "Line", IsStatic: true},
		},
	}
	status := &ClassModel{Name: "com.example.Order.Status", Package: "com.example", Kind: ClassKindEnum}
	resource := &ClassModel{
		Name:       "com.example.OrderResource",
		Package:    "com.example",
		SuperClass: "com.example.Line",
		Fields: []FieldModel{
			{Name: "lines", Type: NewType("java.util.List", TypeModel{Name: "com.example.Line"})},
		},
		Methods: []MethodModel{{
			Name:       "line",
			ReturnType: TypeModel{Name: "com.example.Line"},
			Parameters: []ParameterModel{{Name: "status", Type: TypeModel{Name: "com.example.Status"}}},
			Exceptions: []string{"com.example.Line"},
		}},
	}
	return []*ClassModel{order, status, resource}
}

func TestResolveInnerClassReferences(t *testing.T) {
	classes := orderClasses()
	ResolveInnerClassReferences(classes)
	resource := classes[2]

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"superclass", resource.SuperClass, "com.example.Order.Line"},
		{"field type argument", resource.Fields[0].Type.TypeArguments[0].Type.Name, "com.example.Order.Line"},
		{"field container", resource.Fields[0].Type.Name, "java.util.List"},
		{"return type", resource.Methods[0].ReturnType.Name, "com.example.Order.Line"},
		{"parameter from inner class model", resource.Methods[0].Parameters[0].Type.Name, "com.example.Order.Status"},
		{"exception", resource.Methods[0].Exceptions[0], "com.example.Order.Line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestResolveLeavesOtherPackagesAlone(t *testing.T) {
	classes := orderClasses()
	classes[2].Methods[0].ReturnType = TypeModel{Name: "org.other.Line"}
	ResolveInnerClassReferences(classes)
	if got := classes[2].Methods[0].ReturnType.Name; got != "org.other.Line" {
		t.Errorf("return type = %q, want org.other.Line", got)
	}
}

func TestExtractPackageFromInnerClassName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"com.example.Order.Line", "com.example"},
		{"Order.Line", ""},
		{"com.example.lower", "com.example"},
		{"single", ""},
	}
	for _, tt := range tests {
		if got := extractPackageFromInnerClassName(tt.in); got != tt.want {
			t.Errorf("extractPackageFromInnerClassName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

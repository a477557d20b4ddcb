package java

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
)

// ConstructorName is the method name under which constructors are recorded.
const ConstructorName = "<init>"

// ClassModel is the documentation view of one Java type: its members, the
// annotations attached to it and its raw javadoc comment.
type ClassModel struct {
	Name           string               `json:"name"`
	SimpleName     string               `json:"simpleName,omitempty"`
	Package        string               `json:"package,omitempty"`
	SuperClass     string               `json:"superClass,omitempty"`
	Interfaces     []string             `json:"interfaces,omitempty"`
	Visibility     Visibility           `json:"visibility,omitempty"`
	Kind           ClassKind            `json:"kind,omitempty"`
	IsAbstract     bool                 `json:"isAbstract,omitempty"`
	IsDeprecated   bool                 `json:"isDeprecated,omitempty"`
	Javadoc        string               `json:"javadoc,omitempty"`
	Annotations    []AnnotationModel    `json:"annotations,omitempty"`
	InnerClasses   []InnerClassModel    `json:"innerClasses,omitempty"`
	EnumConstants  []EnumConstantModel  `json:"enumConstants,omitempty"`
	Fields         []FieldModel         `json:"fields,omitempty"`
	Methods        []MethodModel        `json:"methods,omitempty"`
	TypeParameters []TypeParameterModel `json:"typeParameters,omitempty"`
}

type EnumConstantModel struct {
	Name      string   `json:"name"`
	Arguments []string `json:"arguments,omitempty"`
}

type FieldModel struct {
	Name         string            `json:"name"`
	Type         TypeModel         `json:"type"`
	Visibility   Visibility        `json:"visibility,omitempty"`
	IsStatic     bool              `json:"isStatic,omitempty"`
	IsFinal      bool              `json:"isFinal,omitempty"`
	IsTransient  bool              `json:"isTransient,omitempty"`
	IsDeprecated bool              `json:"isDeprecated,omitempty"`
	Javadoc      string            `json:"javadoc,omitempty"`
	Annotations  []AnnotationModel `json:"annotations,omitempty"`
}

type MethodModel struct {
	Name           string               `json:"name"`
	ReturnType     TypeModel            `json:"returnType"`
	Parameters     []ParameterModel     `json:"parameters,omitempty"`
	Visibility     Visibility           `json:"visibility,omitempty"`
	IsStatic       bool                 `json:"isStatic,omitempty"`
	IsAbstract     bool                 `json:"isAbstract,omitempty"`
	IsDeprecated   bool                 `json:"isDeprecated,omitempty"`
	Javadoc        string               `json:"javadoc,omitempty"`
	Annotations    []AnnotationModel    `json:"annotations,omitempty"`
	Exceptions     []string             `json:"exceptions,omitempty"`
	TypeParameters []TypeParameterModel `json:"typeParameters,omitempty"`
}

func (m *MethodModel) IsConstructor() bool {
	return m.Name == ConstructorName
}

type ParameterModel struct {
	Name        string            `json:"name"`
	Type        TypeModel         `json:"type"`
	IsFinal     bool              `json:"isFinal,omitempty"`
	Annotations []AnnotationModel `json:"annotations,omitempty"`
}

type TypeModel struct {
	Name          string              `json:"name"`
	ArrayDepth    int                 `json:"arrayDepth,omitempty"`
	TypeArguments []TypeArgumentModel `json:"typeArguments,omitempty"`
}

type TypeArgumentModel struct {
	Type       *TypeModel `json:"type,omitempty"`
	IsWildcard bool       `json:"isWildcard,omitempty"`
	BoundKind  string     `json:"boundKind,omitempty"` // "extends", "super", or "" for unbounded
	Bound      *TypeModel `json:"bound,omitempty"`
}

type TypeParameterModel struct {
	Name   string      `json:"name"`
	Bounds []TypeModel `json:"bounds,omitempty"`
}

type AnnotationModel struct {
	Type   string         `json:"type"`
	Values map[string]any `json:"values,omitempty"`
}

type InnerClassModel struct {
	InnerClass string     `json:"innerClass"`
	OuterClass string     `json:"outerClass"`
	InnerName  string     `json:"innerName"`
	Visibility Visibility `json:"visibility,omitempty"`
	IsStatic   bool       `json:"isStatic,omitempty"`
}

// Constructors returns the constructors of the class in declaration order.
func (c *ClassModel) Constructors() []*MethodModel {
	var result []*MethodModel
	for i := range c.Methods {
		if c.Methods[i].IsConstructor() {
			result = append(result, &c.Methods[i])
		}
	}
	return result
}

// DeclaredMethods returns every method except constructors and static
// initializers.
func (c *ClassModel) DeclaredMethods() []*MethodModel {
	var result []*MethodModel
	for i := range c.Methods {
		m := &c.Methods[i]
		if m.IsConstructor() || m.Name == "<clinit>" {
			continue
		}
		result = append(result, m)
	}
	return result
}

func (c *ClassModel) IsEnum() bool {
	return c.Kind == ClassKindEnum
}

func (c *ClassModel) EnumNames() []string {
	if !c.IsEnum() {
		return nil
	}
	names := make([]string, len(c.EnumConstants))
	for i, ec := range c.EnumConstants {
		names[i] = ec.Name
	}
	return names
}

// Type returns the raw (non-parameterized) type referring to this class.
func (c *ClassModel) Type() TypeModel {
	return TypeModel{Name: c.Name}
}

func (c *ClassModel) simpleName() string {
	if c.SimpleName != "" {
		return c.SimpleName
	}
	return extractSimpleName(c.Name)
}

func (t TypeModel) IsPrimitive() bool {
	if t.ArrayDepth > 0 {
		return false
	}
	switch t.Name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t TypeModel) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t TypeModel) IsVoid() bool {
	return (t.Name == "void" || t.Name == "java.lang.Void" || t.Name == "Void") && t.ArrayDepth == 0
}

// SimpleName is the last dotted component of the type name.
func (t TypeModel) SimpleName() string {
	return extractSimpleName(t.Name)
}

// ElementType strips one array dimension.
func (t TypeModel) ElementType() TypeModel {
	if t.ArrayDepth == 0 {
		return t
	}
	return TypeModel{Name: t.Name, ArrayDepth: t.ArrayDepth - 1, TypeArguments: t.TypeArguments}
}

// Arguments returns the concrete type arguments, resolving wildcard bounds.
// Unbounded wildcards are skipped.
func (t TypeModel) Arguments() []TypeModel {
	var result []TypeModel
	for _, ta := range t.TypeArguments {
		switch {
		case ta.Type != nil:
			result = append(result, *ta.Type)
		case ta.IsWildcard && ta.Bound != nil:
			result = append(result, *ta.Bound)
		}
	}
	return result
}

func (t TypeModel) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.TypeArguments) > 0 {
		sb.WriteString("<")
		for i, ta := range t.TypeArguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			if ta.IsWildcard {
				sb.WriteString("?")
				if ta.BoundKind != "" && ta.Bound != nil {
					sb.WriteString(" " + ta.BoundKind + " " + ta.Bound.String())
				}
			} else if ta.Type != nil {
				sb.WriteString(ta.Type.String())
			}
		}
		sb.WriteString(">")
	}
	for i := 0; i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

// NewType builds a type from a name and optional concrete arguments.
func NewType(name string, args ...TypeModel) TypeModel {
	t := TypeModel{Name: name}
	for i := range args {
		arg := args[i]
		t.TypeArguments = append(t.TypeArguments, TypeArgumentModel{Type: &arg})
	}
	return t
}

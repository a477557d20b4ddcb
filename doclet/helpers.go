package doclet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dhamidi/doclet/java"
)

const (
	objectClass       = "java.lang.Object"
	multipartFormData = "multipart/form-data"
)

var primitiveTypes = map[string]Name{
	"boolean":                  {"boolean", ""},
	"java.lang.Boolean":        {"boolean", ""},
	"byte":                     {"string", "byte"},
	"java.lang.Byte":           {"string", "byte"},
	"char":                     {"string", ""},
	"java.lang.Character":      {"string", ""},
	"short":                    {"integer", "int32"},
	"java.lang.Short":          {"integer", "int32"},
	"int":                      {"integer", "int32"},
	"java.lang.Integer":        {"integer", "int32"},
	"long":                     {"integer", "int64"},
	"java.lang.Long":           {"integer", "int64"},
	"float":                    {"number", "float"},
	"java.lang.Float":          {"number", "float"},
	"double":                   {"number", "double"},
	"java.lang.Double":         {"number", "double"},
	"java.lang.String":         {"string", ""},
	"java.math.BigInteger":     {"integer", ""},
	"java.math.BigDecimal":     {"number", ""},
	"java.util.Date":           {"string", "date-time"},
	"java.sql.Timestamp":       {"string", "date-time"},
	"java.time.Instant":        {"string", "date-time"},
	"java.time.LocalDateTime":  {"string", "date-time"},
	"java.time.OffsetDateTime": {"string", "date-time"},
	"java.time.ZonedDateTime":  {"string", "date-time"},
	"java.time.LocalDate":      {"string", "date"},
	"java.util.UUID":           {"string", ""},
	"java.net.URI":             {"string", ""},
	"java.net.URL":             {"string", ""},
}

var primitivesBySimpleName = func() map[string]Name {
	m := make(map[string]Name, len(primitiveTypes))
	for name, n := range primitiveTypes {
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			m[name[i+1:]] = n
		}
	}
	return m
}()

// PrimitiveTypeOf returns the output type of a Java primitive, boxed or
// value type, given by qualified or simple name.
func PrimitiveTypeOf(javaName string) (Name, bool) {
	javaName = strings.TrimSpace(javaName)
	if n, ok := primitiveTypes[javaName]; ok {
		return n, true
	}
	if !strings.Contains(javaName, ".") {
		n, ok := primitivesBySimpleName[javaName]
		return n, ok
	}
	return Name{}, false
}

func isPrimitiveType(t java.TypeModel) bool {
	if t.IsArray() {
		return false
	}
	_, ok := PrimitiveTypeOf(t.Name)
	return ok
}

var (
	collectionNames = []string{
		"java.util.Collection", "java.util.List", "java.util.ArrayList", "java.util.LinkedList",
		"java.util.Queue", "java.util.Deque", "java.util.ArrayDeque", "java.lang.Iterable",
		"java.util.Set", "java.util.HashSet", "java.util.LinkedHashSet", "java.util.TreeSet",
		"java.util.SortedSet", "java.util.NavigableSet", "java.util.EnumSet",
		"com.google.common.collect.ImmutableList", "com.google.common.collect.ImmutableSet",
	}
	setNames = []string{
		"java.util.Set", "java.util.HashSet", "java.util.LinkedHashSet", "java.util.TreeSet",
		"java.util.SortedSet", "java.util.NavigableSet", "java.util.EnumSet",
		"com.google.common.collect.ImmutableSet",
	}
	mapNames = []string{
		"java.util.Map", "java.util.HashMap", "java.util.LinkedHashMap", "java.util.TreeMap",
		"java.util.SortedMap", "java.util.NavigableMap", "java.util.concurrent.ConcurrentMap",
		"java.util.concurrent.ConcurrentHashMap", "javax.ws.rs.core.MultivaluedMap",
		"com.google.common.collect.ImmutableMap",
	}
)

// matchesTypeName compares a possibly unqualified type name with a list of
// qualified names.
func matchesTypeName(name string, qualified []string) bool {
	name = strings.TrimSpace(name)
	for _, q := range qualified {
		if name == q {
			return true
		}
		if !strings.Contains(name, ".") && strings.HasSuffix(q, "."+name) {
			return true
		}
	}
	return false
}

// IsCollection reports whether a type name is a collection rendered as an
// array.
func IsCollection(name string) bool { return matchesTypeName(name, collectionNames) }

func IsSet(name string) bool { return matchesTypeName(name, setNames) }

func IsMap(name string) bool { return matchesTypeName(name, mapNames) }

// ContainerElement returns the element type of an array or a parameterized
// collection. byte[] is binary data, not a container.
func ContainerElement(t java.TypeModel) (java.TypeModel, bool) {
	if t.IsArray() {
		if t.ArrayDepth == 1 && t.Name == "byte" {
			return java.TypeModel{}, false
		}
		return t.ElementType(), true
	}
	if IsCollection(t.Name) {
		if args := t.Arguments(); len(args) > 0 {
			return args[0], true
		}
	}
	return java.TypeModel{}, false
}

// unwrap replaces a configured generic wrapper type by its first argument.
func (o *Options) unwrap(t java.TypeModel) java.TypeModel {
	if t.IsArray() || !matchesTypeName(t.Name, o.GenericWrapperTypes) {
		return t
	}
	if args := t.Arguments(); len(args) > 0 {
		return args[0]
	}
	return t
}

// parameterizedTypes collects the type arguments of t, recursively.
func parameterizedTypes(t java.TypeModel) []java.TypeModel {
	var result []java.TypeModel
	for _, arg := range t.Arguments() {
		result = append(result, arg)
		result = append(result, parameterizedTypes(arg)...)
	}
	return result
}

func isNumericType(typeName string) bool {
	return typeName == "integer" || typeName == "number"
}

// parseNumber reads value as a number of the given output type and format.
func parseNumber(typeName, format, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	switch typeName {
	case "integer":
		bits := 64
		if format == "int32" {
			bits = 32
		}
		n, err := strconv.ParseInt(value, 10, bits)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.New(n, 0), nil
	case "number":
		if format == "float" {
			if _, err := strconv.ParseFloat(value, 32); err != nil {
				return decimal.Decimal{}, err
			}
		}
		return decimal.NewFromString(value)
	}
	return decimal.Decimal{}, fmt.Errorf("%s is not a numeric type", typeName)
}

// verifyNumericValue checks that a min or max value is a number of the
// parameter's type.
func verifyNumericValue(context, typeName, format, value string) error {
	if value == "" {
		return nil
	}
	if _, err := parseNumber(typeName, format, value); err != nil {
		return fmt.Errorf("%s: %q is not a valid %s: %w", context, value, typeName, ErrConstraintViolation)
	}
	return nil
}

// verifyValue checks a default value against the parameter's type.
func verifyValue(context, typeName, format, value string) error {
	switch {
	case isNumericType(typeName):
		return verifyNumericValue(context, typeName, format, value)
	case typeName == "boolean":
		if !strings.EqualFold(value, "true") && !strings.EqualFold(value, "false") {
			return fmt.Errorf("%s: %q is not a valid boolean: %w", context, value, ErrConstraintViolation)
		}
	}
	return nil
}

// compareNumericValues compares two values exactly in the parameter's type.
func compareNumericValues(context, typeName, format, a, b string) (int, error) {
	x, err := parseNumber(typeName, format, a)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a valid %s: %w", context, a, typeName, ErrConstraintViolation)
	}
	y, err := parseNumber(typeName, format, b)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a valid %s: %w", context, b, typeName, ErrConstraintViolation)
	}
	return x.Cmp(y), nil
}

var listSeparator = regexp.MustCompile(`[\s,]+`)

// splitList splits a tag value such as "a, b c" into its words.
func splitList(s string) []string {
	var result []string
	for _, part := range listSeparator.Split(strings.TrimSpace(s), -1) {
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// nameValue splits "name rest of value" at the first whitespace.
func nameValue(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' })
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// resourceTagPath normalizes a resource tag value: lower case, trimmed,
// spaces turned into underscores.
func resourceTagPath(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), " ", "_")
}

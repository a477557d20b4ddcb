package java

import (
	"strings"
)

// ResolveInnerClassReferences rewrites type references of the form
// "pkg.Inner" to "pkg.Outer.Inner" when Inner is a known inner class of a
// class in pkg. Class models dumped file by file cannot see inner classes
// declared in sibling files, so a reference to Outer.Inner from another file
// is recorded as if Inner lived directly in the package.
func ResolveInnerClassReferences(classes []*ClassModel) {
	innerClassMap := buildInnerClassMap(classes)
	if len(innerClassMap) == 0 {
		return
	}
	for _, model := range classes {
		fixClassModelTypes(model, innerClassMap)
	}
}

// buildInnerClassMap maps package -> simple name -> qualified inner class name.
func buildInnerClassMap(classes []*ClassModel) map[string]map[string]string {
	inner := make(map[string]bool)
	for _, model := range classes {
		for _, ic := range model.InnerClasses {
			inner[ic.InnerClass] = true
		}
		if isInnerClass(model) {
			inner[model.Name] = true
		}
	}

	result := make(map[string]map[string]string)
	for fullName := range inner {
		pkg := extractPackageFromInnerClassName(fullName)
		if pkg == "" {
			continue
		}
		if result[pkg] == nil {
			result[pkg] = make(map[string]string)
		}
		result[pkg][extractSimpleName(fullName)] = fullName
	}
	return result
}

// extractPackageFromInnerClassName treats the leading lower-case components
// as the package: "org.acme.Outer.Inner" -> "org.acme".
func extractPackageFromInnerClassName(innerClassName string) string {
	parts := strings.Split(innerClassName, ".")
	for i, part := range parts {
		if len(part) > 0 && part[0] >= 'A' && part[0] <= 'Z' {
			if i == 0 {
				return ""
			}
			return strings.Join(parts[:i], ".")
		}
	}
	if len(parts) > 1 {
		return strings.Join(parts[:len(parts)-1], ".")
	}
	return ""
}

func isInnerClass(model *ClassModel) bool {
	if model.Package == "" {
		return false
	}
	return strings.Contains(strings.TrimPrefix(model.Name, model.Package+"."), ".")
}

func fixClassModelTypes(model *ClassModel, innerClassMap map[string]map[string]string) {
	if model.SuperClass != "" {
		model.SuperClass = fixTypeName(model.SuperClass, innerClassMap)
	}
	for i := range model.Interfaces {
		model.Interfaces[i] = fixTypeName(model.Interfaces[i], innerClassMap)
	}
	for i := range model.Fields {
		fixType(&model.Fields[i].Type, innerClassMap)
	}
	for i := range model.Methods {
		m := &model.Methods[i]
		fixType(&m.ReturnType, innerClassMap)
		for j := range m.Parameters {
			fixType(&m.Parameters[j].Type, innerClassMap)
		}
		for j := range m.Exceptions {
			m.Exceptions[j] = fixTypeName(m.Exceptions[j], innerClassMap)
		}
	}
}

func fixType(t *TypeModel, innerClassMap map[string]map[string]string) {
	t.Name = fixTypeName(t.Name, innerClassMap)
	for i := range t.TypeArguments {
		if t.TypeArguments[i].Type != nil {
			fixType(t.TypeArguments[i].Type, innerClassMap)
		}
		if t.TypeArguments[i].Bound != nil {
			fixType(t.TypeArguments[i].Bound, innerClassMap)
		}
	}
}

func fixTypeName(typeName string, innerClassMap map[string]map[string]string) string {
	lastDot := strings.LastIndex(typeName, ".")
	if lastDot == -1 {
		return typeName
	}
	if inner, ok := innerClassMap[typeName[:lastDot]]; ok {
		if fullName, ok := inner[typeName[lastDot+1:]]; ok {
			return fullName
		}
	}
	return typeName
}

func extractSimpleName(fullName string) string {
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}

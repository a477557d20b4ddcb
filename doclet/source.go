package doclet

import (
	"github.com/dhamidi/doclet/java"
	"github.com/dhamidi/doclet/java/javadoc"
)

// docSource gives access to the parsed javadoc of the known classes and to
// the methods a method overrides.
type docSource struct {
	all   *java.ClassSet
	cache map[string]*javadoc.DocComment
}

func newDocSource(all *java.ClassSet) *docSource {
	return &docSource{all: all, cache: make(map[string]*javadoc.DocComment)}
}

func (s *docSource) parse(raw string) *javadoc.DocComment {
	if doc, ok := s.cache[raw]; ok {
		return doc
	}
	doc := javadoc.Parse(raw)
	s.cache[raw] = doc
	return doc
}

// ancestors returns the supertypes of c breadth first: superclass before
// interfaces, each class once. Unknown supertypes and java.lang.Object end
// their branch.
func (s *docSource) ancestors(c *java.ClassModel) []*java.ClassModel {
	var result []*java.ClassModel
	seen := map[string]bool{c.Name: true}
	queue := supertypeNames(c)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if name == "" || name == objectClass || seen[name] {
			continue
		}
		seen[name] = true
		sup := s.all.Find(name)
		if sup == nil {
			continue
		}
		result = append(result, sup)
		queue = append(queue, supertypeNames(sup)...)
	}
	return result
}

func supertypeNames(c *java.ClassModel) []string {
	names := make([]string, 0, 1+len(c.Interfaces))
	names = append(names, c.SuperClass)
	return append(names, c.Interfaces...)
}

// superclass returns the known superclass of c, or nil at the root of the
// hierarchy.
func (s *docSource) superclass(c *java.ClassModel) *java.ClassModel {
	if c.SuperClass == "" || c.SuperClass == objectClass {
		return nil
	}
	return s.all.Find(c.SuperClass)
}

// docLevel is one place the documentation of a method can come from: the
// method itself or a method it overrides.
type docLevel struct {
	class  *java.ClassModel
	method *java.MethodModel
	doc    *javadoc.DocComment
}

// levels is ordered most derived first; inherited values are taken from the
// first level that has them.
type levels []docLevel

func (s *docSource) methodLevels(c *java.ClassModel, m *java.MethodModel) levels {
	result := levels{{class: c, method: m, doc: s.parse(m.Javadoc)}}
	for _, anc := range s.ancestors(c) {
		for _, candidate := range anc.DeclaredMethods() {
			if overrides(m, candidate, anc) {
				result = append(result, docLevel{class: anc, method: candidate, doc: s.parse(candidate.Javadoc)})
				break
			}
		}
	}
	return result
}

// overrides reports whether m has the signature of base, declared in anc.
// Parameters typed by a type variable of anc match any type.
func overrides(m, base *java.MethodModel, anc *java.ClassModel) bool {
	if m.Name != base.Name || len(m.Parameters) != len(base.Parameters) {
		return false
	}
	for i := range m.Parameters {
		a, b := m.Parameters[i].Type, base.Parameters[i].Type
		if a.ArrayDepth != b.ArrayDepth {
			return false
		}
		if a.SimpleName() == b.SimpleName() || isTypeVariable(b.Name, anc, base) {
			continue
		}
		return false
	}
	return true
}

func isTypeVariable(name string, c *java.ClassModel, m *java.MethodModel) bool {
	for _, tp := range c.TypeParameters {
		if tp.Name == name {
			return true
		}
	}
	for _, tp := range m.TypeParameters {
		if tp.Name == name {
			return true
		}
	}
	return false
}

func (ls levels) tagValues(names []string) []string {
	for _, l := range ls {
		if values := l.doc.TagValues(names...); len(values) > 0 {
			return values
		}
	}
	return nil
}

func (ls levels) tagValue(names []string) (string, bool) {
	for _, l := range ls {
		if v, ok := l.doc.TagValue(names...); ok {
			return v, true
		}
	}
	return "", false
}

func (ls levels) hasTag(names []string) bool {
	for _, l := range ls {
		if l.doc.HasTag(names...) {
			return true
		}
	}
	return false
}

func (ls levels) annotation(names []string) (java.AnnotationModel, bool) {
	for _, l := range ls {
		if a, ok := java.FindAnnotation(l.method.Annotations, names); ok {
			return a, true
		}
	}
	return java.AnnotationModel{}, false
}

func (ls levels) firstSentence() string {
	for _, l := range ls {
		if s := l.doc.FirstSentence(); s != "" {
			return s
		}
	}
	return ""
}

func (ls levels) body() string {
	for _, l := range ls {
		if l.doc.Body != "" {
			return l.doc.Body
		}
	}
	return ""
}

// param returns parameter i of the method, taking its annotations from the
// first level that annotates it. JAX-RS bindings are often declared on an
// interface method only.
func (ls levels) param(i int) java.ParameterModel {
	p := ls[0].method.Parameters[i]
	if len(p.Annotations) > 0 {
		return p
	}
	for _, l := range ls[1:] {
		if anns := l.method.Parameters[i].Annotations; len(anns) > 0 {
			p.Annotations = anns
			return p
		}
	}
	return p
}

// paramText returns the @param description of parameter i.
func (ls levels) paramText(i int) string {
	for _, l := range ls {
		if text := l.doc.ParamText(l.method.Parameters[i].Name); text != "" {
			return text
		}
	}
	return ""
}

// classAnnotation looks an annotation up on c and then on its ancestors.
func (s *docSource) classAnnotation(c *java.ClassModel, names []string) (java.AnnotationModel, bool) {
	if a, ok := java.FindAnnotation(c.Annotations, names); ok {
		return a, true
	}
	for _, anc := range s.ancestors(c) {
		if a, ok := java.FindAnnotation(anc.Annotations, names); ok {
			return a, true
		}
	}
	return java.AnnotationModel{}, false
}

func (s *docSource) classTag(c *java.ClassModel, names []string) (string, bool) {
	return s.parse(c.Javadoc).TagValue(names...)
}

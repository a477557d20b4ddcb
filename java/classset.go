package java

// ClassSet is an ordered, immutable collection of class models with lookup by
// qualified or simple name.
type ClassSet struct {
	classes  []*ClassModel
	byName   map[string]*ClassModel
	bySimple map[string]*ClassModel
}

func NewClassSet(classes ...*ClassModel) *ClassSet {
	s := &ClassSet{
		byName:   make(map[string]*ClassModel, len(classes)),
		bySimple: make(map[string]*ClassModel, len(classes)),
	}
	for _, c := range classes {
		if c == nil {
			continue
		}
		if _, dup := s.byName[c.Name]; dup {
			continue
		}
		s.classes = append(s.classes, c)
		s.byName[c.Name] = c
		simple := c.simpleName()
		if _, taken := s.bySimple[simple]; !taken {
			s.bySimple[simple] = c
		}
	}
	return s
}

func (s *ClassSet) All() []*ClassModel {
	if s == nil {
		return nil
	}
	return s.classes
}

func (s *ClassSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.classes)
}

// Find looks a class up by qualified name, falling back to the simple name
// for unqualified references.
func (s *ClassSet) Find(name string) *ClassModel {
	if s == nil || name == "" {
		return nil
	}
	if c, ok := s.byName[name]; ok {
		return c
	}
	if c, ok := s.bySimple[extractSimpleName(name)]; ok {
		// a qualified name must agree with the class found by simple name
		if extractSimpleName(name) == name || c.Name == name {
			return c
		}
	}
	return nil
}

func (s *ClassSet) FindType(t TypeModel) *ClassModel {
	return s.Find(t.Name)
}

func (s *ClassSet) Contains(c *ClassModel) bool {
	if s == nil || c == nil {
		return false
	}
	found, ok := s.byName[c.Name]
	return ok && found == c
}

// Without returns a copy of the set minus c.
func (s *ClassSet) Without(c *ClassModel) *ClassSet {
	var kept []*ClassModel
	for _, other := range s.All() {
		if other != c {
			kept = append(kept, other)
		}
	}
	return NewClassSet(kept...)
}

// Union returns a set holding the classes of s followed by those of other.
func (s *ClassSet) Union(other *ClassSet) *ClassSet {
	all := make([]*ClassModel, 0, s.Len()+other.Len())
	all = append(all, s.All()...)
	all = append(all, other.All()...)
	return NewClassSet(all...)
}

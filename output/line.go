package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/doclet/doclet"
)

// LineEncoder writes one tab separated line per resource, operation and
// parameter, for grepping and diffing.
type LineEncoder struct {
	w    io.Writer
	decl *doclet.Declaration
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

// EncodeAll writes every declaration in listing order.
func (e *LineEncoder) EncodeAll(decls doclet.Declarations) error {
	for _, decl := range decls.Sorted() {
		if err := e.Encode(decl); err != nil {
			return err
		}
	}
	return nil
}

func (e *LineEncoder) Encode(decl *doclet.Declaration) error {
	e.decl = decl
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	d := e.decl

	fmt.Fprintf(&sb, "resource\t%s\t%s\t%s\n", d.ResourcePath, e.priorityStr(), dash(d.Description))

	for _, api := range d.Apis {
		for _, op := range api.Operations {
			fmt.Fprintf(&sb, "operation\t%s\t%s\t%s\t%s\t%s\n",
				op.Method,
				api.Path,
				op.Nickname,
				e.typeStr(op.Type, op.Items),
				e.operationFlagsStr(op),
			)
			for _, p := range op.Parameters {
				fmt.Fprintf(&sb, "param\t%s\t%s\t%s\t%s\n",
					p.ParamType,
					p.Name,
					e.typeStr(p.Type, p.Items),
					e.paramFlagsStr(p),
				)
			}
			for _, msg := range op.ResponseMessages {
				fmt.Fprintf(&sb, "response\t%d\t%s\t%s\n", msg.Code, dash(msg.ResponseModel), dash(msg.Message))
			}
		}
	}

	for _, id := range d.ModelIDs() {
		fmt.Fprintf(&sb, "model\t%s\t%s\n", id, e.propertiesStr(d.Models[id]))
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) priorityStr() string {
	if e.decl.Priority == doclet.PriorityUnset {
		return "-"
	}
	return strconv.Itoa(e.decl.Priority)
}

func (e *LineEncoder) typeStr(typ string, items *doclet.Items) string {
	if typ == "" {
		return "-"
	}
	if items == nil {
		return typ
	}
	elem := items.Ref
	if elem == "" {
		elem = items.Type
	}
	return typ + "<" + elem + ">"
}

func (e *LineEncoder) operationFlagsStr(op *doclet.Operation) string {
	var flags []string
	if op.Deprecated {
		flags = append(flags, "deprecated")
	}
	if a := op.Authorizations; a != nil {
		if len(a.OAuth2) == 0 {
			flags = append(flags, "noauth")
		}
		for _, s := range a.OAuth2 {
			flags = append(flags, "scope="+s.Scope)
		}
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func (e *LineEncoder) paramFlagsStr(p doclet.ApiParameter) string {
	var flags []string
	if p.Required != nil && *p.Required {
		flags = append(flags, "required")
	}
	if p.AllowMultiple != nil && *p.AllowMultiple {
		flags = append(flags, "multiple")
	}
	if p.DefaultValue != "" {
		flags = append(flags, "default="+p.DefaultValue)
	}
	if p.Minimum != "" {
		flags = append(flags, "min="+p.Minimum)
	}
	if p.Maximum != "" {
		flags = append(flags, "max="+p.Maximum)
	}
	if len(p.Enum) > 0 {
		flags = append(flags, "enum="+strings.Join(p.Enum, "|"))
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func (e *LineEncoder) propertiesStr(m doclet.Model) string {
	if len(m.Properties) == 0 {
		return "-"
	}
	var parts []string
	for _, p := range m.Properties {
		typ := p.Type
		if p.Ref != "" {
			typ = p.Ref
		}
		parts = append(parts, p.Name+":"+e.typeStr(typ, p.Items))
	}
	return strings.Join(parts, ",")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

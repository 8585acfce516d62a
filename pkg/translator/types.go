package translator

import "pyrs/translator-go/pkg/ast"

// UnknownType is emitted wherever no Rust type can be derived.
const UnknownType = "unknown_type"

const (
	rustInt    = "i32"
	rustFloat  = "f32"
	rustString = "String"
	rustBool   = "bool"
)

// TypeMapper turns Python annotations and literal kinds into Rust type names.
// It has no state; both paths share the same names for the same type.
type TypeMapper struct{}

func NewTypeMapper() *TypeMapper {
	return &TypeMapper{}
}

// MapAnnotation maps a parameter, return or variable annotation. A missing or
// unrecognised annotation maps to UnknownType.
func (m *TypeMapper) MapAnnotation(expr ast.Expression) string {
	switch t := expr.(type) {
	case *ast.Name:
		if t == nil {
			return UnknownType
		}
		if mapped, ok := m.mapSimple(t.ID); ok {
			return mapped
		}
	case *ast.Constant:
		// Quoted forward references: `x: "int"`.
		if t != nil && t.Kind == ast.ConstantString {
			if mapped, ok := m.mapSimple(t.Value); ok {
				return mapped
			}
		}
	}
	return UnknownType
}

// InferLiteral derives a type from a literal when there is no annotation.
func (m *TypeMapper) InferLiteral(value *ast.Constant) string {
	if value == nil {
		return UnknownType
	}
	switch value.Kind {
	case ast.ConstantString:
		return rustString
	case ast.ConstantInt:
		return rustInt
	case ast.ConstantFloat:
		return rustFloat
	case ast.ConstantBool:
		return rustBool
	case ast.ConstantNone:
		return "Option<" + UnknownType + ">"
	}
	return UnknownType
}

// ParamType prefers the annotation and falls back to the literal default.
func (m *TypeMapper) ParamType(arg *ast.Arg) string {
	if arg == nil {
		return UnknownType
	}
	if arg.Annotation != nil {
		return m.MapAnnotation(arg.Annotation)
	}
	if lit, ok := arg.Default.(*ast.Constant); ok {
		return m.InferLiteral(lit)
	}
	return UnknownType
}

func (m *TypeMapper) mapSimple(name string) (string, bool) {
	switch name {
	case "int":
		return rustInt, true
	case "float":
		return rustFloat, true
	case "str":
		return rustString, true
	case "bool":
		return rustBool, true
	}
	return "", false
}

package document

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamType is the value type of an object parameter.
type ParamType uint8

const (
	ParamInt ParamType = iota
	ParamFloat
	ParamString
	ParamExpr
)

func (t ParamType) String() string {
	switch t {
	case ParamInt:
		return "int"
	case ParamFloat:
		return "float"
	case ParamString:
		return "string"
	case ParamExpr:
		return "expression"
	default:
		return "unknown"
	}
}

// Property names the element field an object parameter drives.
type Property uint8

const (
	PropNumeric Property = iota
	PropPositionX
	PropPositionY
	PropStyle
	PropAnchor
	PropAngle1
	PropAngle2
	PropRadius
	PropMinorAxis
	PropRotation
	PropScale
	PropLineWidth
	PropColor
	PropSubstring
)

var propertyNames = [...]string{
	PropNumeric:   "numeric",
	PropPositionX: "x position",
	PropPositionY: "y position",
	PropStyle:     "style",
	PropAnchor:    "anchoring",
	PropAngle1:    "start angle",
	PropAngle2:    "end angle",
	PropRadius:    "radius",
	PropMinorAxis: "minor axis",
	PropRotation:  "rotation",
	PropScale:     "scale",
	PropLineWidth: "linewidth",
	PropColor:     "color",
	PropSubstring: "substring",
}

func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return "unknown"
}

// Geometric reports whether changing the property can change a bounding box.
func (p Property) Geometric() bool {
	switch p {
	case PropColor, PropNumeric:
		return false
	}
	return true
}

// ObjectParam is a typed parameter declared on an object, or an override of
// one on an instance.
type ObjectParam struct {
	Key   string
	Type  ParamType
	Which Property
	Int   int
	Float float32
	Str   string // string value, or expression text for ParamExpr
}

// IntParam declares an integer parameter.
func IntParam(key string, which Property, v int) *ObjectParam {
	return &ObjectParam{Key: key, Type: ParamInt, Which: which, Int: v}
}

// FloatParam declares a float parameter.
func FloatParam(key string, which Property, v float32) *ObjectParam {
	return &ObjectParam{Key: key, Type: ParamFloat, Which: which, Float: v}
}

// StringParam declares a string parameter substituted into labels.
func StringParam(key, v string) *ObjectParam {
	return &ObjectParam{Key: key, Type: ParamString, Which: PropSubstring, Str: v}
}

// ExprParam declares an expression parameter.
func ExprParam(key string, which Property, expr string) *ObjectParam {
	return &ObjectParam{Key: key, Type: ParamExpr, Which: which, Str: expr}
}

// Equal compares type and value. Which is descriptive and not compared.
func (p *ObjectParam) Equal(o *ObjectParam) bool {
	if p.Key != o.Key || p.Type != o.Type {
		return false
	}
	switch p.Type {
	case ParamInt:
		return p.Int == o.Int
	case ParamFloat:
		return p.Float == o.Float
	default:
		return p.Str == o.Str
	}
}

func (p *ObjectParam) clone() *ObjectParam {
	cp := *p
	return &cp
}

// Text renders the value for labels and expression evaluation.
func (p *ObjectParam) Text() string {
	switch p.Type {
	case ParamInt:
		return strconv.Itoa(p.Int)
	case ParamFloat:
		return strconv.FormatFloat(float64(p.Float), 'g', -1, 32)
	default:
		return p.Str
	}
}

// Number resolves the parameter to a numeric value. Expressions go through
// the environment's evaluator; without one, the expression text itself
// must parse as a number.
func (p *ObjectParam) Number(env *Env, caller *Instance) (float64, error) {
	switch p.Type {
	case ParamInt:
		return float64(p.Int), nil
	case ParamFloat:
		return float64(p.Float), nil
	case ParamExpr:
		text := p.Str
		if env != nil && env.Expr != nil {
			v, err := env.Expr.Eval(p.Str, caller)
			if err != nil {
				return 0, fmt.Errorf("evaluate %q: %w", p.Key, err)
			}
			text = v
		}
		return parseNumber(p.Key, text)
	default:
		return parseNumber(p.Key, p.Str)
	}
}

func parseNumber(key, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q is not numeric: %w", key, err)
	}
	return v, nil
}

func copyObjectParams(in []*ObjectParam) []*ObjectParam {
	if len(in) == 0 {
		return nil
	}
	out := make([]*ObjectParam, len(in))
	for i, p := range in {
		out[i] = p.clone()
	}
	return out
}

func findObjectParam(params []*ObjectParam, key string) *ObjectParam {
	for _, p := range params {
		if p.Key == key {
			return p
		}
	}
	return nil
}

// sameParamSet is true when every key exists on both sides with an equal
// value, regardless of order.
func sameParamSet(a, b []*ObjectParam) bool {
	if len(a) != len(b) {
		return false
	}
	for _, p := range a {
		q := findObjectParam(b, p.Key)
		if q == nil || !p.Equal(q) {
			return false
		}
	}
	return true
}

// TargetKind says which part of an element an element parameter drives.
type TargetKind uint8

const (
	// TargetField drives a whole field (rotation, style, radius, ...).
	TargetField TargetKind = iota
	// TargetPoint drives one coordinate of a point in the element.
	TargetPoint
	// TargetPathPoint drives a point of one sub-element of a path.
	TargetPathPoint
	// TargetRef forwards a value to the parameter Ref of a nested instance.
	TargetRef
)

// ParamTarget locates the driven field. Only the members relevant to Kind
// are meaningful.
type ParamTarget struct {
	Kind  TargetKind
	Point int
	Part  int
	Ref   string
}

// ElementParam marks a field of an element as driven by the object
// parameter named Key.
type ElementParam struct {
	Key    string
	Target ParamTarget
}

// FieldParam drives a whole field.
func FieldParam(key string) *ElementParam {
	return &ElementParam{Key: key}
}

// PointParam drives one point of a polygon, arc or spline.
func PointParam(key string, point int) *ElementParam {
	return &ElementParam{Key: key, Target: ParamTarget{Kind: TargetPoint, Point: point}}
}

// PathPointParam drives a point of a path's sub-element.
func PathPointParam(key string, part, point int) *ElementParam {
	return &ElementParam{Key: key, Target: ParamTarget{Kind: TargetPathPoint, Part: part, Point: point}}
}

// RefParam forwards the enclosing object's parameter key into the nested
// instance's parameter named ref.
func RefParam(key, ref string) *ElementParam {
	return &ElementParam{Key: key, Target: ParamTarget{Kind: TargetRef, Ref: ref}}
}

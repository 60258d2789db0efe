package xlwt

// Formula nesting deeper than this is rejected rather than risking stack
// exhaustion on a hostile tree. Excel itself caps nesting far below this.
const maxTransformDepth = 1024

// OperandClassTransformer assigns an operand class to every classifiable
// token of a formula parse tree. Getting a class wrong does not make the
// file unreadable: Excel opens it but may show '#VALUE!' until the user
// re-enters the cell, which is why the rules below follow observed Excel
// behaviour rather than the documented model.
//
// A transformer carries only the formula type; one instance may be reused
// across trees, but two goroutines must not transform the same tree.
type OperandClassTransformer struct {
	fmlaType int
}

// NewOperandClassTransformer creates a transformer for the given formula
// type (FMLA_TYPE_*).
func NewOperandClassTransformer(fmlaType int) *OperandClassTransformer {
	return &OperandClassTransformer{fmlaType: fmlaType}
}

// Transform walks the tree top-down and sets Class on every operand and
// function token. Structural and base tokens are left untouched. On error
// the tree may be partially classified and must be discarded.
func (t *OperandClassTransformer) Transform(root *ParseNode) error {
	rootClass, err := rootOperandClass(t.fmlaType)
	if err != nil {
		return err
	}
	return transformNode(root, rootClass, false, 0)
}

// transformNode threads the (desiredClass, forceArray) pair downward.
// forceArray means some enclosing context requires array semantics
// regardless of the token's natural class.
func transformNode(node *ParseNode, desiredClass OperandClass, forceArray bool, depth int) error {
	if depth > maxTransformDepth {
		return newConsistencyError("formula nesting exceeds %d levels", maxTransformDepth)
	}
	token := node.Token()

	switch token.Kind {
	case KindStructural:
		// Operators are transparent: the token itself is written without
		// class bits, and every child sees the caller's context unchanged.
		for _, child := range node.Children() {
			if err := transformNode(child, desiredClass, forceArray, depth+1); err != nil {
				return err
			}
		}
		return nil

	case KindFunc:
		return transformFunctionNode(node, desiredClass, forceArray, depth)

	case KindBase:
		if len(node.Children()) > 0 {
			return newConsistencyError("%s node should not have any children", PtgName(token.Opcode))
		}
		// encoding is invariant, nothing to assign
		return nil

	case KindOperand:
		if len(node.Children()) > 0 {
			return newConsistencyError("%s node should not have any children", PtgName(token.Opcode))
		}
		if forceArray {
			switch desiredClass {
			case CLASS_VALUE, CLASS_ARRAY:
				token.Class = CLASS_ARRAY
			case CLASS_REF:
				token.Class = CLASS_REF
			default:
				return newConsistencyError("unexpected operand class (%s)", desiredClass)
			}
			return nil
		}
		if !validOperandClass(desiredClass) {
			return newConsistencyError("unexpected operand class (%s)", desiredClass)
		}
		token.Class = desiredClass
		return nil
	}
	return newConsistencyError("unexpected token kind (%d)", token.Kind)
}

// transformFunctionNode decides the function token's own class together
// with the forceArray flag its arguments will see. The two are decoupled:
// a value-default function forced into an array context is itself written
// as array AND forces its arguments, while a ref-default one merely flips
// its own class.
func transformFunctionNode(node *ParseNode, desiredClass OperandClass, forceArray bool, depth int) error {
	token := node.Token()
	children := node.Children()
	if len(children) != token.NumArgs {
		return newConsistencyError("%s expects %d args in the tree, found %d children",
			token, token.NumArgs, len(children))
	}
	defaultClass := token.DefaultClass

	var localForceArray bool
	if forceArray {
		switch defaultClass {
		case CLASS_REF:
			if desiredClass == CLASS_REF {
				token.Class = CLASS_REF
			} else {
				token.Class = CLASS_ARRAY
			}
			localForceArray = false
		case CLASS_ARRAY:
			token.Class = CLASS_ARRAY
			localForceArray = false
		case CLASS_VALUE:
			token.Class = CLASS_ARRAY
			localForceArray = true
		default:
			return newConsistencyError("unexpected operand class (%s)", defaultClass)
		}
	} else if defaultClass == desiredClass {
		// no conflict, use the function's natural class
		token.Class = defaultClass
		localForceArray = false
	} else {
		switch desiredClass {
		case CLASS_VALUE:
			// always OK to have a function return 'value'
			token.Class = CLASS_VALUE
			localForceArray = false
		case CLASS_ARRAY:
			switch defaultClass {
			case CLASS_REF:
				token.Class = CLASS_REF
			case CLASS_VALUE:
				token.Class = CLASS_ARRAY
			default:
				return newConsistencyError("unexpected operand class (%s)", defaultClass)
			}
			localForceArray = defaultClass == CLASS_VALUE
		case CLASS_REF:
			switch defaultClass {
			case CLASS_ARRAY:
				token.Class = CLASS_ARRAY
			case CLASS_VALUE:
				token.Class = CLASS_VALUE
			default:
				return newConsistencyError("unexpected operand class (%s)", defaultClass)
			}
			localForceArray = false
		default:
			return newConsistencyError("unexpected operand class (%s)", desiredClass)
		}
	}

	for i, child := range children {
		if err := transformNode(child, token.ParamClass(i), localForceArray, depth+1); err != nil {
			return err
		}
	}
	return nil
}

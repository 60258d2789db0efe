package xlwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Tree-building helpers. Coordinates are arbitrary; classification only
// looks at token kinds.

func refNode() *ParseNode {
	return NewNode(NewRefPtg(0, 0, true, true))
}

func areaNode() *ParseNode {
	return NewNode(NewAreaPtg(0, 0, 1, 1, true, true, true, true))
}

func funcNode(t *testing.T, name string, args ...*ParseNode) *ParseNode {
	t.Helper()
	token, err := NewFuncPtgByName(name, len(args))
	require.NoError(t, err)
	return NewNode(token, args...)
}

func binOpNode(t *testing.T, opcode byte, left, right *ParseNode) *ParseNode {
	t.Helper()
	token, err := NewBinOpPtg(opcode)
	require.NoError(t, err)
	return NewNode(token, left, right)
}

func transformCell(t *testing.T, root *ParseNode) {
	t.Helper()
	require.NoError(t, NewOperandClassTransformer(FMLA_TYPE_CELL).Transform(root))
}

func TestTransformRootClass(t *testing.T) {
	t.Run("cell formula desires VALUE at the root", func(t *testing.T) {
		// =A1
		root := refNode()
		transformCell(t, root)
		require.Equal(t, CLASS_VALUE, root.Token().Class)
	})
	t.Run("other formula types are rejected before any visit", func(t *testing.T) {
		for _, fmlaType := range []int{FMLA_TYPE_SHARED, FMLA_TYPE_ARRAY,
			FMLA_TYPE_COND_FMT, FMLA_TYPE_DATA_VAL, FMLA_TYPE_NAME, 0, 99} {
			root := refNode()
			err := NewOperandClassTransformer(fmlaType).Transform(root)
			var unsupported *UnsupportedFormulaTypeError
			require.ErrorAs(t, err, &unsupported)
			require.Equal(t, CLASS_UNASSIGNED, root.Token().Class)
		}
	})
}

func TestTransformStructuralAndBase(t *testing.T) {
	t.Run("base-only tree is untouched", func(t *testing.T) {
		// =1+2.5
		root := binOpNode(t, tAdd, NewNode(NewIntPtg(1)), NewNode(NewNumPtg(2.5)))
		transformCell(t, root)
		require.Equal(t, CLASS_UNASSIGNED, root.Token().Class)
		for _, child := range root.Children() {
			require.Equal(t, CLASS_UNASSIGNED, child.Token().Class)
		}
	})
	t.Run("operators pass context through to operand leaves", func(t *testing.T) {
		// =A1+A1
		root := binOpNode(t, tAdd, refNode(), refNode())
		transformCell(t, root)
		require.Equal(t, CLASS_UNASSIGNED, root.Token().Class)
		for _, child := range root.Children() {
			require.Equal(t, CLASS_VALUE, child.Token().Class)
		}
	})
}

func TestTransformDeterministic(t *testing.T) {
	// =SUM(A1:B2)+VLOOKUP(A1,A1:B2,2)
	build := func() *ParseNode {
		return binOpNode(t, tAdd,
			funcNode(t, "SUM", areaNode()),
			funcNode(t, "VLOOKUP", refNode(), areaNode(), NewNode(NewIntPtg(2))))
	}
	var classes [][]OperandClass
	for i := 0; i < 3; i++ {
		root := build()
		transformCell(t, root)
		// transforming twice must not change anything either
		transformCell(t, root)
		var got []OperandClass
		var walk func(n *ParseNode)
		walk = func(n *ParseNode) {
			got = append(got, n.Token().Class)
			for _, c := range n.Children() {
				walk(c)
			}
		}
		walk(root)
		classes = append(classes, got)
	}
	require.Equal(t, classes[0], classes[1])
	require.Equal(t, classes[1], classes[2])
}

func TestTransformFunctionNaturalClass(t *testing.T) {
	// =SUM(A1:B2): SUM's default is VALUE, same as the desired root class,
	// so SUM keeps its default and its ref-class argument stays a plain ref.
	area := areaNode()
	root := funcNode(t, "SUM", area)
	transformCell(t, root)
	require.Equal(t, CLASS_VALUE, root.Token().Class)
	require.Equal(t, CLASS_REF, area.Token().Class)
}

func TestTransformEveryClassifiableAssigned(t *testing.T) {
	// =IF(A1,SUM(A1:B2),MMULT(A1:B2,A1:B2))
	root := funcNode(t, "IF",
		refNode(),
		funcNode(t, "SUM", areaNode()),
		funcNode(t, "MMULT", areaNode(), areaNode()))
	transformCell(t, root)
	var walk func(n *ParseNode)
	walk = func(n *ParseNode) {
		token := n.Token()
		switch token.Kind {
		case KindOperand, KindFunc:
			require.True(t, validOperandClass(token.Class), "unassigned token %s", token)
		default:
			require.Equal(t, CLASS_UNASSIGNED, token.Class)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
}

func TestTransformValueDefaultInArrayContext(t *testing.T) {
	// =MMULT(SUM(A1:B2),A1:B2): MMULT wants array arguments. SUM's default
	// is VALUE, so SUM itself flips to ARRAY and forces array semantics on
	// its own arguments; a ref-class argument under force stays REF.
	sumArea := areaNode()
	sum := funcNode(t, "SUM", sumArea)
	direct := areaNode()
	root := funcNode(t, "MMULT", sum, direct)
	transformCell(t, root)

	// MMULT itself sits in a VALUE slot: array default in a value slot is
	// written as VALUE, without forcing.
	require.Equal(t, CLASS_VALUE, root.Token().Class)
	require.Equal(t, CLASS_ARRAY, sum.Token().Class)
	require.Equal(t, CLASS_REF, sumArea.Token().Class)
	// a leaf handed array class directly is assigned verbatim
	require.Equal(t, CLASS_ARRAY, direct.Token().Class)
}

func TestTransformLeafUnderForce(t *testing.T) {
	// =MMULT(SQRT(A1),A1:B2): SQRT (default VALUE) in an array slot forces
	// its value-class argument all the way to ARRAY.
	leaf := refNode()
	sqrt := funcNode(t, "SQRT", leaf)
	root := funcNode(t, "MMULT", sqrt, areaNode())
	transformCell(t, root)

	require.Equal(t, CLASS_ARRAY, sqrt.Token().Class)
	require.Equal(t, CLASS_ARRAY, leaf.Token().Class)
}

func TestTransformRefDefaultInArrayContext(t *testing.T) {
	// =MMULT(OFFSET(A1,1,1),A1:B2): OFFSET's default is REF; in an array
	// slot it is written as REF and does not force its own arguments.
	offArgs := []*ParseNode{refNode(), NewNode(NewIntPtg(1)), NewNode(NewIntPtg(1))}
	offset := funcNode(t, "OFFSET", offArgs...)
	root := funcNode(t, "MMULT", offset, areaNode())
	transformCell(t, root)

	require.Equal(t, CLASS_REF, offset.Token().Class)
	// OFFSET's first parameter class is VALUE
	require.Equal(t, CLASS_VALUE, offArgs[0].Token().Class)
}

func TestTransformFunctionUnderForce(t *testing.T) {
	t.Run("ref default under force becomes array unless ref is desired", func(t *testing.T) {
		// =MMULT(SQRT(N(OFFSET(A1,1,1))),A1:B2) would be contrived; drive
		// the force flag through SQRT instead: SQRT's parameter class is
		// VALUE, so OFFSET arrives with (desired=VALUE, force=true).
		offset := funcNode(t, "OFFSET", refNode(), NewNode(NewIntPtg(1)), NewNode(NewIntPtg(1)))
		sqrt := funcNode(t, "SQRT", offset)
		root := funcNode(t, "MMULT", sqrt, areaNode())
		transformCell(t, root)
		require.Equal(t, CLASS_ARRAY, offset.Token().Class)
	})
	t.Run("array default under force stays array", func(t *testing.T) {
		// TRANSPOSE under SQRT under MMULT
		transpose := funcNode(t, "TRANSPOSE", areaNode())
		sqrt := funcNode(t, "SQRT", transpose)
		root := funcNode(t, "MMULT", sqrt, areaNode())
		transformCell(t, root)
		require.Equal(t, CLASS_ARRAY, transpose.Token().Class)
		// force stops at TRANSPOSE; its array-class argument is verbatim
		require.Equal(t, CLASS_ARRAY, transpose.Children()[0].Token().Class)
	})
}

func TestTransformRefDesired(t *testing.T) {
	t.Run("value default in a ref slot becomes value", func(t *testing.T) {
		// OFFSET's second parameter has class REF; hand it a VALUE-default
		// function.
		sum := funcNode(t, "SUM", areaNode())
		root := funcNode(t, "OFFSET", refNode(), sum, NewNode(NewIntPtg(1)))
		transformCell(t, root)
		require.Equal(t, CLASS_VALUE, sum.Token().Class)
	})
	t.Run("array default in a ref slot becomes array", func(t *testing.T) {
		transpose := funcNode(t, "TRANSPOSE", areaNode())
		root := funcNode(t, "OFFSET", refNode(), transpose, NewNode(NewIntPtg(1)))
		transformCell(t, root)
		require.Equal(t, CLASS_ARRAY, transpose.Token().Class)
	})
	t.Run("ref default in a ref slot keeps ref", func(t *testing.T) {
		inner := funcNode(t, "OFFSET", refNode(), NewNode(NewIntPtg(1)), NewNode(NewIntPtg(1)))
		root := funcNode(t, "OFFSET", refNode(), inner, NewNode(NewIntPtg(1)))
		transformCell(t, root)
		require.Equal(t, CLASS_REF, inner.Token().Class)
	})
}

func TestTransformMalformedTree(t *testing.T) {
	t.Run("operand leaf with children", func(t *testing.T) {
		root := NewNode(NewRefPtg(0, 0, true, true), refNode())
		err := NewOperandClassTransformer(FMLA_TYPE_CELL).Transform(root)
		var consistency *ConsistencyError
		require.ErrorAs(t, err, &consistency)
	})
	t.Run("base token with children", func(t *testing.T) {
		root := NewNode(NewIntPtg(1), refNode())
		err := NewOperandClassTransformer(FMLA_TYPE_CELL).Transform(root)
		var consistency *ConsistencyError
		require.ErrorAs(t, err, &consistency)
	})
	t.Run("function child count mismatch", func(t *testing.T) {
		token, err := NewFuncPtgByName("SUM", 2)
		require.NoError(t, err)
		root := NewNode(token, areaNode()) // built with one child, claims two
		err = NewOperandClassTransformer(FMLA_TYPE_CELL).Transform(root)
		var consistency *ConsistencyError
		require.ErrorAs(t, err, &consistency)
	})
	t.Run("pathological nesting depth", func(t *testing.T) {
		root := refNode()
		for i := 0; i < maxTransformDepth+10; i++ {
			token, err := NewUnaryOpPtg(tParen)
			require.NoError(t, err)
			root = NewNode(token, root)
		}
		err := NewOperandClassTransformer(FMLA_TYPE_CELL).Transform(root)
		var consistency *ConsistencyError
		require.ErrorAs(t, err, &consistency)
	})
}

func TestTransformExternalAndArrayLeaves(t *testing.T) {
	t.Run("ref3d classifies like any reference leaf", func(t *testing.T) {
		// =Sheet2!A1 at the root of a cell formula
		root := NewNode(NewRef3dPtg(1, 0, 0, true, true))
		transformCell(t, root)
		require.Equal(t, CLASS_VALUE, root.Token().Class)
	})
	t.Run("area3d keeps ref class where a plain area would", func(t *testing.T) {
		// =SUM(Sheet2!A1:B2)
		area := NewNode(NewArea3dPtg(1, 0, 0, 1, 1, true, true, true, true))
		root := funcNode(t, "SUM", area)
		transformCell(t, root)
		require.Equal(t, CLASS_REF, area.Token().Class)
	})
	t.Run("array constant under an array-class parameter", func(t *testing.T) {
		// =MMULT({1},{2}): MMULT declares array-class parameters.
		a, err := NewArrayPtg([][]interface{}{{1.0}})
		require.NoError(t, err)
		b, err := NewArrayPtg([][]interface{}{{2.0}})
		require.NoError(t, err)
		root := funcNode(t, "MMULT", NewNode(a), NewNode(b))
		transformCell(t, root)
		require.Equal(t, CLASS_ARRAY, a.Class)
		require.Equal(t, CLASS_ARRAY, b.Class)
	})
}

package xlwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFuncSigLookup(t *testing.T) {
	t.Run("by index", func(t *testing.T) {
		def, err := FuncSigByIndex(4)
		require.NoError(t, err)
		require.Equal(t, "SUM", def.Name)
		require.Equal(t, CLASS_VALUE, def.Default)
		require.Equal(t, []OperandClass{CLASS_REF}, def.Params)
	})
	t.Run("by name is case-insensitive", func(t *testing.T) {
		idx, def, err := FuncSigByName("vlookup")
		require.NoError(t, err)
		require.EqualValues(t, 87, idx)
		require.Equal(t, "VLOOKUP", def.Name)
	})
	t.Run("unknown index", func(t *testing.T) {
		_, err := FuncSigByIndex(65535)
		require.Error(t, err)
	})
	t.Run("unknown name", func(t *testing.T) {
		_, _, err := FuncSigByName("NOT_A_FUNCTION")
		require.Error(t, err)
	})
}

func TestFuncSigParamClassPolicy(t *testing.T) {
	t.Run("declared positions answer verbatim", func(t *testing.T) {
		_, ifSig, err := FuncSigByName("IF")
		require.NoError(t, err)
		require.Equal(t, CLASS_VALUE, ifSig.ParamClass(0))
		require.Equal(t, CLASS_REF, ifSig.ParamClass(1))
		require.Equal(t, CLASS_REF, ifSig.ParamClass(2))
	})
	t.Run("variadic tail repeats the last declared class", func(t *testing.T) {
		_, sum, err := FuncSigByName("SUM")
		require.NoError(t, err)
		for i := 0; i < 30; i++ {
			require.Equal(t, CLASS_REF, sum.ParamClass(i))
		}
		_, npv, err := FuncSigByName("NPV")
		require.NoError(t, err)
		require.Equal(t, CLASS_VALUE, npv.ParamClass(0))
		require.Equal(t, CLASS_REF, npv.ParamClass(7))
	})
	t.Run("no declared parameters fall back to the default class", func(t *testing.T) {
		_, pi, err := FuncSigByName("PI")
		require.NoError(t, err)
		require.Equal(t, CLASS_VALUE, pi.ParamClass(0))
		_, caller, err := FuncSigByName("CALLER")
		require.NoError(t, err)
		require.Equal(t, CLASS_REF, caller.ParamClass(0))
	})
}

func TestNewFuncPtg(t *testing.T) {
	t.Run("fixed arity uses tFunc", func(t *testing.T) {
		token, err := NewFuncPtgByName("ROUND", 2)
		require.NoError(t, err)
		require.EqualValues(t, tFunc, token.Opcode)
		require.Equal(t, KindFunc, token.Kind)
		require.Equal(t, CLASS_UNASSIGNED, token.Class)
	})
	t.Run("variable arity uses tFuncVar", func(t *testing.T) {
		token, err := NewFuncPtgByName("SUM", 3)
		require.NoError(t, err)
		require.EqualValues(t, tFuncVar, token.Opcode)
		require.Equal(t, 3, token.NumArgs)
	})
	t.Run("argument count outside the declared range", func(t *testing.T) {
		_, err := NewFuncPtgByName("ROUND", 3)
		require.Error(t, err)
		_, err = NewFuncPtgByName("VLOOKUP", 2)
		require.Error(t, err)
	})
	t.Run("token param classes come from the table", func(t *testing.T) {
		token, err := NewFuncPtgByName("OFFSET", 3)
		require.NoError(t, err)
		require.Equal(t, CLASS_REF, token.DefaultClass)
		require.Equal(t, CLASS_VALUE, token.ParamClass(0))
		require.Equal(t, CLASS_REF, token.ParamClass(1))
		require.Equal(t, CLASS_VALUE, token.ParamClass(4))
		// past the declared list
		require.Equal(t, CLASS_VALUE, token.ParamClass(10))
	})
}

func TestFuncNames(t *testing.T) {
	names := FuncNames()
	require.NotEmpty(t, names)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		require.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
	require.True(t, seen["SUM"])
	require.True(t, seen["OFFSET"])
}

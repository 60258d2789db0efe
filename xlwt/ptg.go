package xlwt

import "fmt"

// OperandClass is the BIFF operand class of a formula token. In the token
// stream a classifiable opcode is stored as its base opcode ORed with the
// class bits, so the same tRef is written as 0x24, 0x44 or 0x64 depending
// on how the surrounding formula consumes it.
type OperandClass byte

const (
	CLASS_REF   OperandClass = 0x00
	CLASS_VALUE OperandClass = 0x20
	CLASS_ARRAY OperandClass = 0x40

	// CLASS_UNASSIGNED marks a token the transformer has not visited yet.
	// It never appears on the wire.
	CLASS_UNASSIGNED OperandClass = 0xFF
)

// String returns the single-letter form used in signature tables.
func (c OperandClass) String() string {
	switch c {
	case CLASS_REF:
		return "R"
	case CLASS_VALUE:
		return "V"
	case CLASS_ARRAY:
		return "A"
	case CLASS_UNASSIGNED:
		return "?"
	}
	return fmt.Sprintf("OperandClass(0x%02x)", byte(c))
}

func validOperandClass(c OperandClass) bool {
	return c == CLASS_REF || c == CLASS_VALUE || c == CLASS_ARRAY
}

// TokenKind partitions the ptg variants by how classification treats them.
type TokenKind int

const (
	// KindStructural tokens (operators, parentheses) connect children and
	// pass classification context through unchanged.
	KindStructural TokenKind = iota
	// KindBase tokens are literals whose encoding never depends on operand
	// class.
	KindBase
	// KindOperand tokens are classifiable leaves: cell/area references,
	// names and array constants.
	KindOperand
	// KindFunc tokens are function calls carrying a default return class
	// and per-parameter classes.
	KindFunc
)

// Token opcodes (base values, class bits stripped).
const (
	tAdd    = 0x03
	tSub    = 0x04
	tMul    = 0x05
	tDiv    = 0x06
	tPower  = 0x07
	tConcat = 0x08
	tLT     = 0x09
	tLE     = 0x0A
	tEQ     = 0x0B
	tGE     = 0x0C
	tGT     = 0x0D
	tNE     = 0x0E

	tIsect = 0x0F
	tList  = 0x10
	tRange = 0x11

	tUplus   = 0x12
	tUminus  = 0x13
	tPercent = 0x14
	tParen   = 0x15

	tMissArg = 0x16
	tStr     = 0x17
	tErr     = 0x1C
	tBool    = 0x1D
	tInt     = 0x1E
	tNum     = 0x1F

	tArray   = 0x20
	tFunc    = 0x21
	tFuncVar = 0x22
	tName    = 0x23
	tRef     = 0x24
	tArea    = 0x25
	tRef3d   = 0x3A
	tArea3d  = 0x3B
)

var ptgNames = map[byte]string{
	tAdd: "tAdd", tSub: "tSub", tMul: "tMul", tDiv: "tDiv",
	tPower: "tPower", tConcat: "tConcat",
	tLT: "tLT", tLE: "tLE", tEQ: "tEQ", tGE: "tGE", tGT: "tGT", tNE: "tNE",
	tIsect: "tIsect", tList: "tList", tRange: "tRange",
	tUplus: "tUplus", tUminus: "tUminus", tPercent: "tPercent", tParen: "tParen",
	tMissArg: "tMissArg", tStr: "tStr", tErr: "tErr", tBool: "tBool",
	tInt: "tInt", tNum: "tNum",
	tArray: "tArray", tFunc: "tFunc", tFuncVar: "tFuncVar",
	tName: "tName", tRef: "tRef", tArea: "tArea",
	tRef3d: "tRef3d", tArea3d: "tArea3d",
}

// PtgName returns the conventional name of a base opcode, e.g. "tRef".
func PtgName(opcode byte) string {
	if name, ok := ptgNames[opcode]; ok {
		return name
	}
	return fmt.Sprintf("tUnk%02x", opcode)
}

// Ptg is a single formula token. It is a closed tagged variant: Kind
// selects which payload fields are meaningful, and every consumer switches
// exhaustively on it. Class starts as CLASS_UNASSIGNED for operand and
// function tokens and is filled in by the operand-class transformer;
// structural and base tokens never receive a class.
type Ptg struct {
	Opcode byte
	Kind   TokenKind
	Class  OperandClass

	// Literal payloads (base tokens).
	Num     float64
	Int     uint16
	Str     string
	Bool    bool
	ErrCode byte

	// Reference payloads (tRef/tArea). Coordinates are 0-based; Row2/Col2
	// are inclusive, as in A1:B2.
	Row1, Col1       int
	Row2, Col2       int
	Row1Rel, Col1Rel bool
	Row2Rel, Col2Rel bool

	// tName payload.
	NameIdx uint16

	// tRef3d/tArea3d payload: index into the EXTERNSHEET record.
	ExtSheetIdx uint16

	// tArray payload: rectangular constant values in row-major order.
	// Elements are float64, string, bool, byte (error code) or nil.
	ArrayVals [][]interface{}

	// Function payload, fixed at construction from the signature table.
	FuncIdx      uint16
	NumArgs      int
	DefaultClass OperandClass
	paramClasses []OperandClass
}

// ParamClass returns the expected operand class of the function's i-th
// argument. Positions past the declared parameter list repeat the last
// declared class (Excel's repeating variadic groups); a function with no
// declared parameters falls back to its default class.
func (p *Ptg) ParamClass(i int) OperandClass {
	if len(p.paramClasses) == 0 {
		return p.DefaultClass
	}
	if i >= len(p.paramClasses) {
		return p.paramClasses[len(p.paramClasses)-1]
	}
	return p.paramClasses[i]
}

// String returns a short debugging form, e.g. "tFuncVar(SUM)[V]".
func (p *Ptg) String() string {
	switch p.Kind {
	case KindFunc:
		name := fmt.Sprintf("#%d", p.FuncIdx)
		if sig, err := FuncSigByIndex(p.FuncIdx); err == nil {
			name = sig.Name
		}
		return fmt.Sprintf("%s(%s)[%s]", PtgName(p.Opcode), name, p.Class)
	case KindOperand:
		return fmt.Sprintf("%s[%s]", PtgName(p.Opcode), p.Class)
	}
	return PtgName(p.Opcode)
}

func newStructural(opcode byte) *Ptg {
	return &Ptg{Opcode: opcode, Kind: KindStructural, Class: CLASS_UNASSIGNED}
}

func newBase(opcode byte) *Ptg {
	return &Ptg{Opcode: opcode, Kind: KindBase, Class: CLASS_UNASSIGNED}
}

var binaryOps = map[byte]bool{
	tAdd: true, tSub: true, tMul: true, tDiv: true, tPower: true,
	tConcat: true, tLT: true, tLE: true, tEQ: true, tGE: true,
	tGT: true, tNE: true, tIsect: true, tList: true, tRange: true,
}

var unaryOps = map[byte]bool{
	tUplus: true, tUminus: true, tPercent: true, tParen: true,
}

// NewBinOpPtg creates a binary operator token (tAdd .. tNE, tIsect, tList,
// tRange).
func NewBinOpPtg(opcode byte) (*Ptg, error) {
	if !binaryOps[opcode] {
		return nil, NewXLWTError("opcode 0x%02x is not a binary operator", opcode)
	}
	return newStructural(opcode), nil
}

// NewUnaryOpPtg creates a unary operator or parenthesis token.
func NewUnaryOpPtg(opcode byte) (*Ptg, error) {
	if !unaryOps[opcode] {
		return nil, NewXLWTError("opcode 0x%02x is not a unary operator", opcode)
	}
	return newStructural(opcode), nil
}

// NewIntPtg creates a tInt literal (unsigned 16-bit, as in the file format).
func NewIntPtg(value uint16) *Ptg {
	p := newBase(tInt)
	p.Int = value
	return p
}

// NewNumPtg creates a tNum literal.
func NewNumPtg(value float64) *Ptg {
	p := newBase(tNum)
	p.Num = value
	return p
}

// NewStrPtg creates a tStr literal. The 255-character limit is checked at
// encode time, where the BIFF version is known.
func NewStrPtg(value string) *Ptg {
	p := newBase(tStr)
	p.Str = value
	return p
}

// NewBoolPtg creates a tBool literal.
func NewBoolPtg(value bool) *Ptg {
	p := newBase(tBool)
	p.Bool = value
	return p
}

// NewErrPtg creates a tErr literal from a BIFF error code (0x00 #NULL!,
// 0x07 #DIV/0!, 0x0F #VALUE!, 0x17 #REF!, 0x1D #NAME?, 0x24 #NUM!,
// 0x2A #N/A).
func NewErrPtg(errCode byte) *Ptg {
	p := newBase(tErr)
	p.ErrCode = errCode
	return p
}

// NewMissArgPtg creates a tMissArg placeholder for an omitted argument.
func NewMissArgPtg() *Ptg {
	return newBase(tMissArg)
}

// NewRefPtg creates a classifiable tRef cell reference.
func NewRefPtg(rowx, colx int, rowRel, colRel bool) *Ptg {
	return &Ptg{
		Opcode: tRef, Kind: KindOperand, Class: CLASS_UNASSIGNED,
		Row1: rowx, Col1: colx, Row1Rel: rowRel, Col1Rel: colRel,
	}
}

// NewAreaPtg creates a classifiable tArea range reference. Coordinates are
// 0-based and inclusive.
func NewAreaPtg(row1, col1, row2, col2 int, row1Rel, col1Rel, row2Rel, col2Rel bool) *Ptg {
	return &Ptg{
		Opcode: tArea, Kind: KindOperand, Class: CLASS_UNASSIGNED,
		Row1: row1, Col1: col1, Row2: row2, Col2: col2,
		Row1Rel: row1Rel, Col1Rel: col1Rel, Row2Rel: row2Rel, Col2Rel: col2Rel,
	}
}

// NewNamePtg creates a classifiable tName token referring to a defined name
// by its 1-based NAME record index.
func NewNamePtg(nameIdx uint16) *Ptg {
	return &Ptg{Opcode: tName, Kind: KindOperand, Class: CLASS_UNASSIGNED, NameIdx: nameIdx}
}

// NewRef3dPtg creates a classifiable tRef3d cell reference on another
// sheet, identified by its EXTERNSHEET index.
func NewRef3dPtg(extSheetIdx uint16, rowx, colx int, rowRel, colRel bool) *Ptg {
	return &Ptg{
		Opcode: tRef3d, Kind: KindOperand, Class: CLASS_UNASSIGNED,
		ExtSheetIdx: extSheetIdx,
		Row1:        rowx, Col1: colx, Row1Rel: rowRel, Col1Rel: colRel,
	}
}

// NewArea3dPtg creates a classifiable tArea3d range reference on another
// sheet. Coordinates are 0-based and inclusive.
func NewArea3dPtg(extSheetIdx uint16, row1, col1, row2, col2 int, row1Rel, col1Rel, row2Rel, col2Rel bool) *Ptg {
	return &Ptg{
		Opcode: tArea3d, Kind: KindOperand, Class: CLASS_UNASSIGNED,
		ExtSheetIdx: extSheetIdx,
		Row1:        row1, Col1: col1, Row2: row2, Col2: col2,
		Row1Rel: row1Rel, Col1Rel: col1Rel, Row2Rel: row2Rel, Col2Rel: col2Rel,
	}
}

// NewArrayPtg creates a classifiable tArray constant from row-major
// values. The matrix must be rectangular and non-empty; elements may be
// float64, string, bool, byte (an error code) or nil for an empty cell.
func NewArrayPtg(values [][]interface{}) (*Ptg, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, NewXLWTError("array constant must have at least one cell")
	}
	ncols := len(values[0])
	for _, row := range values {
		if len(row) != ncols {
			return nil, NewXLWTError("array constant rows must all have %d columns", ncols)
		}
		for _, v := range row {
			switch v.(type) {
			case float64, string, bool, byte, nil:
			default:
				return nil, NewXLWTError("unsupported array constant element %T", v)
			}
		}
	}
	if len(values) > 256 || ncols > 256 {
		return nil, NewXLWTError("array constant larger than 256x256")
	}
	return &Ptg{Opcode: tArray, Kind: KindOperand, Class: CLASS_UNASSIGNED, ArrayVals: values}, nil
}

// NewFuncPtg creates a function-call token. Fixed-arity functions become
// tFunc, the rest tFuncVar. The default return class and parameter classes
// are captured from the signature table; numArgs outside the function's
// declared arity range is rejected.
func NewFuncPtg(funcIdx uint16, numArgs int) (*Ptg, error) {
	sig, err := FuncSigByIndex(funcIdx)
	if err != nil {
		return nil, err
	}
	if numArgs < sig.MinArgs || numArgs > sig.MaxArgs {
		return nil, NewXLWTError("%s takes %d..%d args, got %d",
			sig.Name, sig.MinArgs, sig.MaxArgs, numArgs)
	}
	opcode := byte(tFuncVar)
	if sig.MinArgs == sig.MaxArgs {
		opcode = tFunc
	}
	return &Ptg{
		Opcode: opcode, Kind: KindFunc, Class: CLASS_UNASSIGNED,
		FuncIdx: funcIdx, NumArgs: numArgs,
		DefaultClass: sig.Default, paramClasses: sig.Params,
	}, nil
}

// NewFuncPtgByName is NewFuncPtg keyed by function name, e.g. "SUM".
func NewFuncPtgByName(name string, numArgs int) (*Ptg, error) {
	funcIdx, _, err := FuncSigByName(name)
	if err != nil {
		return nil, err
	}
	return NewFuncPtg(funcIdx, numArgs)
}

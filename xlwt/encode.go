package xlwt

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// Row/column limits per BIFF version.
const (
	maxRowBiff8  = 65535
	maxRowBiff57 = 16383
	maxCol       = 255
	maxStrLen    = 255
)

func biffVersionSupported(bv int) bool {
	switch bv {
	case 50, 70, 80:
		return true
	}
	return false
}

// EncodeRPN serializes a classified parse tree into the RPN token stream
// of a FORMULA record body. Children are emitted before their token, and
// every operand or function opcode is ORed with its assigned class bits,
// so the tree must have gone through OperandClassTransformer.Transform
// first. Array constants keep only a placeholder in the token stream;
// their values follow after the last token, in token order, as the record
// format requires. Supported BIFF versions: 50, 70, 80.
func EncodeRPN(root *ParseNode, biffVersion int) ([]byte, error) {
	if !biffVersionSupported(biffVersion) {
		return nil, NewXLWTError("unsupported BIFF version %d", biffVersion)
	}
	enc := &rpnEncoder{bv: biffVersion}
	if err := enc.encodeNode(root); err != nil {
		return nil, err
	}
	return append(enc.buf.Bytes(), enc.extra.Bytes()...), nil
}

type rpnEncoder struct {
	buf   bytes.Buffer
	extra bytes.Buffer // array constant data, after the token stream
	bv    int
}

func (e *rpnEncoder) encodeNode(node *ParseNode) error {
	for _, child := range node.Children() {
		if err := e.encodeNode(child); err != nil {
			return err
		}
	}
	return e.encodeToken(node.Token())
}

func (e *rpnEncoder) encodeToken(token *Ptg) error {
	switch token.Kind {
	case KindStructural:
		e.buf.WriteByte(token.Opcode)
		return nil
	case KindBase:
		return e.encodeBaseToken(token)
	case KindOperand, KindFunc:
		if !validOperandClass(token.Class) {
			return NewXLWTError("%s has no operand class assigned; run the transformer first",
				PtgName(token.Opcode))
		}
		e.buf.WriteByte(token.Opcode | byte(token.Class))
		switch token.Opcode {
		case tRef:
			return e.writeCellAddr(token.Row1, token.Col1, token.Row1Rel, token.Col1Rel)
		case tArea:
			return e.writeAreaAddr(token)
		case tName:
			e.writeUint16(token.NameIdx)
			// reserved bytes after the NAME index
			pad := 2
			if e.bv < 80 {
				pad = 12
			}
			e.buf.Write(make([]byte, pad))
			return nil
		case tRef3d:
			if e.bv < 80 {
				return NewXLWTError("3D references require BIFF8")
			}
			e.writeUint16(token.ExtSheetIdx)
			return e.writeCellAddr(token.Row1, token.Col1, token.Row1Rel, token.Col1Rel)
		case tArea3d:
			if e.bv < 80 {
				return NewXLWTError("3D references require BIFF8")
			}
			e.writeUint16(token.ExtSheetIdx)
			return e.writeAreaAddr(token)
		case tArray:
			if e.bv < 80 {
				return NewXLWTError("array constants require BIFF8")
			}
			// seven reserved bytes; the values go in the trailing data
			e.buf.Write(make([]byte, 7))
			return e.writeArrayConstant(token.ArrayVals)
		case tFunc:
			e.writeUint16(token.FuncIdx)
			return nil
		case tFuncVar:
			e.buf.WriteByte(byte(token.NumArgs))
			e.writeUint16(token.FuncIdx)
			return nil
		}
		return NewXLWTError("cannot encode opcode 0x%02x", token.Opcode)
	}
	return NewXLWTError("cannot encode token kind %d", token.Kind)
}

func (e *rpnEncoder) encodeBaseToken(token *Ptg) error {
	switch token.Opcode {
	case tMissArg:
		e.buf.WriteByte(tMissArg)
	case tInt:
		e.buf.WriteByte(tInt)
		e.writeUint16(token.Int)
	case tNum:
		e.buf.WriteByte(tNum)
		var le [8]byte
		binary.LittleEndian.PutUint64(le[:], math.Float64bits(token.Num))
		e.buf.Write(le[:])
	case tBool:
		e.buf.WriteByte(tBool)
		if token.Bool {
			e.buf.WriteByte(1)
		} else {
			e.buf.WriteByte(0)
		}
	case tErr:
		e.buf.WriteByte(tErr)
		e.buf.WriteByte(token.ErrCode)
	case tStr:
		return e.writeString(token.Str)
	default:
		return NewXLWTError("cannot encode opcode 0x%02x", token.Opcode)
	}
	return nil
}

func (e *rpnEncoder) writeUint16(v uint16) {
	var le [2]byte
	binary.LittleEndian.PutUint16(le[:], v)
	e.buf.Write(le[:])
}

// writeCellAddr packs a single cell address. BIFF8 keeps the full row in
// one field and squeezes the relative flags into the column field's high
// bits; BIFF5/7 do the opposite, with a 14-bit row and a one-byte column.
func (e *rpnEncoder) writeCellAddr(rowx, colx int, rowRel, colRel bool) error {
	if colx < 0 || colx > maxCol {
		return NewXLWTError("column index %d out of range", colx)
	}
	if e.bv >= 80 {
		if rowx < 0 || rowx > maxRowBiff8 {
			return NewXLWTError("row index %d out of range", rowx)
		}
		colval := colx
		if colRel {
			colval |= 1 << 14
		}
		if rowRel {
			colval |= 1 << 15
		}
		e.writeUint16(uint16(rowx))
		e.writeUint16(uint16(colval))
		return nil
	}
	if rowx < 0 || rowx > maxRowBiff57 {
		return NewXLWTError("row index %d out of range", rowx)
	}
	rowval := rowx
	if colRel {
		rowval |= 1 << 14
	}
	if rowRel {
		rowval |= 1 << 15
	}
	e.writeUint16(uint16(rowval))
	e.buf.WriteByte(byte(colx))
	return nil
}

// writeAreaAddr packs a range: both rows first, then both columns.
func (e *rpnEncoder) writeAreaAddr(token *Ptg) error {
	rows := [2]int{token.Row1, token.Row2}
	cols := [2]int{token.Col1, token.Col2}
	rowRel := [2]bool{token.Row1Rel, token.Row2Rel}
	colRel := [2]bool{token.Col1Rel, token.Col2Rel}

	maxRow := maxRowBiff8
	if e.bv < 80 {
		maxRow = maxRowBiff57
	}
	for i := 0; i < 2; i++ {
		if rows[i] < 0 || rows[i] > maxRow {
			return NewXLWTError("row index %d out of range", rows[i])
		}
		if cols[i] < 0 || cols[i] > maxCol {
			return NewXLWTError("column index %d out of range", cols[i])
		}
	}

	if e.bv >= 80 {
		for i := 0; i < 2; i++ {
			e.writeUint16(uint16(rows[i]))
		}
		for i := 0; i < 2; i++ {
			colval := cols[i]
			if colRel[i] {
				colval |= 1 << 14
			}
			if rowRel[i] {
				colval |= 1 << 15
			}
			e.writeUint16(uint16(colval))
		}
		return nil
	}
	for i := 0; i < 2; i++ {
		rowval := rows[i]
		if colRel[i] {
			rowval |= 1 << 14
		}
		if rowRel[i] {
			rowval |= 1 << 15
		}
		e.writeUint16(uint16(rowval))
	}
	for i := 0; i < 2; i++ {
		e.buf.WriteByte(byte(cols[i]))
	}
	return nil
}

// writeArrayConstant appends a tArray's values to the trailing data
// section: column and row counts (stored minus one), then the elements
// row-major, each tagged with a type byte and padded to eight bytes except
// for strings.
func (e *rpnEncoder) writeArrayConstant(values [][]interface{}) error {
	nrows := len(values)
	ncols := len(values[0])
	e.extra.WriteByte(byte(ncols - 1))
	var le [8]byte
	binary.LittleEndian.PutUint16(le[:2], uint16(nrows-1))
	e.extra.Write(le[:2])

	for _, row := range values {
		for _, v := range row {
			switch val := v.(type) {
			case nil:
				e.extra.WriteByte(0x00)
				e.extra.Write(make([]byte, 8))
			case float64:
				e.extra.WriteByte(0x01)
				binary.LittleEndian.PutUint64(le[:], math.Float64bits(val))
				e.extra.Write(le[:])
			case string:
				runes := []rune(val)
				if len(runes) > maxStrLen {
					return NewXLWTError("array constant string too long (%d chars, max %d)",
						len(runes), maxStrLen)
				}
				e.extra.WriteByte(0x02)
				binary.LittleEndian.PutUint16(le[:2], uint16(len(runes)))
				e.extra.Write(le[:2])
				wide := false
				for _, r := range runes {
					if r > 0xFF {
						wide = true
						break
					}
				}
				if wide {
					e.extra.WriteByte(0x01)
					for _, u := range utf16.Encode(runes) {
						binary.LittleEndian.PutUint16(le[:2], u)
						e.extra.Write(le[:2])
					}
				} else {
					e.extra.WriteByte(0x00)
					for _, r := range runes {
						e.extra.WriteByte(byte(r))
					}
				}
			case bool:
				e.extra.WriteByte(0x04)
				if val {
					e.extra.WriteByte(1)
				} else {
					e.extra.WriteByte(0)
				}
				e.extra.Write(make([]byte, 7))
			case byte:
				e.extra.WriteByte(0x10)
				e.extra.WriteByte(val)
				e.extra.Write(make([]byte, 7))
			default:
				return NewXLWTError("unsupported array constant element %T", v)
			}
		}
	}
	return nil
}

// writeString emits a tStr literal. BIFF8 strings carry an options byte
// and switch to UTF-16LE when any character falls outside Latin-1; earlier
// versions store single-byte text in the workbook codepage.
func (e *rpnEncoder) writeString(s string) error {
	runes := []rune(s)
	if len(runes) > maxStrLen {
		return NewXLWTError("string literal too long (%d chars, max %d)", len(runes), maxStrLen)
	}
	e.buf.WriteByte(tStr)

	if e.bv >= 80 {
		wide := false
		for _, r := range runes {
			if r > 0xFF {
				wide = true
				break
			}
		}
		e.buf.WriteByte(byte(len(runes)))
		if wide {
			e.buf.WriteByte(0x01)
			for _, u := range utf16.Encode(runes) {
				e.writeUint16(u)
			}
		} else {
			e.buf.WriteByte(0x00)
			for _, r := range runes {
				e.buf.WriteByte(byte(r))
			}
		}
		return nil
	}

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return NewXLWTError("string %q not representable in codepage 1252: %v", s, err)
	}
	if len(encoded) > maxStrLen {
		return NewXLWTError("string literal too long (%d bytes, max %d)", len(encoded), maxStrLen)
	}
	e.buf.WriteByte(byte(len(encoded)))
	e.buf.Write(encoded)
	return nil
}

package xlwt

// Formula type constants
const (
	FMLA_TYPE_CELL     = 1
	FMLA_TYPE_SHARED   = 2
	FMLA_TYPE_ARRAY    = 4
	FMLA_TYPE_COND_FMT = 8
	FMLA_TYPE_DATA_VAL = 16
	FMLA_TYPE_NAME     = 32
)

// FmlaTypeDescrMap maps formula types to their string descriptions.
var FmlaTypeDescrMap = map[int]string{
	1:  "CELL",
	2:  "SHARED",
	4:  "ARRAY",
	8:  "COND-FMT",
	16: "DATA-VAL",
	32: "NAME",
}

// rootOperandClass maps a formula type to the operand class desired of the
// root token.
func rootOperandClass(fmlaType int) (OperandClass, error) {
	switch fmlaType {
	case FMLA_TYPE_CELL:
		return CLASS_VALUE, nil
	}
	return CLASS_UNASSIGNED, &UnsupportedFormulaTypeError{FmlaType: fmlaType}
}

package xlwt

import "fmt"

// XLWTError represents an error that occurred while building or encoding a
// formula.
type XLWTError struct {
	Message string
}

func (e *XLWTError) Error() string {
	return e.Message
}

// NewXLWTError creates a new XLWTError with the given message.
func NewXLWTError(format string, args ...interface{}) *XLWTError {
	return &XLWTError{Message: fmt.Sprintf(format, args...)}
}

// UnsupportedFormulaTypeError is returned when a formula type has no root
// operand class mapping. Only cell formulas are supported so far; the
// transformer refuses to guess for the other types rather than writing
// tokens Excel may misread.
type UnsupportedFormulaTypeError struct {
	FmlaType int
}

func (e *UnsupportedFormulaTypeError) Error() string {
	descr, ok := FmlaTypeDescrMap[e.FmlaType]
	if !ok {
		descr = fmt.Sprintf("%d", e.FmlaType)
	}
	return fmt.Sprintf("formula type %s not supported yet", descr)
}

// ConsistencyError reports a parse tree or signature table that violates a
// structural invariant. It always indicates a defect in the code that
// built the tree, not bad user input.
type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string {
	return e.Message
}

func newConsistencyError(format string, args ...interface{}) *ConsistencyError {
	return &ConsistencyError{Message: fmt.Sprintf(format, args...)}
}

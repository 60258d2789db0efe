package xlwt

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DumpTree logs a formula parse tree one token per line, children
// indented under their parent, for debugging classification problems.
// Call it after Transform to see assigned classes; before, every
// classifiable token shows "?".
func DumpTree(log *zap.SugaredLogger, root *ParseNode) {
	dumpNode(log, root, 0)
}

func dumpNode(log *zap.SugaredLogger, node *ParseNode, level int) {
	token := node.Token()
	log.Debugf("%s%s%s", strings.Repeat("  ", level), token, payloadSummary(token))
	for _, child := range node.Children() {
		dumpNode(log, child, level+1)
	}
}

func payloadSummary(token *Ptg) string {
	switch token.Opcode {
	case tInt:
		return fmt.Sprintf(" %d", token.Int)
	case tNum:
		return fmt.Sprintf(" %g", token.Num)
	case tStr:
		return fmt.Sprintf(" %q", token.Str)
	case tBool:
		return fmt.Sprintf(" %v", token.Bool)
	case tErr:
		return fmt.Sprintf(" 0x%02x", token.ErrCode)
	case tName:
		return fmt.Sprintf(" name=%d", token.NameIdx)
	case tRef:
		return fmt.Sprintf(" (%d,%d)", token.Row1, token.Col1)
	case tArea:
		return fmt.Sprintf(" (%d,%d):(%d,%d)", token.Row1, token.Col1, token.Row2, token.Col2)
	case tRef3d:
		return fmt.Sprintf(" sheet=%d (%d,%d)", token.ExtSheetIdx, token.Row1, token.Col1)
	case tArea3d:
		return fmt.Sprintf(" sheet=%d (%d,%d):(%d,%d)",
			token.ExtSheetIdx, token.Row1, token.Col1, token.Row2, token.Col2)
	case tArray:
		return fmt.Sprintf(" %dx%d", len(token.ArrayVals), len(token.ArrayVals[0]))
	case tFunc, tFuncVar:
		return fmt.Sprintf(" nargs=%d", token.NumArgs)
	}
	return ""
}

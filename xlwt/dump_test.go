package xlwt

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yamitzky/xlwt-go/util/testutil"
)

func TestDumpTree(t *testing.T) {
	core, observed := observer.New(zap.DebugLevel)
	log := zap.New(core).Sugar()

	root := funcNode(t, "SUM", areaNode())
	transformCell(t, root)
	DumpTree(log, root)

	entries := observed.All()
	require.Len(t, entries, 2)
	require.Contains(t, entries[0].Message, "SUM")
	require.Contains(t, entries[0].Message, "[V]")
	require.Contains(t, entries[1].Message, "tArea[R]")
}

func TestDumpTreeVerbose(t *testing.T) {
	// visible with -v only
	log := testutil.NewSimpleLogger(testing.Verbose())
	root := funcNode(t, "IF",
		refNode(),
		funcNode(t, "MMULT", funcNode(t, "SUM", areaNode()), areaNode()),
		NewNode(NewStrPtg("no")))
	transformCell(t, root)
	DumpTree(log, root)
}

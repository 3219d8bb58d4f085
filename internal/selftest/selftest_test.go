package selftest_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/complykit/pycomply/internal/report"
	"github.com/complykit/pycomply/internal/selftest"
)

func TestRunReportsEveryAssertion(testInstance *testing.T) {
	var outputBuffer bytes.Buffer

	allPassed := selftest.Run(&outputBuffer, report.AsciiSymbolSet())
	require.True(testInstance, allPassed)

	output := outputBuffer.String()
	require.Contains(testInstance, output, "Running embedded tests...")
	require.Contains(testInstance, output, "[OK] report score calculation")
	require.Contains(testInstance, output, "[OK] repository type detection")
	require.Contains(testInstance, output, "[OK] All embedded tests passed!")
	require.NotContains(testInstance, output, "[X]")
}

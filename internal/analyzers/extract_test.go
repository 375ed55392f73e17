package analyzers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crashlens/crashlens/internal/engine"
)

const sampleLog = `Fallout4.exe v1.10.163
Buffout 4 v1.26.2

Unhandled exception "EXCEPTION_ACCESS_VIOLATION" at 0x7FF6C3E579A7 Fallout4.exe+2579A7

SYSTEM SPECS:
	OS: Microsoft Windows 10 Pro
	GPU #1: NVIDIA GeForce RTX 3080
	GPU #2: Microsoft Basic Render Driver

PROBABLE CALL STACK:
	[0] 0x7FF6C3E579A7 Fallout4.exe+2579A7
	[1] 0x7FF6C3E6AAAA Fallout4.exe+26AAAA -> 0x0001F670
	[2] 0x7FF6C4000000 nvwgf2umx.dll+100000

PLUGINS:
	[00] Fallout4.esm
	[01] DLCRobot.esm
	[FE:000] ScrapEverything.esp
	[FE:001] KnockoutFramework.esp
`

func seededContext(t *testing.T, raw string) *engine.Context {
	t.Helper()
	sc := engine.NewContext("sample.log")
	sc.Set(engine.KeyRawText, raw)
	res, err := NewExtract().Execute(context.Background(), sc)
	require.NoError(t, err)
	require.True(t, res.Success)
	return sc
}

func TestExtractMainError(t *testing.T) {
	sc := seededContext(t, sampleLog)

	mainError, err := engine.Get[string](sc, engine.KeyMainError)
	require.NoError(t, err)
	assert.Contains(t, mainError, "EXCEPTION_ACCESS_VIOLATION")
}

func TestExtractPlugins(t *testing.T) {
	sc := seededContext(t, sampleLog)

	plugins, err := engine.Get[map[string]string](sc, engine.KeyPlugins)
	require.NoError(t, err)
	assert.Len(t, plugins, 4)
	assert.Equal(t, "FE:000", plugins["ScrapEverything.esp"])
	assert.Equal(t, "00", plugins["Fallout4.esm"])
}

func TestExtractCallStack(t *testing.T) {
	sc := seededContext(t, sampleLog)

	stack, err := engine.Get[[]string](sc, engine.KeyCallStack)
	require.NoError(t, err)
	require.Len(t, stack, 3)
	assert.Contains(t, stack[2], "nvwgf2umx.dll")
}

func TestExtractGPU(t *testing.T) {
	sc := seededContext(t, sampleLog)

	gpu, err := engine.Get[string](sc, engine.KeyGPU)
	require.NoError(t, err)
	assert.Equal(t, "NVIDIA GeForce RTX 3080", gpu)
}

func TestExtractEmptyLogSetsNothing(t *testing.T) {
	sc := engine.NewContext("empty.log")
	sc.Set(engine.KeyRawText, "just some text\nwith no recognizable sections\n")

	res, err := NewExtract().Execute(context.Background(), sc)
	require.NoError(t, err)
	assert.True(t, res.Success)

	assert.False(t, sc.Has(engine.KeyMainError))
	assert.False(t, sc.Has(engine.KeyPlugins))
	assert.False(t, sc.Has(engine.KeyCallStack))
}

func TestExtractCanRun(t *testing.T) {
	e := NewExtract()

	assert.False(t, e.CanRun(engine.NewContext("t")))

	sc := engine.NewContext("t")
	sc.Set(engine.KeyRawText, "text")
	assert.True(t, e.CanRun(sc))
}

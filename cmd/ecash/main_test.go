package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dusk-network/dusk-ecash/pkg/config"
	"github.com/dusk-network/dusk-ecash/pkg/core/authority"
	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/util/random"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func run(t *testing.T, args ...string) (string, error) {
	prev := config.Get()
	defer config.Mock(&prev)

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"ecash", "--loglevel", "error"}, args...))
	return out.String(), err
}

func TestRISFormat(t *testing.T) {
	c, err := coin.New("alice", 20, coin.DefaultParams(), random.Crypto)
	require.NoError(t, err)

	ris, err := parseRIS(formatRIS(c.Left))
	require.NoError(t, err)
	assert.True(t, ris.Equal(c.Left))

	_, err = parseRIS("zz")
	assert.Error(t, err)
	_, err = parseRIS("")
	assert.Error(t, err)
}

func TestExitOnInvariant(t *testing.T) {
	err := exitOnInvariant(errors.Wrap(coin.ErrInvariantViolation, "coin 00ff"))
	exit, ok := err.(cli.ExitCoder)
	require.True(t, ok)
	assert.Equal(t, exitInvariantViolation, exit.ExitCode())

	other := errors.New("ledger closed")
	assert.Equal(t, other, exitOnInvariant(other))
	assert.Nil(t, exitOnInvariant(nil))
}

func TestParseSides(t *testing.T) {
	sources, err := parseSides("left, right,1", 3)
	require.NoError(t, err)

	for i, want := range []int{0, 1, 1} {
		got, err := sources[i].Intn(2)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = parseSides("left", 2)
	assert.Error(t, err)
	_, err = parseSides("up,down", 2)
	assert.Error(t, err)

	sources, err = parseSides("", 2)
	require.NoError(t, err)
	assert.Len(t, sources, 2)
}

func TestDetectCommand(t *testing.T) {
	c, err := coin.New("alice", 20, coin.DefaultParams(), random.Crypto)
	require.NoError(t, err)

	out, err := run(t, "detect", "--guid", c.GUID, "--ris1", formatRIS(c.Left), "--ris2", formatRIS(c.Right))
	require.NoError(t, err)
	assert.Contains(t, out, "double spent by alice")

	out, err = run(t, "detect", "--guid", c.GUID, "--ris1", formatRIS(c.Left), "--ris2", formatRIS(c.Left))
	require.NoError(t, err)
	assert.Contains(t, out, "no identity revealed")

	_, err = run(t, "detect", "--ris1", "00", "--ris2", "00")
	assert.Error(t, err)
}

func TestKeygenCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authority.key")

	out, err := run(t, "keygen", "--bits", "1024", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1024 bit")

	key, err := authority.LoadKeyFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, key.N.BitLen())

	_, err = run(t, "keygen", "--bits", "1000", "--out", path)
	assert.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	dir := t.TempDir()
	keyfile := filepath.Join(dir, "authority.key")
	_, err := run(t, "keygen", "--bits", "1024", "--out", keyfile)
	require.NoError(t, err)

	out, err := run(t, "simulate", "--identity", "alice", "--keyfile", keyfile, "--copies", "4", "--sides", "left,right")
	require.NoError(t, err)
	assert.Contains(t, out, "merchant-1 deposited")
	assert.Contains(t, out, "double spent by alice")

	out, err = run(t, "simulate", "--identity", "alice", "--keyfile", keyfile, "--copies", "4", "--sides", "right,right")
	require.NoError(t, err)
	assert.Contains(t, out, "no identity revealed")
	assert.Contains(t, out, "already deposited")
}

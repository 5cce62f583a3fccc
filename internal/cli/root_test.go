package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sqlite "go.riyazali.net/sqlite-collate"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(func(bool) (*zap.Logger, error) { return zap.NewNop(), nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{nil, ExitOK},
		{errors.New("plain"), ExitFailure},
		{&sqlite.Error{Kind: sqlite.ConnectionOpen}, ExitConnectionOpen},
		{&sqlite.Error{Kind: sqlite.StatementExecution}, ExitStatementExecution},
		{&sqlite.Error{Kind: sqlite.QueryExecution}, ExitQueryExecution},
		{&sqlite.Error{Kind: sqlite.CollatorInit}, ExitCollatorInit},
		{fmt.Errorf("wrapped: %w", &sqlite.Error{Kind: sqlite.CollationRegistration}), ExitCollationRegistration},
	}

	for _, c := range cases {
		assert.Equal(t, c.code, ExitCode(c.err), "%v", c.err)
	}
}

func TestBootstrapCommand(t *testing.T) {
	out, err := run(t, "bootstrap", "--database", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "starting application...")
	assert.Contains(t, out, "5            淺")
}

func TestCollateCommand(t *testing.T) {
	out, err := run(t, "collate", "--database", filepath.Join(t.TempDir(), "test.db"), "--width", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "~~~~~~ ~~~~~~ \n")
}

func TestCompareCommand(t *testing.T) {
	cases := []struct {
		args   []string
		expect string
	}{
		{[]string{"compare", "a", "Å"}, "0\n"},
		{[]string{"compare", "bb", "b\tb"}, "0\n"},
		{[]string{"compare", "a", "b"}, "-1\n"},
		{[]string{"compare", "--strength", "tertiary", "a", "Å"}, "-1\n"},
		{[]string{"compare", "--ignore-whitespace=false", "b b", "bb"}, "-1\n"},
	}

	for _, c := range cases {
		out, err := run(t, c.args...)
		require.NoError(t, err, "%v", c.args)
		assert.Equal(t, c.expect, out, "%v", c.args)
	}
}

func TestCommandFailures(t *testing.T) {
	_, err := run(t, "compare", "--locale", "!!", "a", "b")
	assert.Equal(t, ExitCollatorInit, ExitCode(err))

	_, err = run(t, "bootstrap", "--database", filepath.Join(t.TempDir(), "missing", "test.db"))
	assert.Equal(t, ExitConnectionOpen, ExitCode(err))

	_, err = run(t, "bootstrap", "--output", "xml")
	assert.Equal(t, ExitFailure, ExitCode(err))

	_, err = run(t, "compare", "only-one")
	assert.Equal(t, ExitFailure, ExitCode(err))
}

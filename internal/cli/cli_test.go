package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/salesboard/internal/config"
	"github.com/rshade/salesboard/internal/format"
	"github.com/rshade/salesboard/internal/kpi"
	"github.com/rshade/salesboard/internal/palette"
	"github.com/rshade/salesboard/internal/sales"
)

const ordersCSV = `order_id,order_date,customer_id,category,product,quantity,unit_price,unit_cost
A1,2026-09-03,C1,Electronics,Headphones,2,50,30
A2,2026-09-15,C2,Home,Lamp,1,40,20
B1,2026-10-01,C1,Electronics,Headphones,1,50,30
B1,2026-10-01,C1,Home,Lamp,2,40,20
B2,2026-10-02,C3,Books,Novel,3,1000,600
`

// executeCmd runs the root command with an isolated home directory and quiet logging.
func executeCmd(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	vars := map[string]string{config.EnvLogLevel: "error"}
	for k, v := range env {
		vars[k] = v
	}
	lookup := func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}

	root := NewRootCmdWithEnv("1.2.3", lookup)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCmd(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "salesboard version 1.2.3 (commit unknown)\n", out)
}

func TestFormatCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"grouped number", []string{"format", "1234.5", "-d", "2"}, "1,234.50\n"},
		{"thousands separators accepted", []string{"format", "1,234"}, "1,234\n"},
		{"compact", []string{"format", "1530000", "--kind", "compact"}, "$1.5M\n"},
		{"percent", []string{"format", "12.345", "-k", "percent", "-d", "1"}, "12.3%\n"},
		{"symbol flag", []string{"format", "1234", "-k", "currency", "--symbol", "€"}, "€1,234\n"},
		{"negative currency", []string{"format", "-k", "currency", "--", "-5"}, "-$5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCmd(t, nil, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatCmd_Errors(t *testing.T) {
	_, err := executeCmd(t, nil, "format", "10", "--kind", "scientific")
	require.ErrorIs(t, err, format.ErrInvalidFormatKind)

	_, err = executeCmd(t, nil, "format", "NaN")
	require.ErrorIs(t, err, format.ErrNonFiniteValue)

	_, err = executeCmd(t, nil, "format", "ten")
	require.Error(t, err)
}

func TestFormatCmd_UsesConfiguredSymbol(t *testing.T) {
	cfg := writeFile(t, "salesboard.yaml", "currency_symbol: \"£\"\n")
	out, err := executeCmd(t, map[string]string{config.EnvConfigPath: cfg}, "format", "10", "-k", "currency")
	require.NoError(t, err)
	assert.Equal(t, "£10\n", out)
}

func TestCompareCmd(t *testing.T) {
	out, err := executeCmd(t, nil, "compare", "110", "100", "-o", "plain", "-l", "Orders")
	require.NoError(t, err)
	assert.Equal(t, "[0,0] Orders: 110\n  change: ▲ 10.0% vs 100\n", out)

	out, err = executeCmd(t, nil, "compare", "0", "0", "-o", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "● 0.0%", "zero baseline is neutral")
}

func TestCompareCmd_ReverseGoodJSON(t *testing.T) {
	out, err := executeCmd(t, nil, "compare", "820", "1000", "--reverse-good", "-k", "currency", "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Cards []struct {
			Card kpi.CardDescriptor `json:"card"`
		} `json:"cards"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Cards, 1)

	change := doc.Cards[0].Card.Change
	require.NotNil(t, change)
	assert.Equal(t, kpi.SignNegative, change.Sign)
	assert.True(t, change.ReverseGood)
	assert.Equal(t, palette.Success, change.Role)
	assert.Equal(t, "$1,000", doc.Cards[0].Card.Previous)
}

func TestProgressCmd(t *testing.T) {
	out, err := executeCmd(t, nil, "progress", "42000", "50000", "-o", "plain", "-l", "Revenue")
	require.NoError(t, err)
	assert.Contains(t, out, "[0,0] Revenue: $42,000\n")
	assert.Contains(t, out, "84.0% of $50,000 (near target)")

	out, err = executeCmd(t, nil, "progress", "5", "0", "-o", "plain", "-k", "number")
	require.NoError(t, err)
	assert.Contains(t, out, "0.0% of 0 (below target)", "zero target reports no progress")
}

func TestProgressCmd_ExitOnMiss(t *testing.T) {
	_, err := executeCmd(t, nil, "progress", "30000", "50000", "-o", "plain", "--exit-on-miss")
	var exitErr *TargetExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, defaultMissExitCode, exitErr.ExitCode)
	assert.Contains(t, exitErr.Error(), "below target")

	_, err = executeCmd(t, nil, "progress", "30000", "50000", "-o", "plain", "--exit-on-miss", "--exit-code", "9")
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 9, exitErr.ExitCode)

	_, err = executeCmd(t, nil, "progress", "60000", "50000", "-o", "plain", "--exit-on-miss")
	require.NoError(t, err)
}

func TestDashboardCmd_Plain(t *testing.T) {
	data := writeFile(t, "orders.csv", ordersCSV)
	out, err := executeCmd(t, nil, "dashboard", "--data", data, "-o", "plain", "--target", "revenue=5000")
	require.NoError(t, err)

	for _, want := range []string{
		"Sales overview · Oct 2026 through Oct 2\n\n",
		"[0,0] Revenue: $3.1K\n",
		"Oct 2026 vs Sep 2026",
		"Orders: 2\n  change: ● 0.0% vs 2\n",
		"Gross margin: 40.3%",
		"62.6% of $5,000 (below target)",
		"#1 Books: $3.0K",
	} {
		assert.Contains(t, out, want)
	}
}

func TestDashboardCmd_JSONUsesConfig(t *testing.T) {
	data := writeFile(t, "orders.csv", ordersCSV)
	cfg := writeFile(t, "salesboard.yaml", `
columns: 4
targets:
  orders: 4
`)
	out, err := executeCmd(t, nil, "--config", cfg, "dashboard", "--data", data, "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Columns int `json:"columns"`
		Cards   []struct {
			Row    int                `json:"row"`
			Column int                `json:"column"`
			Card   kpi.CardDescriptor `json:"card"`
		} `json:"cards"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc), "json output has no title line")
	assert.Equal(t, 4, doc.Columns)

	var found bool
	for i, c := range doc.Cards {
		assert.Equal(t, i%4, c.Column)
		assert.Equal(t, i/4, c.Row)
		if c.Card.Label == "Orders target" {
			found = true
			assert.Equal(t, kpi.StatusBelowTarget, c.Card.Progress.Status)
		}
	}
	assert.True(t, found, "configured target produces a progress card")
}

func TestDashboardCmd_Errors(t *testing.T) {
	data := writeFile(t, "orders.csv", ordersCSV)
	headerOnly := writeFile(t, "empty.csv", "order_id,order_date,customer_id,category,product,quantity,unit_price\n")

	_, err := executeCmd(t, nil, "dashboard")
	require.Error(t, err, "--data is required")

	_, err = executeCmd(t, nil, "dashboard", "--data", data, "--columns", "0")
	require.ErrorIs(t, err, kpi.ErrInvalidColumnCount)

	_, err = executeCmd(t, nil, "dashboard", "--data", data, "--as-of", "10/02/2026")
	require.Error(t, err)

	_, err = executeCmd(t, nil, "dashboard", "--data", headerOnly)
	require.ErrorIs(t, err, ErrNoOrders)

	_, err = executeCmd(t, nil, "dashboard", "--data", writeFile(t, "bad.csv", "order_id\n1\n"))
	require.ErrorIs(t, err, sales.ErrMissingColumn)

	_, err = executeCmd(t, nil, "dashboard", "--data", data, "--target", "revenue=-1")
	require.Error(t, err)

	_, err = executeCmd(t, nil, "dashboard", "--data", data, "-o", "html")
	require.Error(t, err)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	cfg := writeFile(t, "salesboard.yaml", "version: 2.0.0\ncolumns: 0\n")
	_, err := executeCmd(t, nil, "--config", cfg, "version")
	require.ErrorIs(t, err, config.ErrUnsupportedVersion)
	require.ErrorIs(t, err, kpi.ErrInvalidColumnCount)
}

func TestRootCmd_ColumnsFromEnv(t *testing.T) {
	data := writeFile(t, "orders.csv", ordersCSV)
	out, err := executeCmd(t, map[string]string{config.EnvColumns: "1"}, "dashboard", "--data", data, "-o", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "[1,0] Orders: 2")
}

func TestMergeTargets(t *testing.T) {
	merged, err := mergeTargets(map[string]float64{"revenue": 100, "orders": 5}, map[string]string{"Revenue": "2,500"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"revenue": 2500, "orders": 5}, merged)

	_, err = mergeTargets(nil, map[string]string{"orders": "NaN"})
	require.Error(t, err)
}

package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runInspect(t *testing.T, arguments ...string) string {
	var out bytes.Buffer

	app := &cli.App{
		Name:     "railsim",
		Writer:   &out,
		Commands: []*cli.Command{RegisterCLI()},
	}
	require.NoError(t, app.Run(append([]string{"railsim", "network", "inspect"}, arguments...)))

	return out.String()
}

func TestNetworkInspect(t *testing.T) {
	output := runInspect(t)

	assert.Contains(t, output, "Saint Petersburg")
	assert.Contains(t, output, "Yekaterinburg (100.0 km)")
	assert.Contains(t, output, "W3:coupe")
}

func TestNetworkInspectYAML(t *testing.T) {
	output := runInspect(t, "--yaml")

	config, err := Parse([]byte(output))
	require.NoError(t, err)
	assert.Len(t, config.Network.Stations, 6)
	assert.Len(t, config.Trains, 5)
}

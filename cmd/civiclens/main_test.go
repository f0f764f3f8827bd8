package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/civiclens/civiclens/normalize"
)

func TestSetupLogger(t *testing.T) {
	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
			assert.NoError(t, setupLogger(newContext(level)), level)
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestBuildSourceRequests(t *testing.T) {
	t.Run("defaults to comprehensive preset", func(t *testing.T) {
		reqs := buildSourceRequests(nil, 10)
		assert.Len(t, reqs, 11)
	})

	t.Run("named sources only", func(t *testing.T) {
		reqs := buildSourceRequests([]string{normalize.SourcePermits, normalize.SourceLicenses}, 5)
		require.Len(t, reqs, 2)
		assert.Equal(t, normalize.SourcePermits, reqs[0].Source)
		assert.Equal(t, 5, reqs[0].Limit)
		assert.Equal(t, normalize.SourceLicenses, reqs[1].Source)
	})
}

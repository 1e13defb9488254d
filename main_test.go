package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"planner/traveler"
)

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestRender(t *testing.T) {
	var logs bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&logs)
	t.Cleanup(func() { log.Logger = previous })

	grid, err := loadGrid("")
	require.NoError(t, err)
	renderer := traveler.NewRenderer(grid, false)

	t.Run("logging a failed write", func(t *testing.T) {
		logs.Reset()

		err := render(brokenWriter{}, "values", func(w io.Writer) error {
			return renderer.Values(w, map[traveler.Cell]float64{})
		})

		require.Error(t, err)
		require.Contains(t, logs.String(), "failed to render values")
		require.Contains(t, logs.String(), "closed pipe")
	})

	t.Run("staying quiet on success", func(t *testing.T) {
		logs.Reset()
		var out bytes.Buffer

		err := render(&out, "grid", renderer.Grid)

		require.NoError(t, err)
		require.Empty(t, logs.String())
		require.Contains(t, out.String(), "S")
	})
}

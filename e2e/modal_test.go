//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModalOpenAndEscapeRestoresFocus(t *testing.T) {
	t.Parallel()
	tf := NewDriver(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithFixture(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Dodo"), "Events should be listed")

	require.NoError(t, tf.Down())
	require.NoError(t, tf.Down())
	require.True(t, tf.SeePlain("Event 2 of 4"), "Dodo should be focused")

	require.NoError(t, tf.Enter())
	require.True(t, tf.SeePlain("1681 – Dodo"), "Detail heading should be shown")
	require.True(t, tf.SeePlain("Modal opened for Dodo. Use Tab to navigate, Escape to close."), "Opening should be announced")
	require.True(t, tf.SeePlain("A flightless bird of Mauritius."), "Description should be shown")

	require.NoError(t, tf.Escape())
	require.True(t, tf.SeePlain("Modal closed. Returned to Dodo timeline event."), "Closing should name the focused event")
}

func TestModalNextReplacesSubject(t *testing.T) {
	t.Parallel()
	tf := NewDriver(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithFixture(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Dodo"), "Events should be listed")

	require.NoError(t, tf.Down())
	require.NoError(t, tf.Down())
	require.True(t, tf.SeePlain("Event 2 of 4"), "Dodo should be focused")
	require.NoError(t, tf.Enter())
	require.True(t, tf.SeePlain("Modal opened for Dodo"), "Dodo should be shown")

	require.NoError(t, tf.SendKeys(KeyNext))
	require.True(t, tf.SeePlain("1445 – Moa"), "Next should show Moa")
	require.True(t, tf.SeePlain("[ image unavailable: Moa ]"), "Missing image should fall back")

	// q closes the dialog rather than the application
	require.NoError(t, tf.Quit())
	require.True(t, tf.SeePlain("Modal closed. Returned to Dodo timeline event."), "Focus should return to the original row")
}

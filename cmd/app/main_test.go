package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestAppGraphResolves(t *testing.T) {
	require.NoError(t, fx.ValidateApp(appModules))
}

package config

import (
	"testing"

	"github.com/kegliz/zxsyn/duostra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c, err := Load()
	require.NoError(err)
	assert.False(c.GetBool("debug"))
	assert.Equal(8080, c.GetInt("port"))

	cfg, err := c.Duostra()
	require.NoError(err)
	assert.Equal(duostra.SchedulerSearch, cfg.Scheduler)
	assert.Equal(duostra.RouterDuostra, cfg.Router)
	assert.Equal(duostra.PlacerDFS, cfg.Placer)
	assert.Equal(duostra.MaxOption, cfg.AvailableTime)
	assert.Equal(duostra.MinOption, cfg.TieBreaker)
	assert.Equal(4, cfg.Depth)
	assert.True(cfg.NeverCache)
	assert.False(cfg.ExecuteSingle)
}

func TestLoad_EnvOverride(t *testing.T) {
	require := require.New(t)

	t.Setenv("ZXSYN_SCHEDULER", "greedy")
	t.Setenv("ZXSYN_DEPTH", "7")
	c, err := Load()
	require.NoError(err)
	cfg, err := c.Duostra()
	require.NoError(err)
	assert.Equal(t, duostra.SchedulerGreedy, cfg.Scheduler)
	assert.Equal(t, 7, cfg.Depth)
}

func TestLoad_BadOption(t *testing.T) {
	require := require.New(t)

	t.Setenv("ZXSYN_ROUTER", "teleport")
	c, err := Load()
	require.NoError(err)
	_, err = c.Duostra()
	assert.Error(t, err)
}

package main

import (
	"context"
	"strings"
	"testing"

	"github.com/bvbever/osm2pgsql/index/sparse"
	"github.com/bvbever/osm2pgsql/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	id, loc, err := parseLine("42 13.4050000 52.5200000")
	require.NoError(t, err)
	assert.Equal(t, model.NodeID(42), id)
	assert.Equal(t, model.NewLocation(13.405, 52.52), loc)

	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "42 13.4"},
		{"too many fields", "42 13.4 52.5 7"},
		{"negative id", "-1 13.4 52.5"},
		{"bad lon", "1 east 52.5"},
		{"bad lat", "1 13.4 north"},
		{"out of range", "1 181 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseLine(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	input := strings.Join([]string{
		"# id lon lat",
		"10 1.0 1.0",
		"",
		"5 2.0 2.0",
		"   ",
		"10 3.0 3.0",
	}, "\n")

	m := sparse.New[model.NodeID, model.Location]()
	lines, err := load(context.Background(), strings.NewReader(input), m)
	require.NoError(t, err)
	assert.Equal(t, 6, lines)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, model.NewLocation(3, 3), m.GetNoErr(10))
	assert.Equal(t, model.NewLocation(2, 2), m.GetNoErr(5))
}

func TestLoad_ParseError(t *testing.T) {
	m := sparse.New[model.NodeID, model.Location]()
	_, err := load(context.Background(), strings.NewReader("1 0 0\n2 x 0\n3 0 0\n"), m)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, 1, m.Len())
}

func TestLoad_Canceled(t *testing.T) {
	input := strings.Repeat("1 0 0\n", ctxCheckInterval+1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := sparse.New[model.NodeID, model.Location]()
	lines, err := load(ctx, strings.NewReader(input), m)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ctxCheckInterval, lines)
}

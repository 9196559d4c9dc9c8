// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/tis/node"
)

type testPorts map[node.Direction]node.Cell

func (p testPorts) Neighbor(side node.Direction) node.Cell {
	return p[side]
}

func TestSource_Values(t *testing.T) {
	assert := assert.New(t)

	sc := &Source{Side: node.DIR_DOWN, Values: []int{1, 2000}}
	assert.True(sc.Passive())
	assert.False(sc.Accepts(node.DIR_DOWN))

	// No neighbor, nothing staged.
	progress, err := sc.Step(testPorts{})
	assert.NoError(err)
	assert.False(progress)
	assert.True(sc.Blocked())
	assert.Equal(2, sc.Remaining())

	ports := testPorts{node.DIR_DOWN: &Sink{}}

	progress, err = sc.Step(ports)
	assert.NoError(err)
	assert.True(progress)
	xfer, ok := sc.Pending()
	assert.True(ok)
	assert.Equal(node.Transfer{Side: node.DIR_DOWN, Value: 1}, xfer)

	progress, err = sc.Step(ports)
	assert.NoError(err)
	assert.False(progress)
	assert.True(sc.Blocked())

	assert.Equal(1, sc.Claim())

	_, err = sc.Step(ports)
	assert.NoError(err)
	assert.Equal(999, sc.Claim())
	assert.Equal(0, sc.Remaining())

	progress, err = sc.Step(ports)
	assert.NoError(err)
	assert.False(progress)
	_, ok = sc.Pending()
	assert.False(ok)

	sc.Reset()
	assert.Equal(2, sc.Remaining())
}

func TestSource_Input(t *testing.T) {
	assert := assert.New(t)

	sc := &Source{Side: node.DIR_RIGHT, Input: strings.NewReader("4 -5\n  6\nx")}
	ports := testPorts{node.DIR_RIGHT: &Sink{}}

	for _, value := range []int{4, -5, 6} {
		progress, err := sc.Step(ports)
		assert.NoError(err)
		assert.True(progress)
		assert.Equal(value, sc.Claim())
	}

	_, err := sc.Step(ports)
	assert.ErrorIs(err, ErrParseInput("x"))
}

func TestSink(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	sk := &Sink{Output: out}
	sc := &Source{Side: node.DIR_RIGHT, Values: []int{3, -4}}

	sinkPorts := testPorts{node.DIR_LEFT: sc}
	sourcePorts := testPorts{node.DIR_RIGHT: sk}

	assert.True(sk.Accepts(node.DIR_UP))
	assert.True(sk.Passive())

	progress, err := sk.Step(sinkPorts)
	assert.NoError(err)
	assert.False(progress)
	assert.True(sk.Blocked())

	for range 2 {
		_, err = sc.Step(sourcePorts)
		assert.NoError(err)
		progress, err = sk.Step(sinkPorts)
		assert.NoError(err)
		assert.True(progress)
	}

	assert.Equal([]int{3, -4}, sk.Values())
	assert.Equal("3\n-4\n", out.String())

	_, ok := sk.Pending()
	assert.False(ok)

	sk.Reset()
	assert.Empty(sk.Values())
}

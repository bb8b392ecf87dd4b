package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/liquid-sort/constants"
	"github.com/lixenwraith/liquid-sort/core"
)

func TestLayoutCentersRow(t *testing.T) {
	l := NewLayout(80, 4, 4)
	width := 4*(constants.ContainerWidth+2) + 3*constants.ContainerGap
	assert.Equal(t, (80-width)/2, l.OriginX)
	assert.Equal(t, l.OriginX+2*slot, l.ContainerX(2))
	assert.Equal(t, l.RimY+4, l.BottomY())

	narrow := NewLayout(10, 4, 4)
	assert.Equal(t, 0, narrow.OriginX, "clamped on narrow screens")
}

func TestKeyLabel(t *testing.T) {
	assert.Equal(t, '1', KeyLabel(0))
	assert.Equal(t, '9', KeyLabel(8))
	assert.Equal(t, '0', KeyLabel(9))
	assert.Equal(t, ' ', KeyLabel(10))
	assert.Equal(t, ' ', KeyLabel(core.NoContainer))
}

package chatmsg_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/chatmsg"
	"github.com/stretchr/testify/assert"
)

func TestExpanded(t *testing.T) {
	t.Parallel()

	for _, selected := range []bool{false, true} {
		for _, recent := range []bool{false, true} {
			for _, insert := range []bool{false, true} {
				name := fmt.Sprintf("selected=%v recent=%v insert=%v", selected, recent, insert)
				want := selected || (recent && insert)
				t.Run(name, func(t *testing.T) {
					t.Parallel()
					p := chatmsg.Props{Selected: selected, Recent: recent, InsertMode: insert}
					assert.Equal(t, want, chatmsg.Expanded(p))
				})
			}
		}
	}
}

func TestExpanded_IgnoresLoading(t *testing.T) {
	t.Parallel()

	assert.False(t, chatmsg.Expanded(chatmsg.Props{Loading: true}))
	assert.True(t, chatmsg.Expanded(chatmsg.Props{Selected: true, Loading: true}))
}

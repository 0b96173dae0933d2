package bsp

// SetState transitions a leaf's client to newState, implementing
// last_state/state threading and the vacancy flip on entry/exit of
// floating/fullscreen. occluders is every other leaf in stacking order
// above n; any fullscreen occluder is demoted to its own LastState when
// n enters fullscreen (the "neutralize any occluding fullscreen peer"
// rule), since only one fullscreen client may occupy the stack at the
// effective top simultaneously.
func SetState(n *Node, newState State, occluders []*Node) {
	c := n.Client
	if c == nil || c.State == newState {
		return
	}

	wasVacant := c.State == StateFloating || c.State == StateFullscreen
	c.LastState = c.State
	c.State = newState
	isVacant := newState == StateFloating || newState == StateFullscreen

	if wasVacant && !isVacant {
		n.Vacant = false
	} else if !wasVacant && isVacant {
		n.Vacant = true
	}

	if newState == StateFullscreen {
		for _, occ := range occluders {
			if occ.Client != nil && occ.Client.State == StateFullscreen && occ != n {
				occ.Client.State = occ.Client.LastState
				refreshLeafFlags(occ)
			}
		}
	}

	propagateUp(n)
}

// SetLayer transitions a leaf's layer along the parallel 3-state axis.
// It mirrors SetState's occluder-neutralization rule: a peer already
// occupying the same (or a higher) layer and fullscreen state is
// demoted, since the stacking-level ordering is keyed on both layer and
// state (see stack.Level).
func SetLayer(n *Node, newLayer Layer, occluders []*Node) {
	c := n.Client
	if c == nil || c.Layer == newLayer {
		return
	}
	c.LastLayer = c.Layer
	c.Layer = newLayer

	for _, occ := range occluders {
		if occ == n || occ.Client == nil {
			continue
		}
		if occ.Client.State == StateFullscreen && occ.Client.Layer >= newLayer {
			occ.Client.State = occ.Client.LastState
			refreshLeafFlags(occ)
		}
	}
}

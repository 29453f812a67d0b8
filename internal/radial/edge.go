package radial

// buttonEdge turns sampled button states into press/release transitions.
type buttonEdge struct {
	down bool
}

func (b *buttonEdge) update(down bool) (pressed, released bool) {
	pressed = down && !b.down
	released = !down && b.down
	b.down = down
	return pressed, released
}

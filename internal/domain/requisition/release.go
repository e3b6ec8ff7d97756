package requisition

// Decision decisão do administrador para um item.
// ReleaseAll libera o solicitado; caso contrário vale ManualQuantity (ausente = 0).
type Decision struct {
	ItemID         string
	ReleaseAll     bool
	ManualQuantity *int
}

// ReleasedQuantity resolve a quantidade liberada de uma decisão, limitada a [0, requested].
func ReleasedQuantity(d Decision, requested int) int {
	released := 0
	if d.ReleaseAll {
		released = requested
	} else if d.ManualQuantity != nil {
		released = *d.ManualQuantity
	}
	return Clamp(released, 0, requested)
}

// ClampToStock limita a quantidade liberada ao saldo disponível na entrega.
func ClampToStock(released, onHand int) int {
	if onHand <= 0 {
		return 0
	}
	return Clamp(released, 0, onHand)
}

// Clamp limita v ao intervalo [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

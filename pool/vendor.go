package pool

// VendorMask returns the compatibility bitmask for an interned vendor ID,
// or 0 if the vendor has no configured class (meaning it can't match
// anything but itself — spec.md §4.11: "can't match" returns illegal).
func (p *Pool) VendorMask(v ID) uint32 {
	if v == EmptyID {
		v = p.emptyVendorID()
	}
	return p.VendorMasks[v]
}

// emptyVendorID is the stand-in identity used for a missing vendor
// (spec.md §3: "vendor (...) zero = empty" and §4.11: "treating empty
// vendor as ID_EMPTY"). EmptyID (0) never collides with a real interned
// vendor, so it can be used directly as the map key.
func (p *Pool) emptyVendorID() ID {
	return EmptyID
}

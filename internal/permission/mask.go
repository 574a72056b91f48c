package permission

// Capability is one grantable permission bit.
type Capability int

const (
	Admin Capability = 1 << iota // manage catalog, users, and booking reviews
	Book                         // request bookings
	View                         // see own bookings and the calendar
)

// Mask is a user's capability set, stored as an additive bit mask
// (e.g. 6 = Book|View, 7 = everything). The zero mask grants nothing,
// which also covers anonymous requests.
type Mask int

// Has reports whether the mask includes the capability. All route guards
// and conditional rendering decisions go through this predicate rather
// than inlining bit math.
func (m Mask) Has(c Capability) bool {
	return m&Mask(c) != 0
}

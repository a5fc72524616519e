package tribool

// Tribool is a boolean with an additional "undefined" state.
type Tribool uint8

const (
	// Undef is the undefined state.
	Undef = Tribool(0)
	// True state
	True = Tribool(1)
	// False state
	False = Tribool(2)
)

// NewFromBool returns a tribool from a given boolean value.
func NewFromBool(b bool) Tribool {
	if b {
		return True
	}
	return False
}

// Not negates a tribool. Undef stays Undef.
func (t Tribool) Not() Tribool {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Undef
	}
}

// True returns true if the tribool is true.
func (t Tribool) True() bool {
	return t == True
}

// False returns true if the tribool is false.
func (t Tribool) False() bool {
	return t == False
}

// Undef returns true if the tribool is undefined.
func (t Tribool) Undef() bool {
	return t == Undef
}

// String implements the Stringer interface.
func (t Tribool) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undef"
	}
}

package dtype

// CanCast returns true if every value of kind "from" is representable in
// kind "to" without loss of range or precision class.
//
// These are the "safe" casting rules of NumPy.
func CanCast(from, to Kind) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to || from == Bool {
		return true
	}
	switch {
	case from.IsSigned():
		switch {
		case to.IsSigned():
			return to.Size() >= from.Size()
		case to.IsUnsigned():
			return false
		case to.IsFloat():
			return floatHolds(to, from.Bits())
		case to.IsComplex():
			return floatHolds(to.Component(), from.Bits())
		}

	case from.IsUnsigned():
		switch {
		case to.IsUnsigned():
			return to.Size() >= from.Size()
		case to.IsSigned():
			return to.Size() > from.Size()
		case to.IsFloat():
			return floatHolds(to, from.Bits())
		case to.IsComplex():
			return floatHolds(to.Component(), from.Bits())
		}

	case from.IsFloat():
		switch {
		case to.IsFloat():
			return to.Size() >= from.Size()
		case to.IsComplex():
			return to.Component().Size() >= from.Size()
		}

	case from.IsComplex():
		return to.IsComplex() && to.Size() >= from.Size()
	}
	return false
}

// floatHolds reports whether the float kind "to" is considered a safe target
// for an integer of the given width.
func floatHolds(to Kind, bits int) bool {
	switch to {
	case Float16:
		return bits <= 8
	case Float32:
		return bits <= 16
	case Float64:
		return true
	}
	return false
}

// Promote returns the smallest kind both a and b can be safely cast to.
func Promote(a, b Kind) Kind {
	if CanCast(a, b) {
		return b
	}
	if CanCast(b, a) {
		return a
	}
	for _, k := range Kinds {
		if CanCast(a, k) && CanCast(b, k) {
			return k
		}
	}
	return Invalid
}

package utils

// Guard runs a cleanup function when the code that set it up does not reach its success point,
// such as removing a half written output file.
//
//	guard := NewGuard(func() { RemoveFileNoError(name) })
//	defer guard.OnFail()
//	...
//	guard.Success()
type Guard struct {
	OnFail  func()
	success bool
}

// NewGuard returns a Guard whose OnFail calls onFailCleanup unless Success was called first.
func NewGuard(onFailCleanup func()) *Guard {
	ret := &Guard{}
	ret.OnFail = func() {
		if !ret.success {
			onFailCleanup()
		}
	}
	return ret
}

// Success disarms the cleanup.
func (guard *Guard) Success() {
	guard.success = true
}

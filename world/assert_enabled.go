//go:build assert_enabled

package world

func Assert(condition bool) {
	if !condition {
		panic("assert failed")
	}
}

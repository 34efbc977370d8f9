package lifecycle

import "testing"

func TestShutdownHooksRunOnceInReverseOrder(t *testing.T) {
	var order []string
	OnShutdown(func() { order = append(order, "first") })
	OnShutdown(func() { order = append(order, "second") })
	OnShutdown(nil)

	runShutdownHooks()
	runShutdownHooks()

	if len(order) != 2 {
		t.Fatalf("hooks ran %d times: %v", len(order), order)
	}
	if order[0] != "second" || order[1] != "first" {
		t.Fatalf("unexpected order: %v", order)
	}
}

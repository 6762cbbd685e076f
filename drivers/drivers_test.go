//go:build unix

package drivers_test

import (
	"testing"

	"github.com/nuln/fbox/drivers"
)

func TestList(t *testing.T) {
	got := drivers.List()
	want := []string{"fio", "io", "mmap", "rclone"}
	if len(got) != len(want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

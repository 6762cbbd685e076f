package unixfd

import (
	"time"

	"golang.org/x/sys/unix"
)

func modTime(st *unix.Stat_t) time.Time {
	return time.Unix(st.Mtimespec.Unix())
}

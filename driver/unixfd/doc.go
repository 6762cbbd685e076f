// Package unixfd implements the "io" backend: every descriptor is a raw
// numeric file descriptor driven through golang.org/x/sys/unix, with no
// buffering between the caller and the kernel.
//
// Open modes map one to one onto open(2) flags: ReadOnly, WriteOnly and
// ReadWrite select O_RDONLY, O_WRONLY and O_RDWR, and Create, Append and
// Truncate add O_CREAT, O_APPEND and O_TRUNC. New files are created with
// fbox.DefaultPerm (subject to the process umask). All descriptors are
// opened with O_CLOEXEC.
//
// The backend is only available on unix platforms.
package unixfd
